package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"front-of-house/internal/common/logger"
	"front-of-house/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotActive          = errors.New("account is not active")
)

type Service struct {
	repo       StaffRepository
	sessionTTL time.Duration
	log        *logger.Logger
}

func NewService(repo StaffRepository, sessionTTL time.Duration, log *logger.Logger) *Service {
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	return &Service{repo: repo, sessionTTL: sessionTTL, log: log}
}

// Register files a staff application. The account stays pending, with no
// role, until an admin reviews it.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (uuid.UUID, error) {
	if strings.TrimSpace(req.Name) == "" {
		return uuid.Nil, errors.New("name is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return uuid.Nil, errors.New("a valid email is required")
	}
	if len(req.Password) < 8 {
		return uuid.Nil, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash password: %w", err)
	}

	staff := domain.Staff{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		Status:       domain.StaffPending,
	}
	if err := s.repo.CreateApplication(ctx, staff); err != nil {
		return uuid.Nil, err
	}
	s.log.Info("staff_application_filed", map[string]any{"staff_id": staff.ID.String()})
	return staff.ID, nil
}

func (s *Service) Applications(ctx context.Context) ([]domain.Staff, error) {
	return s.repo.ListPending(ctx)
}

// Review approves or rejects a pending application. Approval assigns the
// role and activates the account; the applicant can log in afterwards.
func (s *Service) Review(ctx context.Context, id uuid.UUID, req domain.ReviewApplicationRequest) error {
	if !req.Approve {
		return s.repo.SetReview(ctx, id, domain.StaffRejected, "")
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return fmt.Errorf("approval requires a role: %w", err)
	}
	if err := s.repo.SetReview(ctx, id, domain.StaffActive, role); err != nil {
		return err
	}
	s.log.Info("staff_approved", map[string]any{"staff_id": id.String(), "role": string(role)})
	return nil
}

// Login verifies credentials of an active staff member and issues an
// opaque bearer token.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	staff, ok, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	if !ok {
		return domain.LoginResponse{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, ErrInvalidCredentials
	}
	if staff.Status != domain.StaffActive {
		return domain.LoginResponse{}, ErrNotActive
	}

	session := domain.Session{
		Token:     uuid.New(),
		StaffID:   staff.ID,
		StaffName: staff.Name,
		Role:      staff.Role,
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return domain.LoginResponse{}, err
	}
	s.log.Debug("login_ok", map[string]any{"staff_id": staff.ID.String(), "role": string(staff.Role)})
	return domain.LoginResponse{
		Token:     session.Token.String(),
		Role:      session.Role,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// SessionFromToken resolves a bearer token to a live session.
func (s *Service) SessionFromToken(ctx context.Context, token string) (domain.Session, bool, error) {
	id, err := uuid.Parse(strings.TrimSpace(token))
	if err != nil {
		return domain.Session{}, false, nil
	}
	session, ok, err := s.repo.SessionByToken(ctx, id)
	if err != nil || !ok {
		return domain.Session{}, false, err
	}
	if session.Expired(time.Now().UTC()) {
		return domain.Session{}, false, nil
	}
	return session, true, nil
}
