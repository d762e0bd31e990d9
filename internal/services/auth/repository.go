package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"front-of-house/internal/domain"
)

var ErrEmailTaken = errors.New("email already registered")

type StaffRepository interface {
	CreateApplication(ctx context.Context, s domain.Staff) error
	ListPending(ctx context.Context) ([]domain.Staff, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Staff, bool, error)
	GetByEmail(ctx context.Context, email string) (domain.Staff, bool, error)
	SetReview(ctx context.Context, id uuid.UUID, status domain.StaffStatus, role domain.Role) error
	CreateSession(ctx context.Context, s domain.Session) error
	SessionByToken(ctx context.Context, token uuid.UUID) (domain.Session, bool, error)
}

type PGStaffRepository struct {
	db *sql.DB
}

func NewPGStaffRepository(db *sql.DB) *PGStaffRepository { return &PGStaffRepository{db: db} }

func (r *PGStaffRepository) CreateApplication(ctx context.Context, s domain.Staff) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO staff (id, name, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
	`, s.ID, s.Name, s.Email, s.Phone, s.PasswordHash, string(s.Role), string(s.Status))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert staff application: %w", err)
	}
	return nil
}

func (r *PGStaffRepository) ListPending(ctx context.Context) ([]domain.Staff, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, phone, role, status, created_at
		FROM staff WHERE status = 'pending'
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list pending staff: %w", err)
	}
	defer rows.Close()

	var out []domain.Staff
	for rows.Next() {
		var s domain.Staff
		var role, status string
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &role, &status, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Role = domain.Role(role)
		s.Status = domain.StaffStatus(status)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGStaffRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Staff, bool, error) {
	return r.getOne(ctx, `WHERE id=$1`, id)
}

func (r *PGStaffRepository) GetByEmail(ctx context.Context, email string) (domain.Staff, bool, error) {
	return r.getOne(ctx, `WHERE email=$1`, email)
}

func (r *PGStaffRepository) getOne(ctx context.Context, where string, arg any) (domain.Staff, bool, error) {
	var s domain.Staff
	var role, status string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, password_hash, role, status, created_at
		FROM staff `+where, arg,
	).Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.PasswordHash, &role, &status, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Staff{}, false, nil
	}
	if err != nil {
		return domain.Staff{}, false, fmt.Errorf("get staff: %w", err)
	}
	s.Role = domain.Role(role)
	s.Status = domain.StaffStatus(status)
	return s, true, nil
}

func (r *PGStaffRepository) SetReview(ctx context.Context, id uuid.UUID, status domain.StaffStatus, role domain.Role) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE staff SET status=$2, role=$3, updated_at=now()
		WHERE id=$1 AND status='pending'
	`, id, string(status), string(role))
	if err != nil {
		return fmt.Errorf("review staff application: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("no pending application with id %s", id)
	}
	return nil
}

func (r *PGStaffRepository) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (token, staff_id, role, expires_at) VALUES ($1, $2, $3, $4)
	`, s.Token, s.StaffID, string(s.Role), s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *PGStaffRepository) SessionByToken(ctx context.Context, token uuid.UUID) (domain.Session, bool, error) {
	var s domain.Session
	var role string
	err := r.db.QueryRowContext(ctx, `
		SELECT se.token, se.staff_id, st.name, se.role, se.expires_at
		FROM sessions se
		JOIN staff st ON st.id = se.staff_id
		WHERE se.token = $1 AND st.status = 'active'
	`, token).Scan(&s.Token, &s.StaffID, &s.StaffName, &role, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("get session: %w", err)
	}
	s.Role = domain.Role(role)
	return s, true, nil
}

var _ StaffRepository = (*PGStaffRepository)(nil)
