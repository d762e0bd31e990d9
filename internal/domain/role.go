package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the staff capability level. The four predicates below are the
// only role checks in the system; handlers never compare role strings
// directly.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleChef   Role = "chef"
	RoleWaiter Role = "waiter"
)

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "chef":
		return RoleChef, nil
	case "waiter":
		return RoleWaiter, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) IsAdmin() bool  { return r == RoleAdmin }
func (r Role) IsChef() bool   { return r == RoleChef }
func (r Role) IsWaiter() bool { return r == RoleWaiter }

// IsEmployee reports whether the role is any recognized staff role.
func (r Role) IsEmployee() bool {
	return r == RoleAdmin || r == RoleChef || r == RoleWaiter
}

// StaffStatus tracks the verification workflow for a staff application.
type StaffStatus string

const (
	StaffPending  StaffStatus = "pending"
	StaffActive   StaffStatus = "active"
	StaffRejected StaffStatus = "rejected"
)

type Staff struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	Status       StaffStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Session is an authenticated staff context resolved from a bearer token.
// Capability checks go through Session.Role, never through ambient state.
type Session struct {
	Token     uuid.UUID
	StaffID   uuid.UUID
	StaffName string
	Role      Role
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }
