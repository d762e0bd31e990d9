package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the order lifecycle stage. Transitions only ever move forward:
// placed -> ready -> delivered.
type Status string

const (
	StatusPlaced    Status = "placed"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyInStatus   = errors.New("order already in requested status")
)

// ParseStatus accepts the canonical names plus "ordered", a legacy alias
// for placed still present in old records.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "placed", "ordered":
		return StatusPlaced, nil
	case "ready":
		return StatusReady, nil
	case "delivered":
		return StatusDelivered, nil
	default:
		return "", fmt.Errorf("unknown order status %q", s)
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPlaced, StatusReady, StatusDelivered:
		return true
	}
	return false
}

// Next returns the single stage that follows s, or false for the terminal
// stage.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusPlaced:
		return StatusReady, true
	case StatusReady:
		return StatusDelivered, true
	default:
		return "", false
	}
}

// Transition validates a requested status change. A no-op transition
// (from == to) is reported as ErrAlreadyInStatus so callers can treat a
// repeated "mark as ready" as idempotent instead of failing it.
func Transition(from, to Status) error {
	if from == to {
		return ErrAlreadyInStatus
	}
	next, ok := from.Next()
	if !ok || next != to {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
