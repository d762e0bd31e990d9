package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativePrice = errors.New("price must not be negative")
	ErrEmptyName     = errors.New("item name is required")
	ErrEmptyCategory = errors.New("category is required")
)

// MenuItem is catalog reference data. Orders copy its fields at placement
// time and never join back to it.
type MenuItem struct {
	ID        uuid.UUID       `json:"id"`
	Category  string          `json:"category"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (m MenuItem) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(m.Category) == "" {
		return ErrEmptyCategory
	}
	if m.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Categories derives the distinct category list, in first-seen order.
func Categories(items []MenuItem) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}
