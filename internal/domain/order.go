package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptySelection = errors.New("selection is empty")
	ErrMissingTable   = errors.New("table identifier is required")
)

// OrderLine is a snapshot of a menu item at order time plus a quantity.
// Later catalog edits or deletions never change a stored line.
type OrderLine struct {
	Category  string          `json:"category"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

func (l OrderLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is immutable after creation except for Status.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	TableID   string          `json:"table"`
	Status    Status          `json:"status"`
	Lines     []OrderLine     `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	OrderedAt time.Time       `json:"ordered_at"`
}

// RecomputedTotal sums line totals from the stored snapshot. It is the
// authoritative total; the persisted Total column is a convenience copy.
func (o Order) RecomputedTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range o.Lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// Selection maps a menu item id to a requested quantity. Quantities below
// one are treated as absent.
type Selection map[uuid.UUID]int

// BuildOrder converts a selection plus a catalog snapshot into a new order.
// Ids that do not resolve in the snapshot are dropped rather than failing
// the whole placement; one stale id must not block an otherwise valid order.
// An empty selection, or one where nothing resolves, is rejected.
func BuildOrder(sel Selection, catalog map[uuid.UUID]MenuItem, tableID string, now time.Time) (Order, error) {
	if tableID == "" {
		return Order{}, ErrMissingTable
	}
	if len(sel) == 0 {
		return Order{}, ErrEmptySelection
	}

	lines := make([]OrderLine, 0, len(sel))
	for id, qty := range sel {
		if qty < 1 {
			continue
		}
		item, ok := catalog[id]
		if !ok {
			continue
		}
		lines = append(lines, OrderLine{
			Category:  item.Category,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  qty,
		})
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptySelection
	}

	o := Order{
		ID:        uuid.New(),
		TableID:   tableID,
		Status:    StatusPlaced,
		Lines:     lines,
		OrderedAt: now.UTC(),
	}
	o.Total = o.RecomputedTotal()
	return o, nil
}
