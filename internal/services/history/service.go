package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"front-of-house/internal/domain"
	"front-of-house/internal/services/orders"
)

var ErrBadDateFilter = errors.New("date filter must be YYYY-MM-DD")

// Service is the read-only billing/history view. It never mutates order
// data; totals shown here are recomputed from the stored line snapshots.
type Service struct {
	repo orders.Repository
	loc  *time.Location
}

func NewService(repo orders.Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, loc: loc}
}

// List applies the optional filters and numbers the surviving rows.
// date is a calendar day in 2006-01-02 form; table is a case-insensitive
// substring. Empty filters pass everything through.
func (s *Service) List(ctx context.Context, date, table string) ([]domain.HistoryRow, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := all
	if date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadDateFilter, date)
		}
		filtered = FilterByDate(filtered, day, s.loc)
	}
	if table != "" {
		filtered = FilterByTable(filtered, table)
	}

	rows := make([]domain.HistoryRow, 0, len(filtered))
	for i, o := range filtered {
		rows = append(rows, domain.HistoryRow{
			Seq:       i + 1,
			OrderID:   o.ID.String(),
			Table:     o.TableID,
			OrderedAt: o.OrderedAt.In(s.loc).Format("2006-01-02 15:04:05"),
			Status:    o.Status,
			Total:     o.RecomputedTotal(),
		})
	}
	return rows, nil
}

// Detail returns the full line itemization for one order.
func (s *Service) Detail(ctx context.Context, id uuid.UUID) (domain.Order, bool, error) {
	o, ok, err := s.repo.GetByID(ctx, id)
	if err != nil || !ok {
		return domain.Order{}, ok, err
	}
	o.Total = o.RecomputedTotal()
	return o, true, nil
}

// FilterByDate keeps orders whose local calendar date equals day's.
func FilterByDate(list []domain.Order, day time.Time, loc *time.Location) []domain.Order {
	y, m, d := day.In(loc).Date()
	out := make([]domain.Order, 0, len(list))
	for _, o := range list {
		oy, om, od := o.OrderedAt.In(loc).Date()
		if oy == y && om == m && od == d {
			out = append(out, o)
		}
	}
	return out
}

// FilterByTable keeps orders whose table identifier contains the query,
// case-insensitively.
func FilterByTable(list []domain.Order, query string) []domain.Order {
	q := strings.ToLower(query)
	out := make([]domain.Order, 0, len(list))
	for _, o := range list {
		if strings.Contains(strings.ToLower(o.TableID), q) {
			out = append(out, o)
		}
	}
	return out
}
