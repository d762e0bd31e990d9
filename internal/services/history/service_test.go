package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"front-of-house/internal/domain"
)

type memRepo struct {
	all []domain.Order
}

func (m *memRepo) Insert(_ context.Context, o domain.Order) error {
	m.all = append(m.all, o)
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Order, bool, error) {
	for _, o := range m.all {
		if o.ID == id {
			return o, true, nil
		}
	}
	return domain.Order{}, false, nil
}

func (m *memRepo) ListByStatus(_ context.Context, status domain.Status) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range m.all {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	return append([]domain.Order(nil), m.all...), nil
}

func (m *memRepo) ApplyTransition(_ context.Context, _ uuid.UUID, _ domain.Status, _ string) (domain.Status, error) {
	panic("history never transitions")
}

func orderAt(table string, at time.Time, price string, qty int) domain.Order {
	return domain.Order{
		ID:      uuid.New(),
		TableID: table,
		Status:  domain.StatusDelivered,
		Lines: []domain.OrderLine{
			{Category: "mains", Name: "Dish", UnitPrice: decimal.RequireFromString(price), Quantity: qty},
		},
		Total:     decimal.RequireFromString(price).Mul(decimal.NewFromInt(int64(qty))),
		OrderedAt: at,
	}
}

func TestListFiltersByDate(t *testing.T) {
	repo := &memRepo{all: []domain.Order{
		orderAt("T1", time.Date(2024, 1, 5, 13, 0, 0, 0, time.UTC), "10.00", 1),
		orderAt("T2", time.Date(2024, 1, 6, 9, 30, 0, 0, time.UTC), "10.00", 1),
	}}
	svc := NewService(repo, time.UTC)

	rows, err := svc.List(context.Background(), "2024-01-05", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "T1", rows[0].Table)
}

func TestListFiltersByTableSubstring(t *testing.T) {
	repo := &memRepo{all: []domain.Order{
		orderAt("Patio 12", time.Now().UTC(), "10.00", 1),
		orderAt("T3", time.Now().UTC(), "10.00", 1),
		orderAt("t31", time.Now().UTC(), "10.00", 1),
	}}
	svc := NewService(repo, time.UTC)

	rows, err := svc.List(context.Background(), "", "T3")
	require.NoError(t, err)
	require.Len(t, rows, 2, "match must be case-insensitive substring")

	rows, err = svc.List(context.Background(), "", "patio")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Patio 12", rows[0].Table)
}

func TestListComposesFilters(t *testing.T) {
	day := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	repo := &memRepo{all: []domain.Order{
		orderAt("T3", day, "10.00", 1),
		orderAt("T3", day.AddDate(0, 0, 1), "10.00", 1),
		orderAt("T4", day, "10.00", 1),
	}}
	svc := NewService(repo, time.UTC)

	rows, err := svc.List(context.Background(), "2024-01-05", "t3")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestListNoFiltersReturnsEverything(t *testing.T) {
	repo := &memRepo{all: []domain.Order{
		orderAt("T1", time.Now().UTC(), "10.00", 1),
		orderAt("T2", time.Now().UTC(), "12.00", 2),
		orderAt("T3", time.Now().UTC(), "3.50", 1),
	}}
	svc := NewService(repo, time.UTC)

	rows, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, r := range rows {
		require.Equal(t, i+1, r.Seq)
	}
}

func TestListBadDateFilter(t *testing.T) {
	svc := NewService(&memRepo{}, time.UTC)
	_, err := svc.List(context.Background(), "05/01/2024", "")
	require.ErrorIs(t, err, ErrBadDateFilter)
}

func TestTotalsRecomputedFromLines(t *testing.T) {
	// A stored total edited out-of-band must lose to the line snapshot.
	o := orderAt("T1", time.Now().UTC(), "10.00", 2)
	o.Total = decimal.RequireFromString("999.00")
	repo := &memRepo{all: []domain.Order{o}}
	svc := NewService(repo, time.UTC)

	rows, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	require.True(t, rows[0].Total.Equal(decimal.RequireFromString("20.00")), "total = %s", rows[0].Total)
}

func TestDetail(t *testing.T) {
	o := orderAt("T1", time.Now().UTC(), "10.00", 2)
	repo := &memRepo{all: []domain.Order{o}}
	svc := NewService(repo, time.UTC)

	got, ok, err := svc.Detail(context.Background(), o.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Lines, 1)
	require.True(t, got.Total.Equal(decimal.RequireFromString("20.00")))

	_, ok, err = svc.Detail(context.Background(), uuid.New())
	require.NoError(t, err)
	require.False(t, ok)
}
