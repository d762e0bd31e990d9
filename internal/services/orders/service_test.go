package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"front-of-house/internal/common/logger"
	"front-of-house/internal/domain"
)

type memRepo struct {
	orders  map[uuid.UUID]*domain.Order
	inserts int
}

func newMemRepo() *memRepo { return &memRepo{orders: map[uuid.UUID]*domain.Order{}} }

func (m *memRepo) Insert(_ context.Context, o domain.Order) error {
	m.inserts++
	cp := o
	m.orders[o.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Order, bool, error) {
	o, ok := m.orders[id]
	if !ok {
		return domain.Order{}, false, nil
	}
	return *o, true, nil
}

func (m *memRepo) ListByStatus(_ context.Context, status domain.Status) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range m.orders {
		if o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (m *memRepo) ApplyTransition(_ context.Context, id uuid.UUID, to domain.Status, _ string) (domain.Status, error) {
	o, ok := m.orders[id]
	if !ok {
		return "", ErrOrderNotFound
	}
	from := o.Status
	if err := domain.Transition(from, to); err != nil {
		return from, err
	}
	o.Status = to
	return from, nil
}

type memCatalog struct {
	items map[uuid.UUID]domain.MenuItem
}

func (m *memCatalog) Snapshot(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.MenuItem, error) {
	out := map[uuid.UUID]domain.MenuItem{}
	for _, id := range ids {
		if it, ok := m.items[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

type memPublisher struct {
	tickets  []domain.TicketMessage
	statuses []domain.StatusChangeMessage
	fail     bool
}

var errPublish = errors.New("broker down")

func (m *memPublisher) PublishTicket(_ context.Context, t domain.TicketMessage) error {
	if m.fail {
		return errPublish
	}
	m.tickets = append(m.tickets, t)
	return nil
}

func (m *memPublisher) PublishStatusChange(_ context.Context, s domain.StatusChangeMessage) error {
	if m.fail {
		return errPublish
	}
	m.statuses = append(m.statuses, s)
	return nil
}

func item(name, price string) domain.MenuItem {
	return domain.MenuItem{
		ID:       uuid.New(),
		Category: "mains",
		Name:     name,
		Price:    decimal.RequireFromString(price),
	}
}

func newTestService(repo *memRepo, cat *memCatalog, pub *memPublisher) *Service {
	return NewService(repo, cat, pub, logger.New("test"), nil)
}

func TestPlaceComputesTotals(t *testing.T) {
	a := item("A", "10.00")
	b := item("B", "5.00")
	repo := newMemRepo()
	pub := &memPublisher{}
	svc := newTestService(repo, &memCatalog{items: map[uuid.UUID]domain.MenuItem{a.ID: a, b.ID: b}}, pub)

	resp, err := svc.Place(context.Background(), domain.PlaceOrderRequest{
		Table: "T3",
		Items: []domain.SelectionItem{
			{MenuItemID: a.ID.String(), Quantity: 2},
			{MenuItemID: b.ID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPlaced, resp.Status)
	require.True(t, resp.Total.Equal(decimal.RequireFromString("25.00")), "total = %s", resp.Total)
	require.Empty(t, resp.Dropped)
	require.Equal(t, 1, repo.inserts)

	require.Len(t, pub.tickets, 1)
	require.Equal(t, "T3", pub.tickets[0].Table)
	require.Equal(t, "25.00", pub.tickets[0].Total)
	require.Len(t, pub.tickets[0].Lines, 2)
}

func TestPlaceEmptySelectionWritesNothing(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &memCatalog{items: map[uuid.UUID]domain.MenuItem{}}, &memPublisher{})

	_, err := svc.Place(context.Background(), domain.PlaceOrderRequest{Table: "T1"})
	require.ErrorIs(t, err, domain.ErrEmptySelection)
	require.Zero(t, repo.inserts)
}

func TestPlaceZeroQuantityIsEmpty(t *testing.T) {
	a := item("A", "10.00")
	repo := newMemRepo()
	svc := newTestService(repo, &memCatalog{items: map[uuid.UUID]domain.MenuItem{a.ID: a}}, &memPublisher{})

	_, err := svc.Place(context.Background(), domain.PlaceOrderRequest{
		Table: "T1",
		Items: []domain.SelectionItem{{MenuItemID: a.ID.String(), Quantity: 0}},
	})
	require.ErrorIs(t, err, domain.ErrEmptySelection)
	require.Zero(t, repo.inserts)
}

func TestPlaceMissingTable(t *testing.T) {
	a := item("A", "10.00")
	repo := newMemRepo()
	svc := newTestService(repo, &memCatalog{items: map[uuid.UUID]domain.MenuItem{a.ID: a}}, &memPublisher{})

	_, err := svc.Place(context.Background(), domain.PlaceOrderRequest{
		Items: []domain.SelectionItem{{MenuItemID: a.ID.String(), Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrMissingTable)
	require.Zero(t, repo.inserts)
}

func TestPlaceDropsStaleAndMalformedIDs(t *testing.T) {
	a := item("A", "10.00")
	stale := uuid.New()
	repo := newMemRepo()
	svc := newTestService(repo, &memCatalog{items: map[uuid.UUID]domain.MenuItem{a.ID: a}}, &memPublisher{})

	resp, err := svc.Place(context.Background(), domain.PlaceOrderRequest{
		Table: "T1",
		Items: []domain.SelectionItem{
			{MenuItemID: a.ID.String(), Quantity: 1},
			{MenuItemID: stale.String(), Quantity: 2},
			{MenuItemID: "not-a-uuid", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.True(t, resp.Total.Equal(decimal.RequireFromString("10.00")), "total = %s", resp.Total)
	require.ElementsMatch(t, []string{stale.String(), "not-a-uuid"}, resp.Dropped)
	require.Equal(t, 1, repo.inserts)
}

func TestPlaceAllStaleRejected(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &memCatalog{items: map[uuid.UUID]domain.MenuItem{}}, &memPublisher{})

	_, err := svc.Place(context.Background(), domain.PlaceOrderRequest{
		Table: "T1",
		Items: []domain.SelectionItem{{MenuItemID: uuid.New().String(), Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrEmptySelection)
	require.Zero(t, repo.inserts)
}

func TestPlaceSucceedsWhenPublishFails(t *testing.T) {
	a := item("A", "10.00")
	repo := newMemRepo()
	svc := newTestService(repo, &memCatalog{items: map[uuid.UUID]domain.MenuItem{a.ID: a}}, &memPublisher{fail: true})

	_, err := svc.Place(context.Background(), domain.PlaceOrderRequest{
		Table: "T1",
		Items: []domain.SelectionItem{{MenuItemID: a.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, repo.inserts)
}

func TestMarkDelivered(t *testing.T) {
	repo := newMemRepo()
	id := uuid.New()
	repo.orders[id] = &domain.Order{ID: id, Status: domain.StatusReady}
	pub := &memPublisher{}
	svc := newTestService(repo, &memCatalog{}, pub)

	require.NoError(t, svc.MarkDelivered(context.Background(), id, "dana"))
	require.Equal(t, domain.StatusDelivered, repo.orders[id].Status)

	require.Len(t, pub.statuses, 1)
	require.Equal(t, domain.StatusReady, pub.statuses[0].OldStatus)
	require.Equal(t, domain.StatusDelivered, pub.statuses[0].NewStatus)
	require.Equal(t, "dana", pub.statuses[0].ChangedBy)
}

func TestMarkDeliveredFromPlacedRejected(t *testing.T) {
	repo := newMemRepo()
	id := uuid.New()
	repo.orders[id] = &domain.Order{ID: id, Status: domain.StatusPlaced}
	svc := newTestService(repo, &memCatalog{}, &memPublisher{})

	err := svc.MarkDelivered(context.Background(), id, "dana")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	require.Equal(t, domain.StatusPlaced, repo.orders[id].Status)
}

func TestMarkDeliveredRepeatIsNoOp(t *testing.T) {
	repo := newMemRepo()
	id := uuid.New()
	repo.orders[id] = &domain.Order{ID: id, Status: domain.StatusDelivered}
	pub := &memPublisher{}
	svc := newTestService(repo, &memCatalog{}, pub)

	require.NoError(t, svc.MarkDelivered(context.Background(), id, "dana"))
	require.Empty(t, pub.statuses)
}

func TestMarkDeliveredUnknownOrder(t *testing.T) {
	svc := newTestService(newMemRepo(), &memCatalog{}, &memPublisher{})
	err := svc.MarkDelivered(context.Background(), uuid.New(), "dana")
	require.ErrorIs(t, err, ErrOrderNotFound)
}
