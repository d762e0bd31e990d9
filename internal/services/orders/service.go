package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"front-of-house/internal/common/logger"
	"front-of-house/internal/common/metrics"
	"front-of-house/internal/domain"
)

// CatalogSource provides the menu snapshot an order placement prices
// against. Satisfied by the catalog service.
type CatalogSource interface {
	Snapshot(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.MenuItem, error)
}

// EventPublisher pushes lifecycle messages to the broker.
type EventPublisher interface {
	PublishTicket(ctx context.Context, t domain.TicketMessage) error
	PublishStatusChange(ctx context.Context, m domain.StatusChangeMessage) error
}

type Service struct {
	repo    Repository
	catalog CatalogSource
	pub     EventPublisher
	log     *logger.Logger
	metrics *metrics.ServiceMetrics
	now     func() time.Time
}

func NewService(repo Repository, catalog CatalogSource, pub EventPublisher, log *logger.Logger, m *metrics.ServiceMetrics) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		pub:     pub,
		log:     log,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Place converts the request's selection into a persisted order. Item ids
// that do not resolve in the catalog (deleted items, malformed ids) are
// dropped and reported back; the rest of the order goes through. Totals
// are recomputed here from the catalog snapshot, never taken from the
// client.
func (s *Service) Place(ctx context.Context, req domain.PlaceOrderRequest) (domain.PlaceOrderResponse, error) {
	if req.Table == "" {
		return domain.PlaceOrderResponse{}, domain.ErrMissingTable
	}

	sel := make(domain.Selection, len(req.Items))
	var dropped []string
	for _, it := range req.Items {
		if it.Quantity < 1 {
			continue
		}
		id, err := uuid.Parse(it.MenuItemID)
		if err != nil {
			dropped = append(dropped, it.MenuItemID)
			continue
		}
		sel[id] += it.Quantity
	}
	if len(sel) == 0 {
		return domain.PlaceOrderResponse{}, domain.ErrEmptySelection
	}

	ids := make([]uuid.UUID, 0, len(sel))
	for id := range sel {
		ids = append(ids, id)
	}
	snapshot, err := s.catalog.Snapshot(ctx, ids)
	if err != nil {
		return domain.PlaceOrderResponse{}, err
	}
	for id := range sel {
		if _, ok := snapshot[id]; !ok {
			dropped = append(dropped, id.String())
		}
	}

	order, err := domain.BuildOrder(sel, snapshot, req.Table, s.now())
	if err != nil {
		return domain.PlaceOrderResponse{}, err
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		return domain.PlaceOrderResponse{}, err
	}
	if s.metrics != nil {
		s.metrics.OrdersPlaced.Inc()
	}
	if len(dropped) > 0 {
		s.log.Info("stale_items_dropped", map[string]any{
			"order_id": order.ID.String(), "dropped": dropped,
		})
	}

	// The order row is the source of truth; a failed publish is logged
	// and the placement still succeeds.
	if err := s.pub.PublishTicket(ctx, domain.TicketFor(order)); err != nil {
		s.log.Error("ticket_publish_failed", err, map[string]any{"order_id": order.ID.String()})
	}

	s.log.Info("order_placed", map[string]any{
		"order_id": order.ID.String(),
		"table":    order.TableID,
		"total":    order.Total.StringFixed(2),
		"lines":    len(order.Lines),
	})
	return domain.PlaceOrderResponse{
		OrderID: order.ID.String(),
		Status:  order.Status,
		Total:   order.Total,
		Dropped: dropped,
	}, nil
}

// MarkDelivered advances a ready order to delivered. Repeating the call on
// an already delivered order is a no-op.
func (s *Service) MarkDelivered(ctx context.Context, id uuid.UUID, changedBy string) error {
	from, err := s.repo.ApplyTransition(ctx, id, domain.StatusDelivered, changedBy)
	if errors.Is(err, domain.ErrAlreadyInStatus) {
		s.log.Debug("delivery_repeat_ignored", map[string]any{"order_id": id.String()})
		return nil
	}
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.Transitions.WithLabelValues(string(domain.StatusDelivered)).Inc()
	}

	msg := domain.StatusChangeMessage{
		OrderID:   id.String(),
		OldStatus: from,
		NewStatus: domain.StatusDelivered,
		ChangedBy: changedBy,
		Timestamp: s.now(),
	}
	if err := s.pub.PublishStatusChange(ctx, msg); err != nil {
		s.log.Error("status_publish_failed", err, map[string]any{"order_id": id.String()})
	}
	s.log.Info("order_delivered", map[string]any{"order_id": id.String(), "by": changedBy})
	return nil
}
