package kitchen

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"front-of-house/internal/common/logger"
	"front-of-house/internal/common/metrics"
	"front-of-house/internal/domain"
	"front-of-house/internal/services/orders"
)

// StatusPublisher fans out applied transitions to the notification queue.
type StatusPublisher interface {
	PublishStatusChange(ctx context.Context, m domain.StatusChangeMessage) error
}

type Service struct {
	repo    orders.Repository
	pub     StatusPublisher
	log     *logger.Logger
	metrics *metrics.ServiceMetrics
	now     func() time.Time
}

func NewService(repo orders.Repository, pub StatusPublisher, log *logger.Logger, m *metrics.ServiceMetrics) *Service {
	return &Service{
		repo:    repo,
		pub:     pub,
		log:     log,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Tickets lists the orders the kitchen still has to cook, oldest first.
func (s *Service) Tickets(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListByStatus(ctx, domain.StatusPlaced)
}

// MarkReady advances a placed order to ready. A repeat call on an order
// that is already ready is a guarded no-op, so two kitchen screens racing
// on the same ticket cannot double-apply the transition.
func (s *Service) MarkReady(ctx context.Context, id uuid.UUID, changedBy string) error {
	from, err := s.repo.ApplyTransition(ctx, id, domain.StatusReady, changedBy)
	if errors.Is(err, domain.ErrAlreadyInStatus) {
		s.log.Debug("ready_repeat_ignored", map[string]any{"order_id": id.String()})
		return nil
	}
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.Transitions.WithLabelValues(string(domain.StatusReady)).Inc()
	}

	msg := domain.StatusChangeMessage{
		OrderID:   id.String(),
		OldStatus: from,
		NewStatus: domain.StatusReady,
		ChangedBy: changedBy,
		Timestamp: s.now(),
	}
	if err := s.pub.PublishStatusChange(ctx, msg); err != nil {
		s.log.Error("status_publish_failed", err, map[string]any{"order_id": id.String()})
	}
	s.log.Info("ticket_ready", map[string]any{"order_id": id.String(), "by": changedBy})
	return nil
}
