package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"front-of-house/internal/common/logger"
	"front-of-house/internal/domain"
)

type Service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) List(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.List(ctx)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Categories(items), nil
}

func (s *Service) Snapshot(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.MenuItem, error) {
	return s.repo.SnapshotByIDs(ctx, ids)
}

func (s *Service) Create(ctx context.Context, req domain.UpsertMenuItemRequest) (domain.MenuItem, error) {
	item := domain.MenuItem{
		ID:       uuid.New(),
		Category: req.Category,
		Name:     req.Name,
		Price:    req.Price,
	}
	if err := item.Validate(); err != nil {
		return domain.MenuItem{}, err
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return domain.MenuItem{}, err
	}
	s.log.Info("menu_item_added", map[string]any{"id": item.ID.String(), "name": item.Name})
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	return item, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req domain.UpsertMenuItemRequest) (domain.MenuItem, error) {
	item := domain.MenuItem{
		ID:       id,
		Category: req.Category,
		Name:     req.Name,
		Price:    req.Price,
	}
	if err := item.Validate(); err != nil {
		return domain.MenuItem{}, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return domain.MenuItem{}, err
	}
	s.log.Info("menu_item_updated", map[string]any{"id": id.String()})
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("menu_item_deleted", map[string]any{"id": id.String()})
	return nil
}
