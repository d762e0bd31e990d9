package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"front-of-house/internal/domain"
)

var ErrNotFound = errors.New("menu item not found")

type Repository interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	SnapshotByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.MenuItem, error)
	Insert(ctx context.Context, item domain.MenuItem) error
	Update(ctx context.Context, item domain.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PGRepository struct {
	db *sql.DB
}

func NewPGRepository(db *sql.DB) *PGRepository { return &PGRepository{db: db} }

func (r *PGRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category, name, price, created_at, updated_at
		FROM menu_items
		ORDER BY category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var out []domain.MenuItem
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Category, &m.Name, &m.Price, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SnapshotByIDs fetches the subset of the catalog an order placement
// references. Missing ids are simply absent from the map.
func (r *PGRepository) SnapshotByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.MenuItem, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]domain.MenuItem{}, nil
	}
	asText := make([]string, len(ids))
	for i, id := range ids {
		asText[i] = id.String()
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category, name, price, created_at, updated_at
		FROM menu_items
		WHERE id = ANY($1::uuid[])
	`, asText)
	if err != nil {
		return nil, fmt.Errorf("snapshot menu items: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]domain.MenuItem, len(ids))
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Category, &m.Name, &m.Price, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out[m.ID] = m
	}
	return out, rows.Err()
}

func (r *PGRepository) Insert(ctx context.Context, item domain.MenuItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO menu_items (id, category, name, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
	`, item.ID, item.Category, item.Name, item.Price)
	if err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, item domain.MenuItem) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE menu_items SET category=$2, name=$3, price=$4, updated_at=now()
		WHERE id=$1
	`, item.ID, item.Category, item.Name, item.Price)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
