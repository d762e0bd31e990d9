package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"front-of-house/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

// Repository is the single gateway to persisted orders. The kitchen and
// history services share it; only Insert and ApplyTransition ever write.
type Repository interface {
	Insert(ctx context.Context, o domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Order, bool, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ApplyTransition(ctx context.Context, id uuid.UUID, to domain.Status, changedBy string) (domain.Status, error)
}

type PGRepository struct {
	db *sql.DB
}

func NewPGRepository(db *sql.DB) *PGRepository { return &PGRepository{db: db} }

// Insert writes the order, its lines and the initial status-log row in one
// transaction.
func (r *PGRepository) Insert(ctx context.Context, o domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert order: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, table_id, status, total, ordered_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`, o.ID, o.TableID, string(o.Status), o.Total, o.OrderedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, l := range o.Lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_lines (order_id, position, category, name, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, o.ID, i, l.Category, l.Name, l.UnitPrice, l.Quantity); err != nil {
			return fmt.Errorf("insert order line %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by)
		VALUES ($1, $2, 'order-service')
	`, o.ID, string(o.Status)); err != nil {
		return fmt.Errorf("insert status log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert order: %w", err)
	}
	return nil
}

func (r *PGRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Order, bool, error) {
	orders, err := r.list(ctx, `WHERE o.id = $1`, id)
	if err != nil {
		return domain.Order{}, false, err
	}
	if len(orders) == 0 {
		return domain.Order{}, false, nil
	}
	return orders[0], true, nil
}

func (r *PGRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	return r.list(ctx, `WHERE o.status = $1`, string(status))
}

func (r *PGRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, ``)
}

func (r *PGRepository) list(ctx context.Context, where string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.table_id, o.status, o.total, o.ordered_at,
		       l.category, l.name, l.unit_price, l.quantity
		FROM orders o
		JOIN order_lines l ON l.order_id = o.id
		`+where+`
		ORDER BY o.ordered_at ASC, o.id, l.position
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		out     []domain.Order
		current *domain.Order
	)
	for rows.Next() {
		var (
			o      domain.Order
			status string
			line   domain.OrderLine
		)
		if err := rows.Scan(&o.ID, &o.TableID, &status, &o.Total, &o.OrderedAt,
			&line.Category, &line.Name, &line.UnitPrice, &line.Quantity); err != nil {
			return nil, err
		}
		o.Status = domain.Status(status)

		if current == nil || current.ID != o.ID {
			out = append(out, o)
			current = &out[len(out)-1]
		}
		current.Lines = append(current.Lines, line)
	}
	return out, rows.Err()
}

// ApplyTransition locks the order row, validates the requested status
// change with the domain transition function and applies it. Two clients
// racing on the same order produce one transition and one
// ErrAlreadyInStatus. Returns the status the order had before the call.
func (r *PGRepository) ApplyTransition(ctx context.Context, id uuid.UUID, to domain.Status, changedBy string) (domain.Status, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transition: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lock order: %w", err)
	}

	from, err := domain.ParseStatus(raw)
	if err != nil {
		return "", err
	}
	if err := domain.Transition(from, to); err != nil {
		return from, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE orders SET status=$2, updated_at=now() WHERE id=$1
	`, id, string(to)); err != nil {
		return from, fmt.Errorf("update status: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by)
		VALUES ($1, $2, $3)
	`, id, string(to), changedBy); err != nil {
		return from, fmt.Errorf("insert status log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return from, fmt.Errorf("commit transition: %w", err)
	}
	return from, nil
}

var _ Repository = (*PGRepository)(nil)
