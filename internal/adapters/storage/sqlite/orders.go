package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/domain"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/ports"
)

// OrderStore implements ports.OrderRepository. Reads resolve the owning
// customer in the same query; soft-deleted customers resolve to nil so an
// order survives its owner's deactivation.
type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(store *Store) *OrderStore {
	return &OrderStore{db: store.db}
}

// orderSelect joins the live customer row. The CASE expression mirrors the
// fulfillment-board rank: it exists only for display ordering and is
// unrelated to the legal status transition sequence.
const orderSelect = `
	SELECT o.id, o.customer_id, o.total, o.notes, o.status, o.created_at,
	       c.id, c.name, c.email, c.cpf, c.created_at
	FROM   orders o
	LEFT JOIN customers c ON c.id = o.customer_id AND c.deleted_at IS NULL`

const orderBoardRank = `
	CASE o.status
		WHEN 'received'  THEN 0
		WHEN 'preparing' THEN 1
		WHEN 'ready'     THEN 2
		WHEN 'completed' THEN 3
		ELSE 4
	END`

func (s *OrderStore) List(ctx context.Context) ([]*domain.Order, error) {
	q := orderSelect + `
	WHERE  o.deleted_at IS NULL
	ORDER  BY ` + orderBoardRank + `, o.created_at ASC, o.id ASC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate orders: %w", err)
	}

	for _, order := range orders {
		if err := s.loadItems(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *OrderStore) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	q := orderSelect + `
	WHERE  o.id = ? AND o.deleted_at IS NULL`

	rows, err := s.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: get order %q: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("sqlite: get order %q: %w", id, err)
		}
		return nil, fmt.Errorf("order %q: %w", id, domain.ErrNotFound)
	}
	order, err := scanOrder(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Create writes the order and its items in one transaction: either the
// whole order exists or none of it does.
func (s *OrderStore) Create(ctx context.Context, order *domain.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: create order %q: %w", order.ID, err)
	}
	defer tx.Rollback()

	const insertOrder = `
		INSERT INTO orders (id, customer_id, total, notes, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	var customerID any
	if order.CustomerID != "" {
		customerID = order.CustomerID
	}

	_, err = tx.ExecContext(ctx, insertOrder,
		order.ID,
		customerID,
		order.Total.Value(),
		order.Notes,
		string(order.Status),
		formatTime(order.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: create order %q: %w", order.ID, err)
	}

	const insertItem = `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES (?, ?, ?, ?)`

	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx, insertItem, order.ID, item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return fmt.Errorf("sqlite: create order %q item %q: %w", order.ID, item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: create order %q: %w", order.ID, err)
	}
	return nil
}

func (s *OrderStore) Update(ctx context.Context, id string, patch ports.OrderPatch) (*domain.Order, error) {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)

	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *patch.Notes)
	}
	if len(sets) == 0 {
		return s.GetByID(ctx, id)
	}
	args = append(args, id)

	q := `UPDATE orders SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND deleted_at IS NULL`

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: update order %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: update order %q: %w", id, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("order %q: %w", id, domain.ErrNotFound)
	}

	return s.GetByID(ctx, id)
}

// UpdateStatus is the compare-and-swap write behind payment confirmation:
// the row moves from "from" to "to" only if it is still in "from" at write
// time. When the guard fails on an existing order the caller gets
// domain.ErrStatusConflict, never a silent overwrite.
func (s *OrderStore) UpdateStatus(ctx context.Context, id string, from, to domain.Status) error {
	const q = `
		UPDATE orders
		SET    status = ?
		WHERE  id = ? AND status = ? AND deleted_at IS NULL`

	res, err := s.db.ExecContext(ctx, q, string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("sqlite: update order %q status: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: update order %q status: %w", id, err)
	}
	if affected == 1 {
		return nil
	}

	var exists int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE id = ? AND deleted_at IS NULL`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("sqlite: update order %q status: %w", id, err)
	}
	if exists == 0 {
		return fmt.Errorf("order %q: %w", id, domain.ErrNotFound)
	}
	return fmt.Errorf("order %q: %w", id, domain.ErrStatusConflict)
}

func (s *OrderStore) Delete(ctx context.Context, id string) error {
	const q = `
		UPDATE orders
		SET    deleted_at = ?
		WHERE  id = ? AND deleted_at IS NULL`

	res, err := s.db.ExecContext(ctx, q, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("sqlite: delete order %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete order %q: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("order %q: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *OrderStore) loadItems(ctx context.Context, order *domain.Order) error {
	const q = `
		SELECT product_id, quantity, unit_price
		FROM   order_items
		WHERE  order_id = ?
		ORDER  BY id`

	rows, err := s.db.QueryContext(ctx, q, order.ID)
	if err != nil {
		return fmt.Errorf("sqlite: items for order %q: %w", order.ID, err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return fmt.Errorf("sqlite: scan item for order %q: %w", order.ID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlite: iterate items for order %q: %w", order.ID, err)
	}

	order.Items = items

	// The stored items carry the frozen unit prices, so rebuilding the
	// total through its constructor reproduces the persisted amount.
	total, err := domain.NewTotal(items)
	if err != nil {
		return fmt.Errorf("sqlite: rebuild total for order %q: %w", order.ID, err)
	}
	order.Total = total
	return nil
}

func scanOrder(rows *sql.Rows) (*domain.Order, error) {
	var (
		order       domain.Order
		customerID  sql.NullString
		total       float64
		status      string
		createdAt   string
		custID      sql.NullString
		custName    sql.NullString
		custEmail   sql.NullString
		custCPF     sql.NullString
		custCreated sql.NullString
	)
	err := rows.Scan(
		&order.ID, &customerID, &total, &order.Notes, &status, &createdAt,
		&custID, &custName, &custEmail, &custCPF, &custCreated,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: scan order: %w", err)
	}

	order.CustomerID = customerID.String
	order.Status = domain.Status(status)
	if order.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	if custID.Valid {
		customer, err := buildCustomer(custID.String, custName.String, custEmail.String, custCPF, custCreated.String)
		if err != nil {
			return nil, err
		}
		order.Customer = customer
	}

	return &order, nil
}
