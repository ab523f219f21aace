package mysql

import (
	"context"
	"database/sql"
	"errors"

	domorder "example.com/product-catalog/internal/domain/order"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *domorder.Order) (_ *domorder.Order, retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
        INSERT INTO orders (id, user_id, status, payment_method, total_price)
        VALUES (?, ?, ?, ?, ?)
    `, o.ID, o.UserID, o.Status, o.PaymentMethod, o.TotalPrice)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
            INSERT INTO order_items (order_id, product_id, quantity)
            VALUES (?, ?, ?)
        `, o.ID, item.ProductID, item.Quantity)
		if err != nil {
			retErr = err
			return nil, retErr
		}
	}

	if err = tx.Commit(); err != nil {
		retErr = err
		return nil, retErr
	}

	return r.GetByID(ctx, o.ID)
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domorder.Order, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, user_id, status, payment_method, total_price, created_at
        FROM orders WHERE id = ?
    `, id)

	var o domorder.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.PaymentMethod, &o.TotalPrice, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domorder.ErrOrderNotFound
		}
		return nil, err
	}
	items, err := r.listOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]*domorder.Order, error) {
	return r.list(ctx, `
        SELECT id, user_id, status, payment_method, total_price, created_at
        FROM orders
        WHERE user_id = ?
        ORDER BY created_at, id
    `, userID)
}

func (r *OrderRepository) List(ctx context.Context) ([]*domorder.Order, error) {
	return r.list(ctx, `
        SELECT id, user_id, status, payment_method, total_price, created_at
        FROM orders
        ORDER BY created_at, id
    `)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domorder.Status) (*domorder.Order, error) {
	// Existence check first: an UPDATE to the current status reports zero
	// affected rows, which is indistinguishable from a missing order.
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	_, err := r.db.ExecContext(ctx, `
        UPDATE orders SET status = ? WHERE id = ?
    `, status, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]*domorder.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domorder.Order
	for rows.Next() {
		var o domorder.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.PaymentMethod, &o.TotalPrice, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		items, err := r.listOrderItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return orders, nil
}

func (r *OrderRepository) listOrderItems(ctx context.Context, orderID string) ([]domorder.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT product_id, quantity
        FROM order_items
        WHERE order_id = ?
        ORDER BY id
    `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domorder.Item
	for rows.Next() {
		var item domorder.Item
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
