package mysql

import (
	"context"
	"database/sql"
	"errors"

	domcart "example.com/product-catalog/internal/domain/cart"
)

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) CreateIfMissing(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT IGNORE INTO carts (user_id) VALUES (?)
    `, userID)
	return err
}

func (r *CartRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
        SELECT 1 FROM carts WHERE user_id = ?
    `, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *CartRepository) ListItems(ctx context.Context, userID int64) ([]domcart.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT product_id, quantity
        FROM cart_items
        WHERE user_id = ?
        ORDER BY id
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domcart.Item
	for rows.Next() {
		var item domcart.Item
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CartRepository) UpsertItem(ctx context.Context, userID int64, productID int64, quantity int64) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO cart_items (user_id, product_id, quantity)
        VALUES (?, ?, ?)
        ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)
    `, userID, productID, quantity)
	return err
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID int64, productID int64) error {
	_, err := r.db.ExecContext(ctx, `
        DELETE FROM cart_items WHERE user_id = ? AND product_id = ?
    `, userID, productID)
	return err
}

func (r *CartRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
        DELETE FROM cart_items WHERE user_id = ?
    `, userID)
	return err
}

func (r *CartRepository) Delete(ctx context.Context, userID int64) error {
	// cart_items has ON DELETE CASCADE on the cart.
	_, err := r.db.ExecContext(ctx, `
        DELETE FROM carts WHERE user_id = ?
    `, userID)
	return err
}
