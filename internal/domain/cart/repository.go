package cart

import "context"

type Repository interface {
	// CreateIfMissing persists an empty cart for the user unless one exists.
	CreateIfMissing(ctx context.Context, userID int64) error
	Exists(ctx context.Context, userID int64) (bool, error)
	ListItems(ctx context.Context, userID int64) ([]Item, error)
	// UpsertItem adds the quantity to an existing line for the product, or
	// appends a new line.
	UpsertItem(ctx context.Context, userID int64, productID int64, quantity int64) error
	RemoveItem(ctx context.Context, userID int64, productID int64) error
	// Clear empties the cart but keeps the cart record itself.
	Clear(ctx context.Context, userID int64) error
	// Delete removes the cart record and all its lines.
	Delete(ctx context.Context, userID int64) error
}
