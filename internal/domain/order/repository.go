package order

import "context"

type Repository interface {
	Create(ctx context.Context, o *Order) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)
	List(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
}
