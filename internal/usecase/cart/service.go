package cart

import (
	"context"
	"fmt"

	domcart "example.com/product-catalog/internal/domain/cart"
	domproduct "example.com/product-catalog/internal/domain/product"
	"example.com/product-catalog/internal/locks"
)

type CartRepository interface {
	domcart.Repository
}

type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domproduct.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domproduct.Product, error)
}

type Service struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	owners      *locks.Keyed
}

// NewService builds the cart service. The owners lock is shared with the
// order service so cart mutation and checkout for one user never interleave.
func NewService(cartRepo CartRepository, productRepo ProductRepository, owners *locks.Keyed) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		owners:      owners,
	}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *Service) GetCart(ctx context.Context, userID int64) (*domcart.Cart, error) {
	unlock := s.owners.Lock(userID)
	defer unlock()

	if err := s.cartRepo.CreateIfMissing(ctx, userID); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}

	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveItems(ctx, userID, items)
}

// AddToCart merges the quantity into an existing line for the product or
// appends a new one. The product must exist; quantity must be positive.
func (s *Service) AddToCart(ctx context.Context, userID, productID, quantity int64) (*domcart.Cart, error) {
	if quantity <= 0 {
		return nil, domcart.ErrInvalidQuantity
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	unlock := s.owners.Lock(userID)
	defer unlock()

	if err := s.cartRepo.CreateIfMissing(ctx, userID); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	if err := s.cartRepo.UpsertItem(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveItems(ctx, userID, items)
}

// RemoveFromCart drops the product's line from the cart. Removing a product
// that is not in the cart is a no-op. When the last line goes, the cart
// record itself is deleted and a nil cart is returned.
func (s *Service) RemoveFromCart(ctx context.Context, userID, productID int64) (*domcart.Cart, error) {
	unlock := s.owners.Lock(userID)
	defer unlock()

	exists, err := s.cartRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domcart.ErrCartNotFound
	}

	if err := s.cartRepo.RemoveItem(ctx, userID, productID); err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		if err := s.cartRepo.Delete(ctx, userID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return s.resolveItems(ctx, userID, items)
}

func (s *Service) resolveItems(ctx context.Context, userID int64, items []domcart.Item) (*domcart.Cart, error) {
	cart := &domcart.Cart{
		UserID: userID,
		Items:  make([]domcart.DetailedItem, 0, len(items)),
	}
	if len(items) == 0 {
		return cart, nil
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	productMap := make(map[int64]*domproduct.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	for _, item := range items {
		if p, ok := productMap[item.ProductID]; ok {
			cart.Items = append(cart.Items, domcart.DetailedItem{
				Item:         item,
				ProductName:  p.Name,
				ProductPrice: p.Price,
			})
		} else {
			// Keep stale lines visible; checkout filters them out.
			cart.Items = append(cart.Items, domcart.DetailedItem{Item: item})
		}
	}

	return cart, nil
}
