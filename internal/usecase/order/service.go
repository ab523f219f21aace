package order

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	domcart "example.com/product-catalog/internal/domain/cart"
	domorder "example.com/product-catalog/internal/domain/order"
	domproduct "example.com/product-catalog/internal/domain/product"
	domuser "example.com/product-catalog/internal/domain/user"
	"example.com/product-catalog/internal/locks"
)

type CartRepository interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	ListItems(ctx context.Context, userID int64) ([]domcart.Item, error)
	Clear(ctx context.Context, userID int64) error
}

type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domproduct.Product, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domuser.User, error)
}

type OrderRepository interface {
	domorder.Repository
}

// EventPublisher announces placed orders to downstream consumers. Publishing
// is best effort; a failure never fails the checkout.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, o *domorder.Order) error
}

// AdminOrder is an order with its owner resolved, as listed to admins.
type AdminOrder struct {
	domorder.Detailed
	OwnerName  string
	OwnerEmail string
}

type Service struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	orderRepo   OrderRepository
	userRepo    UserRepository
	events      EventPublisher
	owners      *locks.Keyed
	newID       func() string
	log         *logrus.Logger
}

func NewService(
	cartRepo CartRepository,
	productRepo ProductRepository,
	orderRepo OrderRepository,
	userRepo UserRepository,
	events EventPublisher,
	owners *locks.Keyed,
	newID func() string,
	log *logrus.Logger,
) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		events:      events,
		owners:      owners,
		newID:       newID,
		log:         log,
	}
}

// PlaceOrder converts the user's cart into an immutable order snapshot:
// load the cart, drop lines whose product no longer exists, price the rest
// at current catalog prices, persist the order, then clear the cart. No
// stock check or reservation happens here. If clearing fails after the
// order was persisted, the order stays durable and the error is surfaced.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, method domorder.PaymentMethod) (*domorder.Order, error) {
	if method == "" {
		method = domorder.PaymentCashOnDelivery
	}
	if !method.IsValid() {
		return nil, domorder.ErrInvalidPayment
	}

	unlock := s.owners.Lock(userID)
	defer unlock()

	exists, err := s.cartRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domorder.ErrEmptyCart
	}
	lines, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domorder.ErrEmptyCart
	}

	products, err := s.resolveProducts(ctx, lines)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	items := make([]domorder.Item, 0, len(lines))
	for _, line := range lines {
		p, ok := products[line.ProductID]
		if !ok {
			// Product was deleted since it went into the cart.
			continue
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(line.Quantity)))
		items = append(items, domorder.Item{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	if len(items) == 0 {
		return nil, domorder.ErrEmptyCart
	}

	created, err := s.orderRepo.Create(ctx, &domorder.Order{
		ID:            s.newID(),
		UserID:        userID,
		Items:         items,
		TotalPrice:    total,
		PaymentMethod: method,
		Status:        domorder.StatusPending,
	})
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		s.log.WithFields(logrus.Fields{
			"order_id": created.ID,
			"user_id":  userID,
		}).WithError(err).Error("order persisted but cart not cleared")
		return nil, fmt.Errorf("order %s placed but cart not cleared: %w", created.ID, err)
	}

	if s.events != nil {
		if err := s.events.OrderPlaced(ctx, created); err != nil {
			s.log.WithField("order_id", created.ID).WithError(err).Warn("order placed event not published")
		}
	}

	return created, nil
}

// ListMine returns the user's own orders with product data resolved for
// display.
func (s *Service) ListMine(ctx context.Context, userID int64) ([]*domorder.Detailed, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.detailOrders(ctx, orders)
}

// ListAll returns every order across all users. The HTTP layer restricts
// this to admins.
func (s *Service) ListAll(ctx context.Context) ([]*AdminOrder, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	detailed, err := s.detailOrders(ctx, orders)
	if err != nil {
		return nil, err
	}

	result := make([]*AdminOrder, 0, len(detailed))
	for _, d := range detailed {
		ao := &AdminOrder{Detailed: *d}
		if u, err := s.userRepo.GetByID(ctx, d.UserID); err == nil {
			ao.OwnerName = u.Name
			ao.OwnerEmail = u.Email
		}
		result = append(result, ao)
	}
	return result, nil
}

// UpdateStatus sets the order's status. Any valid status is reachable from
// any other; no forward-only lifecycle is enforced.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domorder.Status) (*domorder.Order, error) {
	if !status.IsValid() {
		return nil, domorder.ErrInvalidStatus
	}
	return s.orderRepo.UpdateStatus(ctx, id, status)
}

func (s *Service) resolveProducts(ctx context.Context, lines []domcart.Item) (map[int64]*domproduct.Product, error) {
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	m := make(map[int64]*domproduct.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m, nil
}

func (s *Service) detailOrders(ctx context.Context, orders []*domorder.Order) ([]*domorder.Detailed, error) {
	idSet := make(map[int64]struct{})
	for _, o := range orders {
		for _, item := range o.Items {
			idSet[item.ProductID] = struct{}{}
		}
	}
	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	productMap := make(map[int64]*domproduct.Product)
	if len(ids) > 0 {
		products, err := s.productRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			productMap[p.ID] = p
		}
	}

	detailed := make([]*domorder.Detailed, 0, len(orders))
	for _, o := range orders {
		d := &domorder.Detailed{
			Order:         *o,
			DetailedItems: make([]domorder.DetailedItem, 0, len(o.Items)),
		}
		for _, item := range o.Items {
			di := domorder.DetailedItem{Item: item}
			if p, ok := productMap[item.ProductID]; ok {
				di.ProductName = p.Name
				di.ProductPrice = p.Price
			}
			d.DetailedItems = append(d.DetailedItems, di)
		}
		detailed = append(detailed, d)
	}
	return detailed, nil
}
