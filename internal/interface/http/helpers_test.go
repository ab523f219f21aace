package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	domcart "example.com/product-catalog/internal/domain/cart"
	domorder "example.com/product-catalog/internal/domain/order"
	domproduct "example.com/product-catalog/internal/domain/product"
	domuser "example.com/product-catalog/internal/domain/user"
	"example.com/product-catalog/internal/infra/security"
	"example.com/product-catalog/internal/locks"
	authuc "example.com/product-catalog/internal/usecase/auth"
	cartuc "example.com/product-catalog/internal/usecase/cart"
	orderuc "example.com/product-catalog/internal/usecase/order"
	productuc "example.com/product-catalog/internal/usecase/product"
	useruc "example.com/product-catalog/internal/usecase/user"
)

type fakeCartRepo struct {
	carts map[int64]bool
	items map[int64][]domcart.Item
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		carts: make(map[int64]bool),
		items: make(map[int64][]domcart.Item),
	}
}

func (f *fakeCartRepo) CreateIfMissing(ctx context.Context, userID int64) error {
	f.carts[userID] = true
	return nil
}

func (f *fakeCartRepo) Exists(ctx context.Context, userID int64) (bool, error) {
	return f.carts[userID], nil
}

func (f *fakeCartRepo) ListItems(ctx context.Context, userID int64) ([]domcart.Item, error) {
	items := f.items[userID]
	result := make([]domcart.Item, len(items))
	copy(result, items)
	return result, nil
}

func (f *fakeCartRepo) UpsertItem(ctx context.Context, userID, productID, quantity int64) error {
	items := f.items[userID]
	for i, item := range items {
		if item.ProductID == productID {
			items[i].Quantity += quantity
			f.items[userID] = items
			return nil
		}
	}
	f.items[userID] = append(items, domcart.Item{ProductID: productID, Quantity: quantity})
	return nil
}

func (f *fakeCartRepo) RemoveItem(ctx context.Context, userID, productID int64) error {
	items := f.items[userID][:0]
	for _, item := range f.items[userID] {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	f.items[userID] = items
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, userID int64) error {
	f.items[userID] = nil
	return nil
}

func (f *fakeCartRepo) Delete(ctx context.Context, userID int64) error {
	delete(f.carts, userID)
	delete(f.items, userID)
	return nil
}

type fakeProductRepo struct {
	products map[int64]*domproduct.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*domproduct.Product), nextID: 100}
}

func (f *fakeProductRepo) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	f.nextID++
	cloned := *p
	cloned.ID = f.nextID
	cloned.CreatedAt = time.Now()
	cloned.UpdatedAt = cloned.CreatedAt
	f.products[cloned.ID] = &cloned
	result := cloned
	return &result, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	if _, ok := f.products[p.ID]; !ok {
		return nil, domproduct.ErrProductNotFound
	}
	cloned := *p
	cloned.UpdatedAt = time.Now()
	f.products[p.ID] = &cloned
	result := cloned
	return &result, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return domproduct.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	if p, ok := f.products[id]; ok {
		cloned := *p
		return &cloned, nil
	}
	return nil, domproduct.ErrProductNotFound
}

func (f *fakeProductRepo) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	var result []*domproduct.Product
	for _, p := range f.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		cloned := *p
		result = append(result, &cloned)
	}
	return result, nil
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []int64) ([]*domproduct.Product, error) {
	var result []*domproduct.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			cloned := *p
			result = append(result, &cloned)
		}
	}
	return result, nil
}

type fakeOrderRepo struct {
	orders []*domorder.Order
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *domorder.Order) (*domorder.Order, error) {
	cloned := *o
	cloned.CreatedAt = time.Now()
	f.orders = append(f.orders, &cloned)
	result := cloned
	return &result, nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domorder.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			cloned := *o
			return &cloned, nil
		}
	}
	return nil, domorder.ErrOrderNotFound
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID int64) ([]*domorder.Order, error) {
	var result []*domorder.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			cloned := *o
			result = append(result, &cloned)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) List(ctx context.Context) ([]*domorder.Order, error) {
	result := make([]*domorder.Order, 0, len(f.orders))
	for _, o := range f.orders {
		cloned := *o
		result = append(result, &cloned)
	}
	return result, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status domorder.Status) (*domorder.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			o.Status = status
			cloned := *o
			return &cloned, nil
		}
	}
	return nil, domorder.ErrOrderNotFound
}

type fakeUserRepo struct {
	users map[int64]*domuser.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domuser.User{
		1: {ID: 1, Name: "Admin", Email: "admin@example.com", Role: domuser.RoleCodeAdmin},
		2: {ID: 2, Name: "Ada", Email: "ada@example.com", Role: domuser.RoleCodeCustomer},
	}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	cloned := *u
	cloned.ID = int64(len(f.users) + 1)
	f.users[cloned.ID] = &cloned
	result := cloned
	return &result, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	if u, ok := f.users[id]; ok {
		cloned := *u
		return &cloned, nil
	}
	return nil, domuser.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, domuser.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domuser.User, error) {
	var users []*domuser.User
	for _, u := range f.users {
		cloned := *u
		users = append(users, &cloned)
	}
	return users, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return domuser.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type testEnv struct {
	router      chi.Router
	tokenSvc    *security.JWTService
	cartRepo    *fakeCartRepo
	productRepo *fakeProductRepo
	orderRepo   *fakeOrderRepo
	userRepo    *fakeUserRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cartRepo := newFakeCartRepo()
	productRepo := newFakeProductRepo()
	productRepo.products[1] = &domproduct.Product{
		ID: 1, Name: "Sneaker", Category: "Shoes",
		Color: domproduct.ColorBlack, Size: domproduct.SizeM,
		Price: decimal.RequireFromString("10.00"), Stock: 10,
	}
	productRepo.products[2] = &domproduct.Product{
		ID: 2, Name: "Hoodie", Category: "Tops",
		Color: domproduct.ColorBlue, Size: domproduct.SizeL,
		Price: decimal.RequireFromString("5.00"), Stock: 3,
	}
	orderRepo := &fakeOrderRepo{}
	userRepo := newFakeUserRepo()

	tokenSvc := security.NewJWTService("test-secret", time.Hour)
	passwordSvc := security.NewBcryptService(0)
	owners := locks.NewKeyed()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	var seq int
	newID := func() string {
		seq++
		return fmt.Sprintf("order-%d", seq)
	}

	api := NewAPI(Dependencies{
		AuthService:    authuc.NewService(userRepo, passwordSvc, tokenSvc),
		UserService:    useruc.NewService(userRepo),
		ProductService: productuc.NewService(productRepo),
		CartService:    cartuc.NewService(cartRepo, productRepo, owners),
		OrderService:   orderuc.NewService(cartRepo, productRepo, orderRepo, userRepo, nil, owners, newID, logger),
		TokenService:   tokenSvc,
	})

	return &testEnv{
		router:      api.Router(),
		tokenSvc:    tokenSvc,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
	}
}

func (e *testEnv) tokenFor(t *testing.T, userID int64) string {
	t.Helper()
	u, err := e.userRepo.GetByID(context.Background(), userID)
	require.NoError(t, err)
	token, err := e.tokenSvc.GenerateToken(u)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	return payload
}
