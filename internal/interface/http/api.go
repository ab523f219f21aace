package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	domcart "example.com/product-catalog/internal/domain/cart"
	domorder "example.com/product-catalog/internal/domain/order"
	domproduct "example.com/product-catalog/internal/domain/product"
	domuser "example.com/product-catalog/internal/domain/user"
	authuc "example.com/product-catalog/internal/usecase/auth"
	cartuc "example.com/product-catalog/internal/usecase/cart"
	orderuc "example.com/product-catalog/internal/usecase/order"
	productuc "example.com/product-catalog/internal/usecase/product"
	useruc "example.com/product-catalog/internal/usecase/user"
)

type API struct {
	authSvc    *authuc.Service
	userSvc    *useruc.Service
	productSvc *productuc.Service
	cartSvc    *cartuc.Service
	orderSvc   *orderuc.Service
	validator  *validator.Validate
	tokenSvc   authuc.TokenService
}

type Dependencies struct {
	AuthService    *authuc.Service
	UserService    *useruc.Service
	ProductService *productuc.Service
	CartService    *cartuc.Service
	OrderService   *orderuc.Service
	TokenService   authuc.TokenService
}

func NewAPI(deps Dependencies) *API {
	return &API{
		authSvc:    deps.AuthService,
		userSvc:    deps.UserService,
		productSvc: deps.ProductService,
		cartSvc:    deps.CartService,
		orderSvc:   deps.OrderService,
		tokenSvc:   deps.TokenService,
		validator:  validator.New(),
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", a.handleRegister)
		r.Post("/auth/login", a.handleLogin)
		r.Get("/products", a.handleListProducts)
		r.Get("/products/{id}", a.handleGetProduct)

		r.Group(func(pr chi.Router) {
			pr.Use(a.authMiddleware)
			pr.Get("/me/cart", a.handleGetCart)
			pr.Post("/me/cart/items", a.handleAddCartItem)
			pr.Delete("/me/cart/items/{productID}", a.handleRemoveCartItem)
			pr.Post("/me/orders", a.handlePlaceOrder)
			pr.Get("/me/orders", a.handleListMyOrders)
		})

		r.Group(func(ar chi.Router) {
			ar.Use(a.authMiddleware)
			ar.Use(a.requireRoles(domuser.RoleCodeAdmin))

			ar.Route("/admin", func(admin chi.Router) {
				admin.Route("/products", func(rr chi.Router) {
					rr.Post("/", a.handleCreateProduct)
					rr.Put("/{id}", a.handleUpdateProduct)
					rr.Delete("/{id}", a.handleDeleteProduct)
				})

				admin.Route("/orders", func(rr chi.Router) {
					rr.Get("/", a.handleListAllOrders)
					rr.Put("/{id}/status", a.handleUpdateOrderStatus)
				})

				admin.Route("/users", func(rr chi.Router) {
					rr.Get("/", a.handleListUsers)
					rr.Delete("/{id}", a.handleDeleteUser)
				})
			})
		})
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

func mapUser(u *domuser.User) map[string]any {
	return map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

func mapProduct(p *domproduct.Product) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"category":    p.Category,
		"description": p.Description,
		"color":       p.Color,
		"size":        p.Size,
		"price":       p.Price,
		"discount":    p.Discount,
		"stock":       p.Stock,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}

func mapCart(cart *domcart.Cart) map[string]any {
	items := make([]map[string]any, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, map[string]any{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"name":       item.ProductName,
			"price":      item.ProductPrice,
		})
	}
	return map[string]any{
		"user_id": cart.UserID,
		"items":   items,
	}
}

func mapOrder(o *domorder.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, map[string]any{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
		})
	}
	return map[string]any{
		"id":             o.ID,
		"user_id":        o.UserID,
		"status":         o.Status,
		"payment_method": o.PaymentMethod,
		"total_price":    o.TotalPrice,
		"created_at":     o.CreatedAt,
		"items":          items,
	}
}

func mapDetailedOrder(d *domorder.Detailed) map[string]any {
	items := make([]map[string]any, 0, len(d.DetailedItems))
	for _, item := range d.DetailedItems {
		items = append(items, map[string]any{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"name":       item.ProductName,
			"price":      item.ProductPrice,
		})
	}
	return map[string]any{
		"id":             d.ID,
		"user_id":        d.UserID,
		"status":         d.Status,
		"payment_method": d.PaymentMethod,
		"total_price":    d.TotalPrice,
		"created_at":     d.CreatedAt,
		"items":          items,
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domcart.ErrInvalidQuantity),
		errors.Is(err, domproduct.ErrInvalidColor),
		errors.Is(err, domproduct.ErrInvalidSize),
		errors.Is(err, domuser.ErrInvalidCredential),
		errors.Is(err, domuser.ErrInvalidRoleCode):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, domorder.ErrEmptyCart),
		errors.Is(err, domorder.ErrInvalidPayment),
		errors.Is(err, domorder.ErrInvalidStatus):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domcart.ErrCartNotFound),
		errors.Is(err, domorder.ErrOrderNotFound),
		errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domuser.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domuser.ErrEmailAlreadyUsed):
		respondError(w, http.StatusConflict, err)
	case errors.Is(err, domuser.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
