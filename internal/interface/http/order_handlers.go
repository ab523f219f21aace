package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	domorder "example.com/product-catalog/internal/domain/order"
)

var errInvalidOrderID = errors.New("invalid order id")

type placeOrderRequest struct {
	PaymentMethod string `json:"payment_method"`
}

func (a *API) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	// Body is optional; an absent payment method falls back to the default.
	var req placeOrderRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := a.decodeAndValidate(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
	}

	order, err := a.orderSvc.PlaceOrder(r.Context(), user.UserID, domorder.PaymentMethod(req.PaymentMethod))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "order placed successfully",
		"order":   mapOrder(order),
	})
}

func (a *API) handleListMyOrders(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	orders, err := a.orderSvc.ListMine(r.Context(), user.UserID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, mapDetailedOrder(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (a *API) handleListAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := a.orderSvc.ListAll(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		m := mapDetailedOrder(&o.Detailed)
		m["owner_name"] = o.OwnerName
		m["owner_email"] = o.OwnerEmail
		resp = append(resp, m)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (a *API) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, errInvalidOrderID)
		return
	}

	var req updateOrderStatusRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	order, err := a.orderSvc.UpdateStatus(r.Context(), orderID, domorder.Status(req.Status))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(order))
}
