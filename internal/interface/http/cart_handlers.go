package http

import "net/http"

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,gt=0"`
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	cart, err := a.cartSvc.GetCart(r.Context(), user.UserID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart))
}

func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	var req addCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	cart, err := a.cartSvc.AddToCart(r.Context(), user.UserID, req.ProductID, req.Quantity)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "item added to cart",
		"cart":    mapCart(cart),
	})
}

func (a *API) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	productID, err := parseIDParam(r, "productID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	cart, err := a.cartSvc.RemoveFromCart(r.Context(), user.UserID, productID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	if cart == nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "cart deleted"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "item removed from cart",
		"cart":    mapCart(cart),
	})
}
