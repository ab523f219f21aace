package http

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	domproduct "example.com/product-catalog/internal/domain/product"
)

var errInvalidPrice = errors.New("invalid price")

type createProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"required"`
	Size        string `json:"size" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Discount    int64  `json:"discount" validate:"gte=0,lte=100"`
	Stock       int64  `json:"stock" validate:"gte=0"`
}

type updateProductRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Size        string `json:"size"`
	Price       string `json:"price"`
	Discount    int64  `json:"discount" validate:"gte=0,lte=100"`
	Stock       int64  `json:"stock" validate:"gte=0"`
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	filter := domproduct.ListFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	products, err := a.productSvc.List(r.Context(), filter)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	p, err := a.productSvc.GetByID(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		respondError(w, http.StatusBadRequest, errInvalidPrice)
		return
	}

	p, err := a.productSvc.Create(r.Context(), &domproduct.Product{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Color:       domproduct.Color(req.Color),
		Size:        domproduct.Size(req.Size),
		Price:       price,
		Discount:    req.Discount,
		Stock:       req.Stock,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapProduct(p))
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req updateProductRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	price := decimal.Zero
	if req.Price != "" {
		price, err = decimal.NewFromString(req.Price)
		if err != nil || price.IsNegative() {
			respondError(w, http.StatusBadRequest, errInvalidPrice)
			return
		}
	}

	p, err := a.productSvc.Update(r.Context(), &domproduct.Product{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Color:       domproduct.Color(req.Color),
		Size:        domproduct.Size(req.Size),
		Price:       price,
		Discount:    req.Discount,
		Stock:       req.Stock,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if err := a.productSvc.Delete(r.Context(), id); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
