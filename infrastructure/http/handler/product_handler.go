package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mercato/mercato/application/port/inbound"
	"github.com/mercato/mercato/application/port/outbound"
	"github.com/mercato/mercato/infrastructure/http/middleware"
	"github.com/mercato/mercato/infrastructure/http/response"
	"github.com/mercato/mercato/infrastructure/http/validator"
	"github.com/mercato/mercato/infrastructure/service/logger"
)

type ProductHandler struct {
	productUseCase inbound.ProductUseCase
	logger         logger.Logger
}

func NewProductHandler(productUseCase inbound.ProductUseCase, log logger.Logger) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		logger:         log,
	}
}

// List is public. Anonymous callers and regular users only see active
// products; admins can widen the view with is_active.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := outbound.ProductFilters{
		Search:   query.Get("search"),
		Category: query.Get("category"),
		Brand:    query.Get("brand"),
		SortBy:   query.Get("sort_by"),
		Order:    query.Get("order"),
	}

	if raw := query.Get("min_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			response.UnprocessableEntity(w, "min_price must be a non-negative number")
			return
		}
		filters.MinPrice = &price
	}
	if raw := query.Get("max_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			response.UnprocessableEntity(w, "max_price must be a non-negative number")
			return
		}
		filters.MaxPrice = &price
	}
	if raw := query.Get("in_stock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			response.UnprocessableEntity(w, "in_stock must be true or false")
			return
		}
		filters.InStock = inStock
	}

	actor := middleware.IdentityFrom(r.Context())
	if actor != nil && actor.IsAdmin() {
		if raw := query.Get("is_active"); raw != "" {
			active, err := strconv.ParseBool(raw)
			if err != nil {
				response.UnprocessableEntity(w, "is_active must be true or false")
				return
			}
			filters.IsActive = &active
		}
	} else {
		active := true
		filters.IsActive = &active
	}

	req := inbound.ListProductsRequest{
		Skip:    parseIntParam(query.Get("skip"), 0),
		Limit:   clampLimit(parseIntParam(query.Get("limit"), 20)),
		Filters: filters,
	}

	products, err := h.productUseCase.List(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Products retrieved", products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.productUseCase.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	// Inactive products stay hidden from everyone but admins.
	if !product.IsActive {
		actor := middleware.IdentityFrom(r.Context())
		if actor == nil || !actor.IsAdmin() {
			response.NotFound(w, "Product not found")
			return
		}
	}

	response.Success(w, http.StatusOK, "Product retrieved", product)
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.productUseCase.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Categories retrieved", categories)
}

func (h *ProductHandler) Brands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.productUseCase.Brands(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Brands retrieved", brands)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateRequired(req.Name) {
		response.UnprocessableEntity(w, "Product name is required")
		return
	}
	if req.Price < 0 {
		response.UnprocessableEntity(w, "Price must be non-negative")
		return
	}
	if req.Stock < 0 {
		response.UnprocessableEntity(w, "Stock must be non-negative")
		return
	}

	product, err := h.productUseCase.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Product created", product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req inbound.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Name != nil && !validator.ValidateRequired(*req.Name) {
		response.UnprocessableEntity(w, "Product name cannot be empty")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		response.UnprocessableEntity(w, "Price must be non-negative")
		return
	}
	if req.Stock != nil && *req.Stock < 0 {
		response.UnprocessableEntity(w, "Stock must be non-negative")
		return
	}

	product, err := h.productUseCase.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Product updated", product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.productUseCase.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Product deactivated", nil)
}
