package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nithyashree19/electromart/internal/cart"
	"github.com/nithyashree19/electromart/internal/catalog"
	"github.com/nithyashree19/electromart/internal/domain"
	"github.com/nithyashree19/electromart/internal/invoice"
	"github.com/nithyashree19/electromart/internal/pricing"
	"github.com/nithyashree19/electromart/internal/selection"
)

// Handler is a thin adapter between HTTP and the cart engine. No engine
// invariant lives here: it parses, delegates and serializes.
type Handler struct {
	catalog catalog.Repository
	store   *cart.Store
	sel     *selection.Manager
	builder *invoice.Builder
	logger  *zap.Logger
	timeout time.Duration
}

func NewHandler(cat catalog.Repository, store *cart.Store, sel *selection.Manager,
	builder *invoice.Builder, logger *zap.Logger) *Handler {
	return &Handler{
		catalog: cat,
		store:   store,
		sel:     sel,
		builder: builder,
		logger:  logger,
		timeout: 30 * time.Second,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items     []domain.CartItem `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"item_count"`
}

type SelectionResponseDTO struct {
	SelectedIDs []int64 `json:"selected_ids"`
	Count       int     `json:"count"`
}

type InvoiceResponseDTO struct {
	Filename string `json:"filename"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", h.ListProducts)

		r.Get("/cart", h.GetCart)
		r.Delete("/cart", h.ClearCart)
		r.Post("/cart/items", h.AddItem)
		r.Put("/cart/items/{product_id}", h.UpdateQuantity)
		r.Delete("/cart/items/{product_id}", h.RemoveItem)

		r.Get("/selection", h.GetSelection)
		r.Put("/selection/all", h.ToggleAll)
		r.Delete("/selection", h.DeselectAll)
		r.Put("/selection/{product_id}/toggle", h.ToggleSelection)

		r.Get("/pricing", h.GetPricing)

		r.Post("/invoice", h.GenerateInvoice)
	})

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "electromart",
	})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.GetAllProducts(ctx)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err),
			zap.String("request_id", getRequestID(r.Context())))
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load catalog")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondCart(w, http.StatusOK, h.store.Snapshot())
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "unknown product")
			return
		}
		h.logger.Error("failed to look up product", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load product")
		return
	}

	updated, err := h.store.AddItem(product, req.Quantity)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
		return
	}
	respondCart(w, http.StatusCreated, updated)
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}

	// Zero or negative removes the item, matching the engine semantics.
	respondCart(w, http.StatusOK, h.store.SetQuantity(productID, req.Quantity))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}
	respondCart(w, http.StatusOK, h.store.RemoveItem(productID))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	respondCart(w, http.StatusOK, h.store.Clear())
}

func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	respondSelection(w, h.sel, h.store.Snapshot())
}

func (h *Handler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}
	snapshot := h.store.Snapshot()
	h.sel.Toggle(snapshot, productID)
	respondSelection(w, h.sel, snapshot)
}

func (h *Handler) ToggleAll(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Snapshot()
	h.sel.ToggleAll(snapshot)
	respondSelection(w, h.sel, snapshot)
}

func (h *Handler) DeselectAll(w http.ResponseWriter, r *http.Request) {
	h.sel.DeselectAll()
	respondSelection(w, h.sel, h.store.Snapshot())
}

func (h *Handler) GetPricing(w http.ResponseWriter, r *http.Request) {
	items := h.sel.SelectedItems(h.store.Snapshot())
	respondJSON(w, http.StatusOK, pricing.Calculate(items))
}

func (h *Handler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var customer domain.CustomerDetails
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	filename, err := h.builder.Generate(ctx, customer)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			respondError(w, http.StatusUnprocessableEntity, "validation_failed", verr.Error())
		case errors.Is(err, invoice.ErrGenerationInProgress):
			respondError(w, http.StatusConflict, "generation_in_progress", err.Error())
		case errors.Is(err, invoice.ErrNothingSelected):
			respondError(w, http.StatusConflict, "nothing_selected", err.Error())
		default:
			h.logger.Error("invoice generation failed", zap.Error(err),
				zap.String("request_id", getRequestID(r.Context())))
			respondError(w, http.StatusInternalServerError, "generation_failed", "invoice generation failed, please retry")
		}
		return
	}

	respondJSON(w, http.StatusCreated, InvoiceResponseDTO{Filename: filename})
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}

func respondCart(w http.ResponseWriter, status int, c domain.Cart) {
	if c.Items == nil {
		c.Items = []domain.CartItem{}
	}
	respondJSON(w, status, CartResponseDTO{
		Items:     c.Items,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	})
}

func respondSelection(w http.ResponseWriter, sel *selection.Manager, c domain.Cart) {
	ids := make([]int64, 0)
	for _, id := range c.IDs() {
		if sel.Has(id) {
			ids = append(ids, id)
		}
	}
	respondJSON(w, http.StatusOK, SelectionResponseDTO{
		SelectedIDs: ids,
		Count:       sel.Count(),
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
