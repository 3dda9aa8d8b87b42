package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nithyashree19/electromart/internal/cart"
	"github.com/nithyashree19/electromart/internal/catalog"
	"github.com/nithyashree19/electromart/internal/domain"
	"github.com/nithyashree19/electromart/internal/events"
	"github.com/nithyashree19/electromart/internal/export"
	"github.com/nithyashree19/electromart/internal/invoice"
	"github.com/nithyashree19/electromart/internal/invoice/render"
	"github.com/nithyashree19/electromart/internal/selection"
)

type selectionSource struct {
	store *cart.Store
	sel   *selection.Manager
}

func (s selectionSource) SelectedItems() []domain.CartItem {
	return s.sel.SelectedItems(s.store.Snapshot())
}

func setupHandler(t *testing.T) *Handler {
	t.Helper()

	cat := catalog.NewMemoryRepository([]domain.Product{
		{ID: 1, Name: "Galaxy Note 23 Ultra", Brand: "Samsung", Category: "Smartphone", Price: 1299},
		{ID: 2, Name: "Bose QuietComfort Ultra", Brand: "Bose", Category: "Audio", Price: 429},
	})

	emitter := events.NewEmitter()
	store := cart.NewStore(context.Background(), nil, emitter, zap.NewNop())
	sel := selection.NewManager()
	sel.Follow(emitter, store.Snapshot)

	sink, err := export.NewFileSink(t.TempDir())
	require.NoError(t, err)

	builder := invoice.NewBuilder(
		selectionSource{store: store, sel: sel},
		&invoice.CounterNumberGenerator{},
		render.NewPDFRenderer(),
		sink,
		zap.NewNop(),
	)

	return NewHandler(cat, store, sel, builder, zap.NewNop())
}

func doRequest(t *testing.T, h *Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) CartResponseDTO {
	t.Helper()
	var resp CartResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAddItem(t *testing.T) {
	h := setupHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 2})

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.ItemCount)
	assert.InDelta(t, 2598.0, resp.Total, 1e-9)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	h := setupHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 99, Quantity: 1})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	h := setupHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: -1})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateQuantity_ZeroRemovesItem(t *testing.T) {
	h := setupHandler(t)
	doRequest(t, h, http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 1})

	rec := doRequest(t, h, http.MethodPut, "/api/v1/cart/items/1", UpdateQuantityRequestDTO{Quantity: 0})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestRemoveItem_IsIdempotent(t *testing.T) {
	h := setupHandler(t)
	doRequest(t, h, http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 1})

	first := doRequest(t, h, http.MethodDelete, "/api/v1/cart/items/1", nil)
	second := doRequest(t, h, http.MethodDelete, "/api/v1/cart/items/1", nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Empty(t, decodeCart(t, second).Items)
}

func TestClearCart(t *testing.T) {
	h := setupHandler(t)
	doRequest(t, h, http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 1})

	rec := doRequest(t, h, http.MethodDelete, "/api/v1/cart", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestSelection_FollowsCartAndToggles(t *testing.T) {
	h := setupHandler(t)
	doRequest(t, h, http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 1})
	doRequest(t, h, http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 2, Quantity: 1})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/selection", nil)
	var sel SelectionResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sel))
	assert.Equal(t, []int64{1, 2}, sel.SelectedIDs)

	rec = doRequest(t, h, http.MethodPut, "/api/v1/selection/1/toggle", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sel))
	assert.Equal(t, []int64{2}, sel.SelectedIDs)
}

func TestGetPricing_EmptySelectionBoundary(t *testing.T) {
	h := setupHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/pricing", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var b domain.PricingBreakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Zero(t, b.Subtotal)
	assert.InDelta(t, 99.0, b.Total, 1e-9)
}

func TestGenerateInvoice(t *testing.T) {
	h := setupHandler(t)
	doRequest(t, h, http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 1})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/invoice", domain.CustomerDetails{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "555-0100",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp InvoiceResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ElectroMart-Invoice-ELM-000001-JaneDoe.pdf", resp.Filename)
}

func TestGenerateInvoice_MissingPhone(t *testing.T) {
	h := setupHandler(t)
	doRequest(t, h, http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 1})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/invoice", domain.CustomerDetails{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Cart and selection are untouched by the failed attempt.
	cartRec := doRequest(t, h, http.MethodGet, "/api/v1/cart", nil)
	assert.Len(t, decodeCart(t, cartRec).Items, 1)
}

func TestGenerateInvoice_NothingSelected(t *testing.T) {
	h := setupHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/invoice", domain.CustomerDetails{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "555-0100",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHealth(t *testing.T) {
	h := setupHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}
