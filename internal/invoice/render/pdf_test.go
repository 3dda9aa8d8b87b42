package render

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nithyashree19/electromart/internal/domain"
	"github.com/nithyashree19/electromart/internal/invoice"
	"github.com/nithyashree19/electromart/internal/pricing"
)

func sampleDocument() *invoice.Document {
	items := []domain.CartItem{
		{
			Product: domain.Product{
				ID:    1,
				Name:  "Galaxy Note 23 Ultra",
				Brand: "Samsung",
				Price: 1299,
			},
			Quantity: 1,
		},
		{
			Product: domain.Product{
				ID:    2,
				Name:  "Bose QuietComfort Ultra",
				Brand: "Bose",
				Price: 429,
			},
			Quantity: 2,
		},
	}
	customer := domain.CustomerDetails{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "+1 555 0100",
		Address: "42 Elm Street",
	}
	return invoice.BuildDocument("ELM-123456", time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		customer, items, pricing.Calculate(items))
}

func TestPDFRenderer_ProducesPDF(t *testing.T) {
	data, err := NewPDFRenderer().Render(context.Background(), sampleDocument())

	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPDFRenderer_FreeShippingDocument(t *testing.T) {
	items := []domain.CartItem{
		{Product: domain.Product{ID: 1, Name: "Dell XPS 15 OLED", Brand: "Dell", Price: 2199}, Quantity: 2},
	}
	doc := invoice.BuildDocument("ELM-000002", time.Now(),
		domain.CustomerDetails{Name: "A", Email: "a@b.c", Phone: "1"},
		items, pricing.Calculate(items))

	data, err := NewPDFRenderer().Render(context.Background(), doc)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestPDFRenderer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPDFRenderer().Render(ctx, sampleDocument())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short name untouched", "Nintendo Switch", "Nintendo Switch"},
		{"exactly twenty", "12345678901234567890", "12345678901234567890"},
		{"long name truncated", "Bose QuietComfort Ultra", "Bose QuietComfort..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateName(tt.in))
		})
	}
}
