package catalog

import (
	"context"

	"github.com/nithyashree19/electromart/internal/domain"
)

// MemoryRepository serves a fixed product list from memory, preserving the
// order it was supplied in. Used by tests and deployments without a database.
type MemoryRepository struct {
	products []domain.Product
	byID     map[int64]domain.Product
}

func NewMemoryRepository(products []domain.Product) *MemoryRepository {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &MemoryRepository{products: products, byID: byID}
}

func (r *MemoryRepository) GetAllProducts(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *MemoryRepository) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *MemoryRepository) Close() error {
	return nil
}
