package catalog

import (
	"context"
	"errors"

	"github.com/nithyashree19/electromart/internal/domain"
)

// Repository is the read-only product source. The catalog is supplied once
// at startup and never mutated by the engine.
type Repository interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	Close() error
}

var ErrProductNotFound = errors.New("product not found")
