package record

import (
	"context"
	"errors"

	"github.com/nithyashree19/electromart/internal/domain"
)

// Store persists the cart contents as a single keyed record so the cart
// survives process restarts. The cart store defines this interface;
// the Redis and Mongo implementations satisfy it.
type Store interface {
	Load(ctx context.Context) ([]domain.CartItem, error)
	Save(ctx context.Context, items []domain.CartItem) error
	Delete(ctx context.Context) error
}

var ErrNoSavedCart = errors.New("no saved cart")
