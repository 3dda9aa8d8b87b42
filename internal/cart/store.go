package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nithyashree19/electromart/internal/cart/record"
	"github.com/nithyashree19/electromart/internal/domain"
	"github.com/nithyashree19/electromart/internal/events"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Store owns the cart contents. Mutations come from a single logical writer
// (the presentation layer), but the mutex keeps snapshots safe when the HTTP
// facade reads from multiple goroutines.
//
// Persistence is best-effort: after any mutation that leaves the cart
// non-empty the full cart is written to the record, and write failures are
// logged rather than surfaced. Only Clear deletes the record; a cart emptied
// by removing its last item leaves the previous record in place. That keeps
// parity with the original storefront behavior.
type Store struct {
	mu        sync.Mutex
	persistMu sync.Mutex
	items     []domain.CartItem
	rec       record.Store
	emitter   *events.Emitter
	logger    *zap.Logger

	persistTimeout time.Duration
	now            func() time.Time
}

// NewStore builds a cart store and rehydrates it from the durable record.
// An unreadable or corrupt record is treated as "no saved cart": the store
// logs the failure and starts empty.
func NewStore(ctx context.Context, rec record.Store, emitter *events.Emitter, logger *zap.Logger) *Store {
	s := &Store{
		rec:            rec,
		emitter:        emitter,
		logger:         logger,
		persistTimeout: 2 * time.Second,
		now:            time.Now,
	}

	if rec == nil {
		return s
	}

	items, err := rec.Load(ctx)
	if err != nil {
		if !errors.Is(err, record.ErrNoSavedCart) {
			logger.Warn("could not load saved cart, starting empty", zap.Error(err))
		}
		return s
	}

	s.items = normalizeItems(items)
	if dropped := len(items) - len(s.items); dropped > 0 {
		logger.Warn("normalized invalid entries in saved cart", zap.Int("entries", dropped))
	}
	logger.Info("cart restored from durable record", zap.Int("items", len(s.items)))
	return s
}

// normalizeItems re-establishes the cart invariants on a loaded record:
// entries with a quantity below 1 are dropped and duplicate product IDs are
// merged into the first occurrence.
func normalizeItems(items []domain.CartItem) []domain.CartItem {
	cleaned := make([]domain.CartItem, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		if i, ok := index[item.ID]; ok {
			cleaned[i].Quantity += item.Quantity
			continue
		}
		index[item.ID] = len(cleaned)
		cleaned = append(cleaned, item)
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

// AddItem inserts a product or, when it is already in the cart, adds to its
// quantity. AddedAt is stamped on first insertion only.
func (s *Store) AddItem(product domain.Product, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		return s.Snapshot(), ErrInvalidQuantity
	}

	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, domain.CartItem{
			Product:  product,
			Quantity: quantity,
			AddedAt:  s.now(),
		})
	}
	snapshot := s.snapshotLocked()
	s.persistAndUnlock(snapshot)

	s.notify(events.CartEvent{
		Type:        events.EventItemAdded,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
	})
	return snapshot, nil
}

// RemoveItem removes the item with the given product ID. Removing an absent
// item is a no-op, not an error.
func (s *Store) RemoveItem(productID int64) domain.Cart {
	s.mu.Lock()
	removed := false
	var name string
	for i, item := range s.items {
		if item.ID == productID {
			name = item.Name
			s.items = append(s.items[:i], s.items[i+1:]...)
			removed = true
			break
		}
	}
	snapshot := s.snapshotLocked()
	if !removed {
		s.mu.Unlock()
		return snapshot
	}
	s.persistAndUnlock(snapshot)

	s.notify(events.CartEvent{
		Type:        events.EventItemRemoved,
		ProductID:   productID,
		ProductName: name,
	})
	return snapshot
}

// SetQuantity overwrites the quantity of the matching item. A quantity of
// zero or less removes the item; an absent ID is a no-op.
func (s *Store) SetQuantity(productID int64, quantity int) domain.Cart {
	if quantity <= 0 {
		return s.RemoveItem(productID)
	}

	s.mu.Lock()
	updated := false
	var name string
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			name = s.items[i].Name
			updated = true
			break
		}
	}
	snapshot := s.snapshotLocked()
	if !updated {
		s.mu.Unlock()
		return snapshot
	}
	s.persistAndUnlock(snapshot)

	s.notify(events.CartEvent{
		Type:        events.EventQuantityChanged,
		ProductID:   productID,
		ProductName: name,
		Quantity:    quantity,
	})
	return snapshot
}

// Clear empties the cart and erases the durable record.
func (s *Store) Clear() domain.Cart {
	s.mu.Lock()
	s.items = nil
	snapshot := s.snapshotLocked()

	// Same hand-over as persistAndUnlock, so the delete cannot be
	// overtaken by a persist from an earlier mutation.
	s.persistMu.Lock()
	s.mu.Unlock()
	if s.rec != nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
		if err := s.rec.Delete(ctx); err != nil {
			s.logger.Warn("failed to delete cart record", zap.Error(err))
		}
		cancel()
	}
	s.persistMu.Unlock()

	s.notify(events.CartEvent{Type: events.EventCartCleared})
	return snapshot
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Total sums price * quantity over the whole cart.
func (s *Store) Total() float64 {
	return s.Snapshot().Total()
}

// ItemCount sums quantities over the whole cart.
func (s *Store) ItemCount() int {
	return s.Snapshot().ItemCount()
}

// Contains reports whether a product is in the cart.
func (s *Store) Contains(productID int64) bool {
	return s.Snapshot().Contains(productID)
}

// Get returns the cart item for a product ID, if present.
func (s *Store) Get(productID int64) (domain.CartItem, bool) {
	return s.Snapshot().Get(productID)
}

func (s *Store) snapshotLocked() domain.Cart {
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return domain.Cart{Items: items}
}

// persistAndUnlock writes the full cart to the durable record and releases
// s.mu. Callers hold s.mu; persistMu is taken before s.mu is released, so
// record writes land in mutation order. The write is skipped when the cart
// is empty: only Clear touches the record on that path.
func (s *Store) persistAndUnlock(snapshot domain.Cart) {
	s.persistMu.Lock()
	s.mu.Unlock()
	defer s.persistMu.Unlock()

	if s.rec == nil || len(snapshot.Items) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()

	if err := s.rec.Save(ctx, snapshot.Items); err != nil {
		s.logger.Warn("failed to persist cart", zap.Error(err))
	}
}

func (s *Store) notify(ev events.CartEvent) {
	if s.emitter == nil {
		return
	}
	ev.At = s.now()
	s.emitter.Notify(ev)
}
