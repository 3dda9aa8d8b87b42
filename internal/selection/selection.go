package selection

import (
	"sync"

	"github.com/nithyashree19/electromart/internal/domain"
	"github.com/nithyashree19/electromart/internal/events"
)

// Manager tracks which cart items are eligible for the current pricing and
// invoice operation. The selection is always a subset of the cart: every
// cart mutation resets it to the full new identifier set, so stale
// references never survive a mutation.
type Manager struct {
	mu  sync.RWMutex
	ids map[int64]struct{}
}

func NewManager() *Manager {
	return &Manager{ids: make(map[int64]struct{})}
}

// Follow resets the selection to the full cart on every cart event.
// snapshot supplies the post-mutation cart.
func (m *Manager) Follow(emitter *events.Emitter, snapshot func() domain.Cart) {
	emitter.Subscribe(func(events.CartEvent) {
		m.ResetToAll(snapshot())
	})
}

// ResetToAll sets the selection to exactly the cart's identifier set.
func (m *Manager) ResetToAll(cart domain.Cart) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = make(map[int64]struct{}, len(cart.Items))
	for _, item := range cart.Items {
		m.ids[item.ID] = struct{}{}
	}
}

// Toggle flips membership of the given ID. IDs not in the cart are ignored.
func (m *Manager) Toggle(cart domain.Cart, productID int64) {
	if !cart.Contains(productID) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ids[productID]; ok {
		delete(m.ids, productID)
	} else {
		m.ids[productID] = struct{}{}
	}
}

// SelectAll selects every item in the cart.
func (m *Manager) SelectAll(cart domain.Cart) {
	m.ResetToAll(cart)
}

// DeselectAll empties the selection.
func (m *Manager) DeselectAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = make(map[int64]struct{})
}

// ToggleAll mirrors the storefront's select-all button: when everything is
// already selected it deselects everything, otherwise it selects everything.
func (m *Manager) ToggleAll(cart domain.Cart) {
	if m.Count() == len(cart.Items) {
		m.DeselectAll()
		return
	}
	m.SelectAll(cart)
}

// SelectedItems returns the selected cart items in cart order.
func (m *Manager) SelectedItems(cart domain.Cart) []domain.CartItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	selected := make([]domain.CartItem, 0, len(m.ids))
	for _, item := range cart.Items {
		if _, ok := m.ids[item.ID]; ok {
			selected = append(selected, item)
		}
	}
	return selected
}

// Has reports whether a product ID is selected.
func (m *Manager) Has(productID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.ids[productID]
	return ok
}

// Count returns the number of selected IDs.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ids)
}
