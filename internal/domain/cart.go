package domain

import "time"

// CartItem is a product snapshot plus the quantity in the cart.
// AddedAt is set on first insertion and survives quantity updates.
type CartItem struct {
	Product  `bson:",inline"`
	Quantity int       `json:"quantity" bson:"quantity"`
	AddedAt  time.Time `json:"addedAt" bson:"added_at"`
}

// LineTotal returns unit price times quantity.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is an ordered sequence of items. Insertion order is preserved and
// there is at most one item per product ID.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Total sums price * quantity over all items.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount sums quantities over all items.
func (c Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Contains reports whether a product is in the cart.
func (c Cart) Contains(productID int64) bool {
	_, ok := c.Get(productID)
	return ok
}

// Get returns the item for a product ID, if present.
func (c Cart) Get(productID int64) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// IDs returns the product IDs in cart order.
func (c Cart) IDs() []int64 {
	ids := make([]int64, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ID)
	}
	return ids
}
