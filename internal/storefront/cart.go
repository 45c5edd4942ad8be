package storefront

import (
	"time"

	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
)

// CartItem is a client-only cart line.
type CartItem struct {
	ProductID string
	Qty       int
}

// Cart preserves the order products were first added in.
type Cart struct {
	items []CartItem
}

// Add puts one unit of productID in the cart.
func (c *Cart) Add(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Qty++
			return
		}
	}
	c.items = append(c.items, CartItem{ProductID: productID, Qty: 1})
}

func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	total := 0
	for _, item := range c.items {
		total += item.Qty
	}
	return total
}

func (c *Cart) Clear() {
	c.items = nil
}

// OrderItems converts the cart into an order submission.
func (c *Cart) OrderItems() []models.OrderItem {
	out := make([]models.OrderItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, models.OrderItem{ProductID: item.ProductID, Qty: item.Qty})
	}
	return out
}

// StatusTTL is how long a status message stays visible.
const StatusTTL = 3 * time.Second

// Status is the transient notice shown in the header.
type Status struct {
	message string
	setAt   time.Time
}

func (s *Status) Set(message string, at time.Time) {
	s.message = message
	s.setAt = at
}

// Current returns the message while it is still visible at now.
func (s Status) Current(now time.Time) (string, bool) {
	if s.message == "" || now.Sub(s.setAt) >= StatusTTL {
		return "", false
	}
	return s.message, true
}
