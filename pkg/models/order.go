package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one submitted line of an order. It is embedded in Order and never stored alone.
type OrderItem struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// Order keeps its items in submission order. AccountID and item product ids may dangle
// after the referenced entities are deleted.
type Order struct {
	ID        string          `json:"id"`
	AccountID string          `json:"accountId"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PublicOrder is an Order enriched with the owning account's current name and email.
type PublicOrder struct {
	Order
	AccountName  string `json:"accountName"`
	AccountEmail string `json:"accountEmail"`
}

// ItemCount is the sum of quantities across all items.
func (o Order) ItemCount() int {
	total := 0
	for _, item := range o.Items {
		total += item.Qty
	}
	return total
}
