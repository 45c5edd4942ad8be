package orders

import (
	"github.com/angelmondragon/spicy-pepper-shop/internal/store"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
	"github.com/shopspring/decimal"
)

const (
	UnknownAccountName  = "Unknown account"
	UnknownAccountEmail = "unknown@example.com"
)

// CalculateTotal sums qty × current price. Items whose product has since been
// deleted contribute nothing.
func CalculateTotal(st *store.State, items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		product, ok := st.FindProduct(item.ProductID)
		if !ok {
			continue
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	return total
}

// ToPublicOrder attaches the owner's current name and email. It is evaluated on
// every read so account changes show up in existing orders.
func ToPublicOrder(st *store.State, order models.Order) models.PublicOrder {
	public := models.PublicOrder{
		Order:        order,
		AccountName:  UnknownAccountName,
		AccountEmail: UnknownAccountEmail,
	}
	if acct, ok := st.FindAccount(order.AccountID); ok {
		public.AccountName = acct.Name
		public.AccountEmail = acct.Email
	}
	public.Items = append([]models.OrderItem(nil), order.Items...)
	return public
}
