package store

import (
	"slices"
	"strconv"

	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
)

// State is the whole shop: three collections plus the id counter they share.
type State struct {
	NextID   int              `json:"nextId"`
	Accounts []models.Account `json:"accounts"`
	Products []models.Product `json:"products"`
	Orders   []models.Order   `json:"orders"`
}

// NewID returns the current counter value as a string and advances it.
func (s *State) NewID() string {
	id := strconv.Itoa(s.NextID)
	s.NextID++
	return id
}

func (s *State) FindAccount(id string) (models.Account, bool) {
	if i := s.accountIndex(id); i >= 0 {
		return s.Accounts[i], true
	}
	return models.Account{}, false
}

func (s *State) FindProduct(id string) (models.Product, bool) {
	if i := s.productIndex(id); i >= 0 {
		return s.Products[i], true
	}
	return models.Product{}, false
}

func (s *State) AddAccount(account models.Account) {
	s.Accounts = append(s.Accounts, account)
}

func (s *State) AddProduct(product models.Product) {
	s.Products = append(s.Products, product)
}

func (s *State) AddOrder(order models.Order) {
	s.Orders = append(s.Orders, order)
}

// ReplaceProduct swaps the stored product with the same id. It reports false when
// no such product exists.
func (s *State) ReplaceProduct(product models.Product) bool {
	i := s.productIndex(product.ID)
	if i < 0 {
		return false
	}
	s.Products[i] = product
	return true
}

// RemoveAccount deletes the account and returns it. Orders keep the dangling id.
func (s *State) RemoveAccount(id string) (models.Account, bool) {
	i := s.accountIndex(id)
	if i < 0 {
		return models.Account{}, false
	}
	removed := s.Accounts[i]
	s.Accounts = slices.Delete(s.Accounts, i, i+1)
	return removed, true
}

// RemoveProduct deletes the product and returns it. Orders keep the dangling id.
func (s *State) RemoveProduct(id string) (models.Product, bool) {
	i := s.productIndex(id)
	if i < 0 {
		return models.Product{}, false
	}
	removed := s.Products[i]
	s.Products = slices.Delete(s.Products, i, i+1)
	return removed, true
}

func (s *State) accountIndex(id string) int {
	return slices.IndexFunc(s.Accounts, func(a models.Account) bool { return a.ID == id })
}

func (s *State) productIndex(id string) int {
	return slices.IndexFunc(s.Products, func(p models.Product) bool { return p.ID == id })
}

// Clone returns a deep copy; order item slices are copied too.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	orders := make([]models.Order, len(s.Orders))
	for i, order := range s.Orders {
		order.Items = slices.Clone(order.Items)
		orders[i] = order
	}
	return &State{
		NextID:   s.NextID,
		Accounts: cloneOrEmpty(s.Accounts),
		Products: cloneOrEmpty(s.Products),
		Orders:   orders,
	}
}

func cloneOrEmpty[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
