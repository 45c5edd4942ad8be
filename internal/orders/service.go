package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/spicy-pepper-shop/internal/store"
	pkgerrors "github.com/angelmondragon/spicy-pepper-shop/pkg/errors"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
)

const (
	MsgAccountAndItemsRequired = "Account and items are required."
	MsgInvalidItems            = "Invalid order items."
	msgAccountNotFound         = "Account not found."
)

// Service lists and places orders.
type Service interface {
	List(ctx context.Context, accountID string) ([]models.PublicOrder, error)
	Create(ctx context.Context, input CreateInput) (*models.PublicOrder, error)
}

type service struct {
	store    stateStore
	logg     *logger.Logger
	recorder Recorder
}

// ServiceParams groups the dependencies of the order service.
type ServiceParams struct {
	Store    stateStore
	Logger   *logger.Logger
	Recorder Recorder
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{store: params.Store, logg: logg, recorder: params.Recorder}, nil
}

// List returns enriched orders, restricted to one account when accountID is not blank.
func (s *service) List(ctx context.Context, accountID string) ([]models.PublicOrder, error) {
	accountID = strings.TrimSpace(accountID)
	out := []models.PublicOrder{}
	err := s.store.View(ctx, func(st *store.State) error {
		for _, order := range st.Orders {
			if accountID != "" && order.AccountID != accountID {
				continue
			}
			out = append(out, ToPublicOrder(st, order))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create validates every item against the live catalog and then applies all stock
// decrements and the new order in one transaction. Any failure leaves the store untouched.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.PublicOrder, error) {
	input.AccountID = strings.TrimSpace(input.AccountID)
	if input.AccountID == "" || len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, MsgAccountAndItemsRequired)
	}
	for i := range input.Items {
		input.Items[i].ProductID = strings.TrimSpace(input.Items[i].ProductID)
		if input.Items[i].ProductID == "" || input.Items[i].Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, MsgInvalidItems)
		}
	}

	var (
		public models.PublicOrder
		units  = map[string]int{}
	)
	err := s.store.WithTx(ctx, func(tx *store.State) error {
		if _, ok := tx.FindAccount(input.AccountID); !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, msgAccountNotFound)
		}

		items := make([]models.OrderItem, 0, len(input.Items))
		for _, item := range input.Items {
			product, ok := tx.FindProduct(item.ProductID)
			if !ok {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Product %s not found.", item.ProductID))
			}
			if product.Stock < units[item.ProductID]+item.Qty {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Not enough stock for %s.", product.Name))
			}
			units[item.ProductID] += item.Qty
			items = append(items, models.OrderItem{ProductID: item.ProductID, Qty: item.Qty})
		}

		for productID, qty := range units {
			product, _ := tx.FindProduct(productID)
			product.Stock -= qty
			tx.ReplaceProduct(product)
		}

		order := models.Order{
			ID:        tx.NewID(),
			AccountID: input.AccountID,
			Items:     items,
			Total:     CalculateTotal(tx, items),
			CreatedAt: s.store.Now(),
		}
		tx.AddOrder(order)
		public = ToPublicOrder(tx, order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.OrderCreated(units)
	}
	ctx = s.logg.WithAccountID(ctx, public.AccountID)
	ctx = s.logg.WithFields(ctx, map[string]any{"order_id": public.ID, "total": public.Total.StringFixed(2)})
	s.logg.Info(ctx, "order.created")
	return &public, nil
}
