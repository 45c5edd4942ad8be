package products

import (
	"context"
	"strings"

	"github.com/angelmondragon/spicy-pepper-shop/internal/store"
	pkgerrors "github.com/angelmondragon/spicy-pepper-shop/pkg/errors"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
)

const (
	// MsgFieldsRequired is returned for any create or update input that fails validation.
	MsgFieldsRequired = "Name, heat, price, and stock are required."
	msgNotFound       = "Product not found."
)

type stateStore interface {
	View(ctx context.Context, fn func(st *store.State) error) error
	WithTx(ctx context.Context, fn func(tx *store.State) error) error
}

// Service manages the pepper catalog.
type Service interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, input ProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
}

type service struct {
	store stateStore
	logg  *logger.Logger
}

func NewService(st stateStore, logg *logger.Logger) Service {
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{store: st, logg: logg}
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := s.store.View(ctx, func(st *store.State) error {
		out = append(make([]models.Product, 0, len(st.Products)), st.Products...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	var created models.Product
	err := s.store.WithTx(ctx, func(tx *store.State) error {
		created = build(tx.NewID(), input, models.Product{})
		tx.AddProduct(created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", created.ID), "product.created")
	return &created, nil
}

func (s *service) Update(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	var updated models.Product
	err := s.store.WithTx(ctx, func(tx *store.State) error {
		existing, ok := tx.FindProduct(id)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, msgNotFound)
		}
		updated = build(existing.ID, input, existing)
		tx.ReplaceProduct(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", updated.ID), "product.updated")
	return &updated, nil
}

func (s *service) Delete(ctx context.Context, id string) (*models.Product, error) {
	var removed models.Product
	err := s.store.WithTx(ctx, func(tx *store.State) error {
		product, ok := tx.RemoveProduct(id)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, msgNotFound)
		}
		removed = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", removed.ID), "product.deleted")
	return &removed, nil
}

func validateInput(input *ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || input.Price.IsNegative() || input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, MsgFieldsRequired)
	}
	return nil
}

// build applies input over base. Blank text fields take base's value, then the generated default.
func build(id string, input ProductInput, base models.Product) models.Product {
	imageURL := firstNonBlank(input.ImageURL, base.ImageURL, DefaultImageURL)
	short := firstNonBlank(input.ShortDescription, input.Description, base.ShortDescription, base.Description)
	if short == "" {
		short = DefaultShortDescription(input.Name)
	}
	long := firstNonBlank(input.LongDescription, base.LongDescription)
	if long == "" {
		long = DefaultLongDescription(input.Name, short)
	}

	return models.Product{
		ID:               id,
		Name:             input.Name,
		Heat:             input.Heat,
		Price:            input.Price,
		Stock:            input.Stock,
		ImageURL:         imageURL,
		ShortDescription: short,
		LongDescription:  long,
		Description:      short,
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
