package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/spicy-pepper-shop/api/responses"
	"github.com/angelmondragon/spicy-pepper-shop/api/validators"
	productsvc "github.com/angelmondragon/spicy-pepper-shop/internal/products"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
)

// productRequest is shared by create and update. Heat and stock must be whole
// numbers; price and stock may not be negative.
type productRequest struct {
	Name             validators.Text    `json:"name" validate:"required"`
	Heat             *validators.Number `json:"heat" validate:"required,finite,whole,safeint"`
	Price            *validators.Number `json:"price" validate:"required,finite,gte=0"`
	Stock            *validators.Number `json:"stock" validate:"required,finite,whole,safeint,gte=0"`
	ImageURL         validators.Text    `json:"imageUrl"`
	ShortDescription validators.Text    `json:"shortDescription"`
	Description      validators.Text    `json:"description"`
	LongDescription  validators.Text    `json:"longDescription"`
}

func (p productRequest) toInput() productsvc.ProductInput {
	return productsvc.ProductInput{
		Name:             p.Name.String(),
		Heat:             p.Heat.Int(),
		Price:            decimal.NewFromFloat(p.Price.Float()),
		Stock:            p.Stock.Int(),
		ImageURL:         p.ImageURL.String(),
		ShortDescription: p.ShortDescription.String(),
		Description:      p.Description.String(),
		LongDescription:  p.LongDescription.String(),
	}
}

func decodeProduct(r *http.Request) (productsvc.ProductInput, error) {
	var payload productRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		return productsvc.ProductInput{}, err
	}
	if err := validators.Struct(&payload, productsvc.MsgFieldsRequired); err != nil {
		return productsvc.ProductInput{}, err
	}
	return payload.toInput(), nil
}

func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeProduct(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, product)
	}
}

// UpdateProduct validates the body before resolving the id, so a bad body on an
// unknown product reports 400.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeProduct(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), chi.URLParam(r, "id"), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, removed)
	}
}
