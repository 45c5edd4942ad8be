package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/spicy-pepper-shop/api/responses"
	"github.com/angelmondragon/spicy-pepper-shop/api/validators"
	accountsvc "github.com/angelmondragon/spicy-pepper-shop/internal/accounts"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
)

type createAccountRequest struct {
	Name     validators.Text `json:"name" validate:"required"`
	Email    validators.Text `json:"email" validate:"required"`
	Password validators.Text `json:"password" validate:"required"`
}

func ListAccounts(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, accounts)
	}
}

func CreateAccount(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createAccountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := validators.Struct(&payload, "Name, email, and password are required."); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.Create(r.Context(), accountsvc.CreateInput{
			Name:     payload.Name.String(),
			Email:    payload.Email.String(),
			Password: payload.Password.String(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, account)
	}
}

func DeleteAccount(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, removed)
	}
}
