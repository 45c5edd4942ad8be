package controllers

import (
	"net/http"

	"github.com/angelmondragon/spicy-pepper-shop/api/responses"
	"github.com/angelmondragon/spicy-pepper-shop/api/validators"
	accountsvc "github.com/angelmondragon/spicy-pepper-shop/internal/accounts"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
)

type loginRequest struct {
	Name     validators.Text `json:"name" validate:"required"`
	Password validators.Text `json:"password" validate:"required"`
}

type loginResponse struct {
	Account models.PublicAccount `json:"account"`
}

// Login matches the name case-insensitively and the password exactly.
func Login(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := validators.Struct(&payload, "Name and password are required."); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.Login(r.Context(), accountsvc.LoginInput{
			Name:     payload.Name.String(),
			Password: payload.Password.String(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, loginResponse{Account: *account})
	}
}
