package controllers

import (
	"net/http"

	"github.com/angelmondragon/spicy-pepper-shop/api/responses"
	"github.com/angelmondragon/spicy-pepper-shop/api/validators"
	accountsvc "github.com/angelmondragon/spicy-pepper-shop/internal/accounts"
	adminsvc "github.com/angelmondragon/spicy-pepper-shop/internal/admin"
	"github.com/angelmondragon/spicy-pepper-shop/internal/store"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
)

const (
	HeaderAdminName     = "x-admin-name"
	HeaderAdminPassword = "x-admin-password"
)

type resetRequest struct {
	Name     *validators.Text `json:"name"`
	Password *validators.Text `json:"password"`
}

type resetResponse struct {
	Status string     `json:"status"`
	State  resetState `json:"state"`
}

// resetState is the fresh store with accounts redacted.
type resetState struct {
	NextID   int                    `json:"nextId"`
	Accounts []models.PublicAccount `json:"accounts"`
	Products []models.Product       `json:"products"`
	Orders   []models.Order         `json:"orders"`
}

func newResetState(state *store.State) resetState {
	return resetState{
		NextID:   state.NextID,
		Accounts: accountsvc.Redact(state.Accounts),
		Products: state.Products,
		Orders:   state.Orders,
	}
}

// Reset takes each credential from the body when present and from its header otherwise.
func Reset(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload resetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		creds := adminsvc.Credentials{
			Name:     r.Header.Get(HeaderAdminName),
			Password: r.Header.Get(HeaderAdminPassword),
		}
		if payload.Name != nil {
			creds.Name = payload.Name.String()
		}
		if payload.Password != nil {
			creds.Password = payload.Password.String()
		}

		state, err := svc.Reset(r.Context(), creds)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resetResponse{Status: "reset", State: newResetState(state)})
	}
}
