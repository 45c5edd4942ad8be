package controllers

import (
	"net/http"

	"github.com/angelmondragon/spicy-pepper-shop/api/responses"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/config"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/types"
)

func Health(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg != nil {
			w.Header().Set("X-Spicy-Env", cfg.App.Env)
		}
		responses.WriteSuccess(w, types.StatusBody{Status: "ok"})
	}
}
