package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET,POST,PUT,DELETE,OPTIONS"
	corsAllowHeaders = "Content-Type, x-admin-name, x-admin-password"
)

// CORS stamps the permissive cross-origin headers on every response and answers
// every OPTIONS request with 204 and no body.
func CORS() func(http.Handler) http.Handler {
	setOrigin := chimw.SetHeader("Access-Control-Allow-Origin", corsAllowOrigin)
	setMethods := chimw.SetHeader("Access-Control-Allow-Methods", corsAllowMethods)
	setHeaders := chimw.SetHeader("Access-Control-Allow-Headers", corsAllowHeaders)
	return func(next http.Handler) http.Handler {
		return setOrigin(setMethods(setHeaders(preflight(next))))
	}
}

func preflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
