package middleware

import (
	"crypto/subtle"
	"net/http"

	"tablebook/shared/constant"
	"tablebook/shared/failure"
	"tablebook/transport/http/response"
)

// APIKey guards management endpoints behind the configured key. With no key
// configured the guard is a no-op, which keeps local development friction-free.
func (a *appMiddleware) APIKey() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			configured := a.config.App.APIKey
			if configured == "" {
				next.ServeHTTP(w, r)

				return
			}

			provided := r.Header.Get(constant.RequestHeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) != 1 {
				response.WithError(w, failure.Unauthorized("invalid or missing API key"))

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
