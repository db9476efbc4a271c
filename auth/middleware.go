package auth

import (
	"errors"
	"net/http"
)

// Middleware returns HTTP middleware that rejects requests without a valid
// token with 401 and attaches the authenticated Identity to the request
// context otherwise.
func Middleware(authn *JWTAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := authn.Authenticate(r.Context(), r.Header.Get(authn.HeaderName()))
			if err != nil {
				status := http.StatusUnauthorized
				if errors.Is(err, ErrKeyNotFound) {
					status = http.StatusInternalServerError
				}
				w.Header().Set("WWW-Authenticate", `Bearer realm="healthd"`)
				http.Error(w, http.StatusText(status), status)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}
