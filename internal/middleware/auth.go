package middleware

import (
	"net/http"

	"madaba-market-be/internal/identity"
)

// Auth resolves the bearer token into the caller's identity and stores it in
// the request context. Anonymous and invalid-token requests pass through
// without an identity; each handler decides whether that is acceptable.
func Auth(resolver *identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearer := identity.ExtractBearer(r)
			if bearer == "" {
				next.ServeHTTP(w, r)
				return
			}

			caller, err := resolver.Resolve(r.Context(), bearer)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := identity.WithIdentity(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
