package middleware

import (
	"net/http"

	"madaba-market-be/internal/logger"

	"go.uber.org/zap"
)

// Recover turns handler panics into a 500 instead of tearing down the
// connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.FromCtx(r.Context()).Error("handler panicked",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
