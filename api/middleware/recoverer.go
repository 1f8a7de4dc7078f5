package middleware

import (
	"fmt"
	"net/http"

	"github.com/avalosmendoza/wedding-backend/api/responses"
	pkgerrors "github.com/avalosmendoza/wedding-backend/pkg/errors"
	"github.com/avalosmendoza/wedding-backend/pkg/logger"
)

// Recoverer converts handler panics into a 500 response instead of
// tearing down the connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("%v", rec), "panic recovered")
					responses.WriteError(r.Context(), w, logg, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
