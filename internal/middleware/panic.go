package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/stafferly/stafferly/internal/log"
)

// PanicRecovery is a middleware that recovers from panics and logs them.
func PanicRecovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func(ctx context.Context) {
				rec := recover()
				if rec != nil {
					//nolint:err113
					log.Error(ctx, "Panic Occurred", fmt.Errorf("%v", rec),
						slog.String("stackTrace", string(debug.Stack())),
					)

					writeError(ctx, w, http.StatusInternalServerError, "internal server error")
				}
			}(r.Context())

			next.ServeHTTP(w, r)
		})
	}
}
