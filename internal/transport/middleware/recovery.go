package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	errors "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/pkg/logger"
)

// Recovery turns a handler panic into a 500 with the standard error body.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.From(r.Context()).Error("panic recovered",
					"error", rec,
					"method", r.Method,
					"url", r.URL.String(),
					"stack", string(debug.Stack()))

				appErr := errors.NewInternalError("internal server error", fmt.Errorf("panic: %v", rec))
				status, body := appErr.ToHTTPResponse()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_ = json.NewEncoder(w).Encode(body)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
