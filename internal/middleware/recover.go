package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/baharkarakas/projectify-backend/internal/api/httpx"
	"github.com/baharkarakas/projectify-backend/internal/logger"
)

// Recover turns a handler panic into a 500 that names the request id, so a
// client report can be matched to the logged stack. http.ErrAbortHandler is
// re-raised for net/http to handle.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			reqID := logger.RequestID(r.Context())
			slog.ErrorContext(r.Context(), "panic recovered",
				"err", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)
			var details any
			if reqID != "" {
				details = map[string]string{"request_id": reqID}
			}
			httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", details)
		}()
		next.ServeHTTP(w, r)
	})
}
