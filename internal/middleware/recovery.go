package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/2beens/fitdash/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a panicking render into a 500. http.ErrAbortHandler is
// re-raised so the server aborts the response as usual.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(r)
				}

				log.WithFields(log.Fields{
					"request_id": RequestIDFromContext(req.Context()),
					"method":     req.Method,
					"path":       req.URL.Path,
					"panic":      r,
				}).Errorf("http: panic serving request\n%s", debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				http.Error(respWriter, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}
