package middleware

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

const maxDrainBytes = 256 << 10

// DrainAndCloseRequest drains (up to maxDrainBytes) and closes the request
// body after the handler is done, so keep-alive connections can be reused.
// The dashboard routes are GET only, so a drained body is logged.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}

			drained, err := io.Copy(io.Discard, io.LimitReader(r.Body, maxDrainBytes))
			if err != nil {
				log.Tracef("drain request body [%s]: %s", r.URL.Path, err)
			} else if drained > 0 {
				log.Tracef("drained %d unread body bytes [%s %s]", drained, r.Method, r.URL.Path)
			}
			_ = r.Body.Close()
		})
	}
}
