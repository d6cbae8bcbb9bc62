package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const timeoutBody = `{"response": "Request timeout"}`

// TimeoutMiddleware bounds how long a request may run. Websocket upgrades are passed
// through untouched since the connection outlives the request.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		bounded := http.TimeoutHandler(next, timeout, timeoutBody)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if websocket.IsWebSocketUpgrade(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			bounded.ServeHTTP(w, r)
			if time.Since(start) < timeout {
				return
			}
			zap.S().Warnw("Request timeout",
				"path", r.URL.Path,
				"method", r.Method,
				"timeout", timeout)
		})
	}
}
