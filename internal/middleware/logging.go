package middleware

import (
	"net/http"
	"time"

	"github.com/2beens/liftstats/pkg"

	log "github.com/sirupsen/logrus"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			resp := newResponseWriter(w)

			next.ServeHTTP(resp, r)

			log.WithFields(log.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   resp.statusCode,
				"ip":       pkg.ClientIP(r),
				"ua":       r.Header.Get("User-Agent"),
				"duration": time.Since(start).String(),
			}).Debug(" ====> request")
		})
	}
}
