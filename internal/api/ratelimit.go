package api

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/skycastapp/skycast/internal/metrics"
)

// limitGroup applies a fixed requests-per-window policy to one endpoint
// group. The weather and chat groups are limited independently.
type limitGroup struct {
	name    string
	limiter *rate.Limiter
	message string
}

func newLimitGroup(name string, max int, window time.Duration, message string) *limitGroup {
	return &limitGroup{
		name:    name,
		limiter: rate.NewLimiter(rate.Every(window/time.Duration(max)), max),
		message: message,
	}
}

func (g *limitGroup) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !g.limiter.Allow() {
			metrics.RateLimitedTotal.WithLabelValues(g.name).Inc()
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": g.message})
			return
		}
		next(w, r)
	}
}
