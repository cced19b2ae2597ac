package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/go-luach/internal/config"
)

// Handler returns the routing tree of the server.
//
// Middleware order:
//
//	RequestID → RealIP → Recoverer → metrics → rate limit (feed and API only)
//
// Health checks and metric scrapes are never rate limited.
func (s *CalendarServer) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	r.Get(config.RouteHealth, s.handleHealth)
	r.Method(http.MethodGet, config.RouteMetrics, MetricsHandler(s.registry))

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)

		// Any method reaches the handler so that it can answer 405 with an Allow header.
		r.HandleFunc(config.RouteCalendar, s.handleCalendarRequest)

		r.Route(config.RouteAPI, func(r chi.Router) {
			r.Get(config.RouteDay, s.handleDay)
			r.Get(config.RouteConvert, s.handleConvert)
		})
	})

	return r
}

func (s *CalendarServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":     config.HTTPMsgOK,
		"feed_ready": s.cache.Load() != nil,
	}
	_ = WriteSuccess(w, status)
}
