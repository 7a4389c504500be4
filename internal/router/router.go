package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GregMSThompson/backup-dashboard/internal/handlers"
	"github.com/GregMSThompson/backup-dashboard/internal/middleware"
)

type Options struct {
	AllowedOrigins []string
	RelayRateLimit int
}

func NewRouter(deps *handlers.Deps, opts Options) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(opts.AllowedOrigins))

	dh := handlers.NewDashboardHandlers(deps)
	sh := handlers.NewSummaryHandlers(deps)
	rh := handlers.NewRelayHandlers(deps)

	r.Get("/dashboards/vbr/summary", sh.GetSummary)
	r.Mount("/dashboards", dh.DashboardRoutes())
	r.Mount("/widgets", dh.WidgetRoutes())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RelayRateLimit))
		r.Mount("/api/veeam", rh.RelayRoutes())
	})

	r.Handle("/metrics", promhttp.Handler())
	return r
}
