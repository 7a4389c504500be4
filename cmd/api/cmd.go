package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/backup-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/backup-dashboard/internal/config"
	"github.com/GregMSThompson/backup-dashboard/internal/handlers"
	"github.com/GregMSThompson/backup-dashboard/internal/response"
	"github.com/GregMSThompson/backup-dashboard/internal/router"
	"github.com/GregMSThompson/backup-dashboard/internal/services"
	"github.com/GregMSThompson/backup-dashboard/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg, err := config.New()
	exitOnError("config failed", err, slog.Default())
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	lstore := store.NewLayoutStore(bs.KV)

	// services
	dserv := services.NewDashboardService(lstore)
	sserv := services.NewSummaryService(bs.VeeamAdapter)

	// response handler
	rh := response.New(bs.Log)

	// dependencies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.DashboardSvc = dserv
	deps.SummarySvc = sserv
	deps.Relay = bs.VeeamAdapter

	// router
	r := router.NewRouter(deps, router.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		RelayRateLimit: cfg.RelayRateLimit,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Error("server shutdown failed", "error", err)
		}
	}()

	bs.Log.Info("server listening", "addr", srv.Addr, "layout_store", cfg.LayoutStore)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		bs.Close()
		exitOnError("server start failed", err, bs.Log)
	}
}
