package ptnetwork

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/theoremus-urban-solutions/pt-network-browser/config"
)

var server *http.Server

// StartServer exposes the core over HTTP and begins serving.
func StartServer(app *App) {
	r := chi.NewRouter()

	r.Get("/api/health", app.handleHealth)
	r.Get("/api/stats", app.handleStats)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/ingest", app.handleIngest)
	r.Post("/api/ingest/nodes", app.handleIngestNodes)
	r.Post("/api/ingest/masters", app.handleIngestMasters)

	r.Post("/api/select", app.handleSelect)
	r.Post("/api/select/clear", app.handleClearSelection)
	r.Post("/api/select/filter", app.handleSetFilter)
	r.Get("/api/overlay", app.handleOverlay)

	r.Post("/api/bounds", app.handleSetBounds)

	r.Post("/api/workspace/stop-query", app.handleWorkspaceStopQuery)
	r.Post("/api/workspace/node-details", app.handleWorkspaceNodeDetails)
	r.Post("/api/workspace/masters", app.handleWorkspaceMasters)
	r.Get("/api/workspace/suggestions", app.handleSuggestions)
	r.Post("/api/workspace/close", app.handleWorkspaceClose)

	addr := fmt.Sprintf(":%d", config.Config.Server.Port)
	server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatal().Err(err).Msg("server error")
		}
	}()
	app.Log.Info().Str("addr", addr).Msg("server listening")
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM, then drains the
// server.
func HandleGracefulShutdown(app *App) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	app.Log.Info().Msg("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			app.Log.Error().Err(err).Msg("server shutdown error")
		} else {
			app.Log.Info().Msg("server shut down successfully")
		}
	}
}
