package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/tracemesh/internal/api"
	"github.com/dgallion1/tracemesh/internal/classify"
	"github.com/dgallion1/tracemesh/internal/config"
	"github.com/dgallion1/tracemesh/internal/meshstore"
	"github.com/dgallion1/tracemesh/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	table, err := classify.LoadRankTableFile(cfg.RankTablePath)
	if err != nil {
		log.Error("failed to load rank table", "path", cfg.RankTablePath, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store meshstore.Store
	if cfg.MeshstoreURL != "" {
		store = meshstore.NewClient(cfg.MeshstoreURL, cfg.MeshstoreAPIKey)
		log.Info("using remote mesh store", "url", cfg.MeshstoreURL)
	} else {
		store = meshstore.NewMemory()
		log.Info("using in-memory mesh store")
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, store, table, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		store.Close()
	}()

	log.Info("starting tracemesh",
		"port", cfg.Port,
		"workers", cfg.WorkerCount,
		"strict_properties", cfg.StrictProperties,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-stopped
}
