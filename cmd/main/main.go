package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/telefwd/tg-forwarder/internal/app/delivery"
	"github.com/telefwd/tg-forwarder/internal/app/forwarder"
	"github.com/telefwd/tg-forwarder/internal/app/media"
	"github.com/telefwd/tg-forwarder/internal/app/resolver"
	"github.com/telefwd/tg-forwarder/internal/app/state"
	"github.com/telefwd/tg-forwarder/internal/config"
	"github.com/telefwd/tg-forwarder/internal/middleware"
	"github.com/telefwd/tg-forwarder/internal/telegram"
	"github.com/telefwd/tg-forwarder/internal/utils/logger"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	source := flag.String("source", "", "source channel (id, @handle or t.me link), overrides the config")
	target := flag.String("target", "", "target channel (id, @handle or t.me link), overrides the config")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("error initializing config: %v\n", err)
		os.Exit(1)
	}
	if *source != "" {
		cfg.Channels.Source = *source
	}
	if *target != "" {
		cfg.Channels.Target = *target
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("invalid config: %v\n", err)
		os.Exit(1)
	}

	err = logger.Init(cfg.Log.Mode)
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("configuration loaded successfully")
	logger.Debug("debug mode enabled",
		zap.String("log_mode", cfg.Log.Mode),
		zap.String("mode", string(cfg.Forwarder.Mode)),
	)

	tgClient, err := telegram.CreateClient(cfg)
	if err != nil {
		logger.Error("failed to create telegram client", zap.Error(err))
		os.Exit(1)
	}
	defer tgClient.Close()

	channelResolver := resolver.CreateResolver(tgClient)
	pipeline := media.CreatePipeline(tgClient,
		cfg.Forwarder.MaxConcurrentDownloads,
		cfg.Forwarder.MaxConcurrentUploads,
	)
	store := state.CreateStore(0)

	fwd := forwarder.CreateForwarder(tgClient, channelResolver, pipeline, store)
	fwd.Init(cfg.Forwarder)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := fwd.Start(ctx, cfg.Channels.Source, cfg.Channels.Target); err != nil {
		logger.Error("failed to start forwarder", zap.Error(err))
		os.Exit(1)
	}

	statusDelivery := delivery.CreateStatusDelivery(fwd, channelResolver)

	router := mux.NewRouter()
	router.HandleFunc("/health", statusDelivery.Health).Methods("GET")

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.HandleFunc("/status", statusDelivery.Status).Methods("GET")
	apiRouter.HandleFunc("/channels/resolve", statusDelivery.ResolveChannel).Methods("GET")

	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.PanicMiddleware)

	server := &http.Server{
		Addr:    cfg.Status.Addr,
		Handler: router,
	}

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("starting status HTTP server",
			zap.String("address", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("failed to start status server", zap.Error(err))
		fwd.Stop()
		os.Exit(1)
	case sig := <-quit:
		logger.Info("forwarder is shutting down",
			zap.String("signal", sig.String()),
		)
	}

	fwd.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("forwarder stopped")
}
