package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-nft-registry/internal/adapter"
	"github.com/feral-file/ff-nft-registry/internal/api/middleware"
	"github.com/feral-file/ff-nft-registry/internal/api/server"
	"github.com/feral-file/ff-nft-registry/internal/config"
	"github.com/feral-file/ff-nft-registry/internal/contract"
	"github.com/feral-file/ff-nft-registry/internal/deposit"
	"github.com/feral-file/ff-nft-registry/internal/domain"
	"github.com/feral-file/ff-nft-registry/internal/emitter"
	"github.com/feral-file/ff-nft-registry/internal/events"
	"github.com/feral-file/ff-nft-registry/internal/logger"
	"github.com/feral-file/ff-nft-registry/internal/providers/jetstream"
	"github.com/feral-file/ff-nft-registry/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadRegistryAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "registry-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting NFT registry API")

	pricePerByte, err := cfg.Registry.PricePerByte()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid storage price", zap.Error(err))
	}

	// Open storage
	dataStore, err := store.New(store.Config{
		Path:                cfg.Storage.Path,
		RecordOverheadBytes: cfg.Registry.RecordOverheadBytes,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to open storage", zap.Error(err), zap.String("path", cfg.Storage.Path))
	}
	defer func() {
		if err := dataStore.Close(); err != nil {
			logger.Error(err, zap.String("message", "Failed to close storage"))
		}
	}()

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	registry := contract.New(
		dataStore,
		deposit.NewAccountant(pricePerByte),
		events.NewLoggerSink(),
		jsonAdapter,
		adapter.NewBase64(),
		clock,
		contract.Config{StockMedia: cfg.Registry.StockMedia},
	)

	// Initialize the registry on first start
	if cfg.Registry.OwnerID != "" {
		owner, err := cfg.Registry.Owner()
		if err != nil {
			logger.FatalCtx(ctx, "Invalid registry owner", zap.Error(err))
		}
		err = registry.Init(ctx, owner, cfg.Registry.CollectionMetadata())
		switch {
		case err == nil:
			logger.InfoCtx(ctx, "Initialized registry", zap.String("owner_id", owner.String()))
		case errors.Is(err, domain.ErrAlreadyInitialized):
			logger.InfoCtx(ctx, "Registry already initialized")
		default:
			logger.FatalCtx(ctx, "Failed to initialize registry", zap.Error(err))
		}
	} else {
		logger.WarnCtx(ctx, "Registry owner not configured, skipping initialization")
	}

	// Start the outbox relay
	var relay emitter.Emitter
	relayDone := make(chan struct{})
	if cfg.Relay.Enabled {
		pub, err := jetstream.NewPublisher(ctx, jetstream.Config{
			URL:             cfg.NATS.URL,
			StreamName:      cfg.NATS.StreamName,
			MaxReconnects:   cfg.NATS.MaxReconnects,
			ReconnectWait:   cfg.NATS.ReconnectWait,
			ConnectionName:  cfg.NATS.ConnectionName,
			DuplicateWindow: cfg.NATS.DuplicateWindow,
		}, adapter.NewNatsJetStream())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create publisher", zap.Error(err))
		}

		relay = emitter.NewEmitter(dataStore.Outbox(), pub, emitter.Config{
			BatchSize:       cfg.Relay.BatchSize,
			PollInterval:    cfg.Relay.PollInterval,
			WorkerPoolSize:  cfg.Worker.WorkerPoolSize,
			MaxRetryElapsed: cfg.Relay.MaxRetryElapsed,
		}, clock)

		go func() {
			defer close(relayDone)
			if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.ErrorCtx(ctx, err, zap.String("component", "relay"))
			}
		}()
	} else {
		close(relayDone)
		logger.WarnCtx(ctx, "Outbox relay disabled, events and refunds stay queued")
	}

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	srv := server.New(serverConfig, registry)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	// Stop the relay after the server so the last committed calls can still be queued
	cancel()
	<-relayDone
	if relay != nil {
		relay.Close()
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("Registry API stopped")
}
