package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/trade-hub/trade-hub/internal/api/http"
	"github.com/trade-hub/trade-hub/internal/application/negotiation"
	"github.com/trade-hub/trade-hub/internal/application/registry"
	"github.com/trade-hub/trade-hub/internal/application/settlement"
	"github.com/trade-hub/trade-hub/internal/config"
	domainEscrow "github.com/trade-hub/trade-hub/internal/domain/escrow"
	"github.com/trade-hub/trade-hub/internal/infrastructure/escrow"
	"github.com/trade-hub/trade-hub/internal/infrastructure/postgres"
	"github.com/trade-hub/trade-hub/internal/infrastructure/sse"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, cfg.MigrationsDir); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// repositories
	tradeRepo := postgres.NewTradeRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)

	// infrastructure
	sseHub := sse.NewHub()
	var bridge domainEscrow.Bridge
	if cfg.EscrowBridgeURL != "" {
		bridge = escrow.NewHTTPBridge(cfg.EscrowBridgeURL, logger)
	} else {
		bridge = escrow.NewNoopBridge(logger)
	}

	// services
	registrySvc := registry.NewService(tradeRepo, userRepo, catalogRepo, messageRepo, historyRepo, logger)
	negotiationSvc := negotiation.NewService(tradeRepo, userRepo, registrySvc, bridge, sseHub, logger)
	settlementSvc := settlement.NewService(tradeRepo, userRepo, sseHub, logger)

	// API server
	apiServer := httpapi.NewServer(registrySvc, negotiationSvc, settlementSvc, sseHub)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
	sseHub.Stop()
}
