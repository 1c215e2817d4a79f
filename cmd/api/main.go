package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/esperenza/referral-exchange/internal/adapter"
	"github.com/esperenza/referral-exchange/internal/api/middleware"
	"github.com/esperenza/referral-exchange/internal/api/server"
	"github.com/esperenza/referral-exchange/internal/config"
	"github.com/esperenza/referral-exchange/internal/ledger"
	"github.com/esperenza/referral-exchange/internal/logger"
	"github.com/esperenza/referral-exchange/internal/messaging"
	"github.com/esperenza/referral-exchange/internal/orchestrator"
	"github.com/esperenza/referral-exchange/internal/providers/jetstream"
	"github.com/esperenza/referral-exchange/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
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
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Referral Exchange API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Connect to the referral contract
	eth, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ledger.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to ledger RPC", zap.Error(err), zap.String("rpc_url", cfg.Ledger.RPCURL))
	}
	ledgerClient, err := ledger.NewClient(ledger.Config{
		ContractAddress: cfg.Ledger.ContractAddress,
		PrivateKey:      cfg.Ledger.PrivateKey,
		ChainID:         cfg.Ledger.ChainID.EVMChainID(),
		CallTimeout:     cfg.Ledger.CallTimeout,
	}, eth, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create ledger client", zap.Error(err))
	}
	defer ledgerClient.Close()
	logger.InfoCtx(ctx, "Connected to ledger",
		zap.String("chain_id", string(cfg.Ledger.ChainID)),
		zap.String("contract", cfg.Ledger.ContractAddress),
	)

	// Connect to NATS when eventing is configured; the orchestrator treats a
	// nil publisher as eventing disabled
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer publisher.Close()
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, referral events will not be published")
	}

	// Create the lifecycle orchestrator
	orch := orchestrator.New(orchestrator.Config{
		PointsPerRedemption: cfg.Referral.PointsPerRedemption,
		AllowSelfRedeem:     cfg.Referral.AllowSelfRedeem,
		DefaultMaxUses:      cfg.Referral.DefaultMaxUses,
	}, dataStore, ledgerClient, publisher, clock)

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

	// Create and start server
	srv := server.New(serverConfig, dataStore, orch)

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
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.InfoCtx(shutdownCtx, "Server shut down cleanly")
}
