package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rallyprotocol/rally-claim/docs"
	"github.com/rallyprotocol/rally-claim/internal/audit"
	"github.com/rallyprotocol/rally-claim/internal/asset"
	"github.com/rallyprotocol/rally-claim/internal/claim"
	"github.com/rallyprotocol/rally-claim/internal/common/handler"
	"github.com/rallyprotocol/rally-claim/internal/common/middleware"
	"github.com/rallyprotocol/rally-claim/internal/config"
	"github.com/rallyprotocol/rally-claim/internal/eligibility"
	"github.com/rallyprotocol/rally-claim/internal/holders"
	"github.com/rallyprotocol/rally-claim/internal/identity"
	pkgdb "github.com/rallyprotocol/rally-claim/pkg/db"
	"github.com/rallyprotocol/rally-claim/pkg/kv"
	"github.com/rallyprotocol/rally-claim/pkg/nonce"
	"github.com/rallyprotocol/rally-claim/pkg/oauth1"
	pkgredis "github.com/rallyprotocol/rally-claim/pkg/redis"
	"github.com/rallyprotocol/rally-claim/pkg/sigverify"
	"github.com/rallyprotocol/rally-claim/pkg/telemetry"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// @title Rally Claim API
// @version 1.0
// @description Wallet-signed reward claims with X account linking

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// 1) Logger
	logger, err := initLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 2) Config (.env, then environment)
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	logger.Info("starting server",
		zap.String("environment", cfg.Server.Environment),
		zap.String("addr", cfg.Server.Addr()),
		zap.String("kv_backend", cfg.Storage.KVBackend),
		zap.String("ledger_backend", cfg.Storage.LedgerBackend),
		zap.String("holders_backend", cfg.Storage.HoldersBackend),
	)

	// 3) Tracing
	shutdownTracing, err := telemetry.Setup(context.Background(), telemetry.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Tracing.ServiceName,
		Environment:  cfg.Server.Environment,
		SampleRatio:  cfg.Tracing.SampleRatio,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		OTLPInsecure: cfg.Tracing.OTLPInsecure,
	}, logger)
	if err != nil {
		logger.Fatal("failed to set up tracing", zap.Error(err))
	}

	// 4) Storage backends (fail-fast on connectivity)
	deps, cleanup, err := initDependencies(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer cleanup()

	// 5) Router
	router := setupRouter(cfg, logger, deps)

	// 6) HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	logger.Info("server started",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("swagger", fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.Server.Port)),
	)

	// 7) Wait for signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// 8) Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("failed to flush traces", zap.Error(err))
	}

	logger.Info("server exited")
}

func initLogger() (*zap.Logger, error) {
	env := os.Getenv("ENVIRONMENT")
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// dependencies are the config-selected storage backends
type dependencies struct {
	catalog *asset.Catalog
	store   kv.Store
	db      *sql.DB // nil unless a MySQL backend is selected
	ledger  claim.Ledger
	lookup  eligibility.Lookup

	holderStore holders.Store
}

func initDependencies(cfg *config.Config, logger *zap.Logger) (*dependencies, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*dependencies, func(), error) {
		cleanup()
		return nil, nil, err
	}

	deps := &dependencies{catalog: asset.Default()}

	switch cfg.Storage.KVBackend {
	case config.BackendMemory:
		mem := kv.NewMemoryStore(logger)
		if err := mem.StartSweeper(cfg.Storage.SweepInterval); err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = mem.Close() })
		deps.store = mem
		logger.Warn("using in-memory key-value store; state is lost on restart")
	default:
		rdb := pkgredis.New(pkgredis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		closers = append(closers, func() { _ = rdb.Close() })
		store := kv.NewRedisStore(rdb, logger)
		if err := store.Ping(ctx); err != nil {
			return fail(fmt.Errorf("redis ping failed: %w", err))
		}
		deps.store = store
	}

	if cfg.Storage.NeedsDatabase() {
		db, err := pkgdb.New(pkgdb.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Name:            cfg.Database.Name,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = db.Close() })
		if err := pkgdb.Ping(ctx, db); err != nil {
			return fail(err)
		}
		if cfg.Database.AutoMigrate {
			if err := pkgdb.Migrate(ctx, db, claim.Schema, holders.ContractsSchema, holders.HoldersSchema); err != nil {
				return fail(err)
			}
		}
		deps.db = db
	}

	switch cfg.Storage.LedgerBackend {
	case config.BackendMySQL:
		deps.ledger = claim.NewMySQLLedger(deps.db, logger)
	default:
		deps.ledger = claim.NewKVLedger(deps.store, deps.catalog, logger)
	}

	switch cfg.Storage.HoldersBackend {
	case config.BackendMySQL:
		deps.lookup = eligibility.NewMySQLLookup(deps.db)
		deps.holderStore = holders.NewMySQLStore(deps.db)
	case config.BackendSnapshot:
		snapshot, err := holders.LoadSnapshot(cfg.Holders.SnapshotPath, logger)
		if err != nil {
			return fail(err)
		}
		deps.lookup = eligibility.NewSnapshotLookup(snapshot)
		deps.holderStore = holders.NewSnapshotStore(snapshot)
	default:
		deps.lookup = eligibility.NoopLookup{}
		deps.holderStore = holders.NewSnapshotStore(nil)
	}

	return deps, cleanup, nil
}

func setupRouter(cfg *config.Config, logger *zap.Logger, deps *dependencies) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	router.Use(middleware.Logger(logger))

	// Swagger
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoints
	healthHandler := handler.NewHealthHandler(deps.store, deps.db)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// ============================================================================
	// Dependencies Setup
	// ============================================================================

	catalog := deps.catalog

	nonceStore := nonce.NewKVStore(deps.store, logger, nonce.WithTTL(cfg.Claim.NonceTTL))
	linkStore := identity.NewKVLinkStore(deps.store, logger)

	var evmVerifier sigverify.Verifier
	if cfg.Claim.AllowEVM {
		evmVerifier = sigverify.NewEVMVerifier(logger)
	}
	verifier := sigverify.NewRouter(sigverify.NewEd25519Verifier(logger), evmVerifier, logger)

	xClient := oauth1.NewClient(oauth1.Config{
		ConsumerKey:    cfg.X.ConsumerKey,
		ConsumerSecret: cfg.X.ConsumerSecret,
		BaseURL:        cfg.X.APIBaseURL,
		Timeout:        cfg.X.Timeout,
	}, logger)
	if !xClient.Configured() {
		logger.Warn("X OAuth credentials missing; account linking disabled")
	}

	// ============================================================================
	// Service & Handler Setup
	// ============================================================================

	identityService := identity.NewService(
		xClient,
		linkStore,
		identity.NewTokenStore(deps.store, cfg.X.RequestTokenTTL),
		identity.Config{AppURL: cfg.X.AppURL, CallbackURL: cfg.X.CallbackURL},
		logger,
	)
	identityHandler := identity.NewHandler(identityService)

	claimService := claim.NewService(nonceStore, linkStore, deps.ledger, verifier, catalog, logger)
	claimHandler := claim.NewHandler(claimService)

	eligibilityService := eligibility.NewService(deps.lookup, catalog, logger)
	eligibilityHandler := eligibility.NewHandler(eligibilityService)

	auditService := audit.NewService(deps.holderStore, logger)
	auditHandler := audit.NewHandler(auditService)

	// ============================================================================
	// Route Registration
	// ============================================================================

	v1 := router.Group("/api/v1")
	{
		claimHandler.RegisterRoutes(v1)
		identityHandler.RegisterRoutes(v1)
		eligibilityHandler.RegisterRoutes(v1)
		auditHandler.RegisterRoutes(v1)
	}

	return router
}
