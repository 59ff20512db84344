package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/ohada_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/ohada_ledger/internal/core/services"
	"github.com/SscSPs/ohada_ledger/internal/handlers"
	"github.com/SscSPs/ohada_ledger/internal/middleware"
	"github.com/SscSPs/ohada_ledger/internal/platform/config"
	"github.com/SscSPs/ohada_ledger/internal/platform/logger"
	boltrepo "github.com/SscSPs/ohada_ledger/internal/repositories/database/bolt"
	"github.com/SscSPs/ohada_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/ohada_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const shutdownTimeout = 10 * time.Second

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply migrations on startup")
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.New(cfg.LogLevel)

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)
	log.Info("Database connection pool established.")

	if !skipMigrations {
		if err := runMigrations(cfg, log, false); err != nil {
			return err
		}
	}

	registry, err := loadRegistry(cfg.RulesDir)
	if err != nil {
		return fmt.Errorf("failed to load statement rules: %w", err)
	}
	log.Info("Statement rules loaded", slog.Int("tables", len(registry.Tables())))

	var sequenceRepo portsrepo.SequenceRepository
	if cfg.SequenceBackend == "bolt" {
		boltDB, err := database.OpenBolt(cfg.SequenceBoltPath)
		if err != nil {
			return err
		}
		defer database.CloseBolt(boltDB)
		if sequenceRepo, err = boltrepo.NewSequenceRepository(boltDB); err != nil {
			return err
		}
		log.Info("Using bbolt sequence backend", slog.String("path", cfg.SequenceBoltPath))
	}

	repos := pgsql.NewRepositoryProvider(dbPool, sequenceRepo)
	serviceContainer := services.NewServiceContainer(cfg, repos, registry)

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
	}
	rateLimiter := limiter.New(memory.NewStore(), rate)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(log), gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
