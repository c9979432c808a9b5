package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/go-commandes/internal/config"
	"github.com/diewo77/go-commandes/internal/db"
	"github.com/diewo77/go-commandes/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Commandes magasins HTTP server",
	Long: `Serves the store order API, the login flow and the role areas.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load environment variables from .env file
		_ = godotenv.Load()
		cfg = config.Load()

		var err error
		logger, err = logging.New(cfg.App.Dev, cfg.App.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := db.Open(cfg.Database, logger)
		if err != nil {
			return err
		}
		if err := db.Migrate(conn, cfg.Database.URL, cfg.App.Migrations); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("migrations completed")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference stores, products and commandes, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := db.Open(cfg.Database, logger)
		if err != nil {
			return err
		}
		if err := db.Seed(conn); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		logger.Info("seeding completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	conn, err := db.Open(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := prepare(conn); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      NewApp(conn, cfg, logger),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.Bool("dev", cfg.App.Dev),
			zap.Bool("remote_auth", cfg.Auth.Remote()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
		logger.Info("shutdown signal received")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	logger.Info("server stopped gracefully")
	return nil
}

// prepare migrates and seeds on startup. The local identity table needs a
// schema even when MIGRATIONS is off, so sqlite always gets AutoMigrate.
func prepare(conn *gorm.DB) error {
	if cfg.App.Migrations || cfg.Database.Driver == "sqlite" {
		sqlMigrations := cfg.App.Migrations && cfg.Database.Driver != "sqlite"
		if err := db.Migrate(conn, cfg.Database.URL, sqlMigrations); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("migrations completed", zap.Bool("sql", sqlMigrations))
	}
	if cfg.App.Seed {
		if err := db.Seed(conn); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
	}
	return nil
}
