// Package main is the entry point for the badge rendering server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"badgepress/internal/cache"
	"badgepress/internal/config"
	"badgepress/internal/database"
	"badgepress/internal/handlers"
	"badgepress/internal/qr"
	"badgepress/internal/router"
	"badgepress/internal/store"
)

func main() {
	// Structured logger — text output, debug level everywhere for now.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)
	if cfg.BadgeSecret == "" {
		slog.Warn("BADGE_SECRET not set — QR signatures use the legacy name-derived key")
	}

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Provision the default output formats on first boot. Themes are
	// never seeded; an empty theme table means the built-in default.
	if err := database.SeedFormats(db); err != nil {
		slog.Error("failed to seed formats", "error", err)
		os.Exit(1)
	}

	// Seed sample employees in development only.
	if cfg.IsDev() {
		if err := database.SeedEmployees(db); err != nil {
			slog.Error("failed to seed employees", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey. The cache is best-effort: when Valkey is down
	// the server runs without it rather than refusing to start.
	var badgeCache *cache.BadgeCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unreachable — preview caching disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		badgeCache = cache.NewBadgeCache(valkeyClient, cache.DefaultBadgeTTL)
	}

	// Initialize data stores.
	themeStore := store.NewThemeStore(db)
	formatStore := store.NewFormatStore(db)
	employeeStore := store.NewEmployeeStore(db)

	// QR payload builder and signer.
	builder := qr.New(cfg.BadgeSecret)

	// Create handler groups with their dependencies.
	badgeHandlers := handlers.NewBadges(themeStore, formatStore, employeeStore, builder, badgeCache, handlers.BadgeOptions{
		ValidityDays: cfg.ValidityDays,
		VerifyDomain: cfg.VerifyDomain,
		VerifyPort:   cfg.VerifyPort,
		AssetsDir:    cfg.AssetsDir,
	})
	themeHandlers := handlers.NewThemes(themeStore, badgeCache)
	formatHandlers := handlers.NewFormats(formatStore, badgeCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(badgeHandlers, themeHandlers, formatHandlers)

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate batch renders of a few hundred badges.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
