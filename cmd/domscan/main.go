// Entry point for the domscan structural analysis service — chi router,
// sqlite analysis cache, optional MCP stdio transport.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/domscan/analyze"
	"github.com/hazyhaar/domscan/cache"
	"github.com/hazyhaar/domscan/fetch"
)

func main() {
	cfg, err := loadConfig(env("CONFIG", ""))
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	port := env("PORT", cfg.Port)
	cacheDB := env("CACHE_DB", cfg.CacheDB)
	mcpTransport := env("MCP_TRANSPORT", "")
	logLevel := env("LOG_LEVEL", cfg.LogLevel)

	// Logging.
	var lvl slog.Level
	switch logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	analyzer := analyze.New(analyze.Config{
		HeadFraction: cfg.HeadFraction,
		TailFraction: cfg.TailFraction,
		Logger:       logger,
	})

	// MCP stdio transport replaces the HTTP surface entirely.
	if mcpTransport == "stdio" {
		mcpSrv := mcp.NewServer(&mcp.Implementation{
			Name:    "domscan",
			Version: analyze.AnalyzerVersion,
		}, nil)
		analyzer.RegisterMCP(mcpSrv)
		if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			slog.Error("MCP stdio", "error", err)
			os.Exit(1)
		}
		return
	}

	fetcher := fetch.New(fetch.Config{
		Timeout:   cfg.FetchTimeout,
		MaxBytes:  cfg.MaxFetchBytes,
		UserAgent: cfg.UserAgent,
	})

	// Optional analysis cache.
	var store *cache.Store
	if cacheDB != "" {
		db, err := sql.Open("sqlite", cacheDB)
		if err != nil {
			slog.Error("cache db", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store = cache.NewStore(db)
		if err := store.Init(ctx); err != nil {
			slog.Error("cache init", "error", err)
			os.Exit(1)
		}
		// Results from older analyzer versions are unusable; reclaim the space.
		if n, err := store.DeleteStale(ctx, analyze.AnalyzerVersion); err != nil {
			slog.Warn("cache cleanup", "error", err)
		} else if n > 0 {
			slog.Info("purged stale cache rows", "count", n, "version", analyze.AnalyzerVersion)
		}
	}

	svc := &service{
		analyzer: analyzer,
		fetcher:  fetcher,
		store:    store,
		logger:   logger,
	}

	// HTTP server.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           svc.router(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", port, "analyzer_version", analyze.AnalyzerVersion)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
