package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"metropath/internal/cache"
	"metropath/internal/config"
	"metropath/internal/handler"
	"metropath/internal/logging"
	"metropath/internal/network"
	"metropath/internal/render"
	"metropath/internal/route"
	"metropath/internal/server"
	"metropath/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "metropath:", err)
		os.Exit(1)
	}

	// CLI flags
	flag.StringVar(&cfg.From, "from", "", "Origin station name")
	flag.StringVar(&cfg.To, "to", "", "Destination station name")
	flag.StringVar(&cfg.ImportFrom, "import", cfg.ImportFrom, "Import a network archive (zip, directory or URL), then exit")
	flag.BoolVar(&cfg.Serve, "serve", cfg.Serve, "Start the HTTP service")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "Segment loading strategy (merge|per-line)")
	flag.StringVar(&cfg.Selection, "selection", cfg.Selection, "Dijkstra frontier selection (linear|heap)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json)")
	flag.Parse()

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if cfg.ConfigFile != "" {
		logger.Debug("config file loaded", "path", cfg.ConfigFile)
	}

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, cfg, logger, os.Stdout))
}

// run executes one invocation and returns the process exit code:
// 0 on success, 1 on load failures or unknown stations, 2 when the
// destination is unreachable.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) int {
	strategy, err := network.ParseStrategy(cfg.Strategy)
	if err != nil {
		logger.Error("invalid strategy", "error", err)
		return 1
	}
	sel, err := route.ParseSelection(cfg.Selection)
	if err != nil {
		logger.Error("invalid selection", "error", err)
		return 1
	}

	db, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return 1
	}
	defer db.Close()

	if cfg.ImportFrom != "" {
		imp := network.NewImporter(db, logger)
		if err := imp.ImportSource(ctx, cfg.ImportFrom, network.NewDownloader(cfg.DataDir, logger)); err != nil {
			logger.Error("network import failed", "source", cfg.ImportFrom, "error", err)
			return 1
		}
		logger.Info("network import complete", "source", cfg.ImportFrom)
		return 0
	}

	if !db.HasData(ctx) {
		logger.Error("no network data; run with -import first", "db", cfg.DBPath)
		return 1
	}
	g, err := network.Load(ctx, db, strategy, logger)
	if err != nil {
		logger.Error("failed to load network", "error", err)
		return 1
	}

	if cfg.Serve {
		var routes *cache.Cache[handler.RouteKey, render.RouteView]
		if cfg.CacheTTL > 0 {
			routes = cache.New[handler.RouteKey, render.RouteView](ctx, cfg.CacheTTL, time.Minute)
		}
		srv := server.New(cfg.Port, handler.New(g, sel, routes, logger), logger)
		if err := srv.ListenAndServe(ctx); err != nil {
			logger.Error("server error", "error", err)
			return 1
		}
		return 0
	}

	from, okFrom := g.StationByName(cfg.From)
	to, okTo := g.StationByName(cfg.To)
	if !okFrom || !okTo {
		render.NotFound(stdout)
		return 1
	}

	it, err := route.Plan(g, from, to, sel)
	if errors.Is(err, route.ErrUnreachable) {
		render.Unreachable(stdout, cfg.From, cfg.To)
		return 2
	}
	if err != nil {
		logger.Error("planning route", "error", err)
		return 1
	}
	if err := render.Text(stdout, g, it); err != nil {
		logger.Error("writing route", "error", err)
		return 1
	}
	return 0
}
