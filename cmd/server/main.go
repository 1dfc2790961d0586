package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garnizeh/jobboard/api"
	dbfs "github.com/garnizeh/jobboard/db"
	"github.com/garnizeh/jobboard/internal/config"
	"github.com/garnizeh/jobboard/internal/db"
	"github.com/garnizeh/jobboard/internal/jobboard"
	"github.com/garnizeh/jobboard/internal/repository/sqlite"
	"github.com/garnizeh/jobboard/internal/server"
	"github.com/garnizeh/jobboard/pkg/logger"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to config YAML file")
		envFile    = flag.String("env-file", ".env", "Path to .env file (ignored when missing)")
	)
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		log.Fatalf("Failed to load env file: %v", err)
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	level, _ := cfg.Level()
	lg := logger.New("jobboard", level)
	slog.SetDefault(lg)
	api.SetLogger(lg)

	if err := run(cfg, lg); err != nil {
		lg.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, lg *slog.Logger) error {
	lg.Info("starting job board server", "version", version, "build_time", buildTime)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, cfg.APITimeout)
	defer cancel()

	d, err := db.New(openCtx, cfg.DatabasePath, lg)
	if err != nil {
		return err
	}
	if cfg.MigrateOnStart {
		if err := db.Migrate(openCtx, d, dbfs.Migrations); err != nil {
			d.Close()
			return err
		}
	}

	repo := sqlite.New(d, lg)
	handler := api.SetupRoutes(cfg, api.Repos{
		Users:        repo,
		Jobs:         repo,
		Applications: repo,
		Proposals:    repo,
	}, api.Options{
		Version:   version,
		BuildTime: buildTime,
		Clock:     jobboard.SystemClock(loc),
		DB:        d,
		Logger:    lg,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// The database closes only after in-flight requests are drained.
	return server.Run(ctx, srv, lg, cfg.ShutdownTimeout, d)
}
