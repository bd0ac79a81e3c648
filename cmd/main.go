package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/roster/internal/adapters/source"
	app "github.com/okian/roster/internal/app"
	"github.com/okian/roster/internal/config"
	"github.com/okian/roster/internal/domain/enrich"
	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
)

// Metrics listener timeout constants.
const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString("pipeline failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	buildOnly := flag.Bool("build-only", false, "build the ranked dataset and stop before enrichment")
	enrichOnly := flag.Bool("enrich-only", false, "enrich an existing ranked dataset without rebuilding it")
	flag.Parse()

	// Initialize logging
	if err := logger.Init(); err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if *buildOnly && *enrichOnly {
		return errors.New("-build-only and -enrich-only are mutually exclusive")
	}

	// Optional Prometheus exposition for the duration of the run.
	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metrics.Handler(),
			ReadHeaderTimeout: readHeaderTimeout,
		}
		go func() {
			loggerInstance.Info(ctx, "serving metrics", logger.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				loggerInstance.Error(ctx, "metrics server failed", logger.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithSource(source.NewHTTP(
			cfg.RawURL,
			cfg.RawPath,
			source.WithTimeout(time.Duration(cfg.FetchTimeoutMS)*time.Millisecond),
		)),
		app.WithOutputPath(cfg.OutputPath),
		app.WithLimit(cfg.Limit),
		app.WithRepair(cfg.RepairEnabled),
		app.WithEnricher(enrich.New(
			enrich.WithAvatarBaseURL(cfg.AvatarBaseURL),
			enrich.WithFutbinBaseURL(cfg.FutbinBaseURL),
			enrich.WithAvatarStyle(cfg.AvatarRounded, cfg.AvatarBackground, cfg.AvatarSize, cfg.AvatarFormat),
		)),
	)

	switch {
	case *buildOnly:
		err = svc.Build(ctx)
	case *enrichOnly:
		err = svc.Enrich(ctx)
	default:
		err = svc.Run(ctx)
	}
	if err != nil {
		loggerInstance.Error(ctx, "pipeline failed", logger.Error(err))
		return err
	}
	return nil
}
