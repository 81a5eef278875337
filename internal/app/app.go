package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fxpulse/internal/adapters/provider"
	"fxpulse/internal/adapters/snapshotfile"
	"fxpulse/internal/adapters/telegram"
	"fxpulse/internal/api"
	"fxpulse/internal/config"
	httpserver "fxpulse/internal/platform/http"
	"fxpulse/internal/platform/metrics"
	"fxpulse/internal/quote"
	"fxpulse/internal/quote/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Run loads configuration from the default locations and performs one update,
// or keeps running on a schedule when an interval is configured.
func Run() error {
	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunWithOptions(ctx, config.DefaultOptions())
}

func RunWithOptions(ctx context.Context, opts config.Options) error {
	appCfg, err := config.Load(opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to load configuration")
		return err
	}
	setupLogging(appCfg.Logging.Level)

	// Nothing touches the network before credentials are confirmed
	if err = appCfg.Validate(); err != nil {
		logrus.WithError(err).Error("Configuration is incomplete")
		return err
	}
	logrus.Info("✅ Config initialization successful")

	httpClient := &http.Client{Timeout: appCfg.HTTPTimeout()}

	fetcher, err := provider.NewFromConfig(appCfg.Provider, httpClient)
	if err != nil {
		logrus.WithError(err).Error("Failed to create quote provider")
		return err
	}

	registry := prometheus.NewRegistry()
	runner := quote.NewRunner(quote.Deps{
		Fetcher:      fetcher,
		Store:        snapshotfile.NewOsStore(appCfg.Snapshot.Path),
		Notifier:     telegram.NewNotifier(httpClient, appCfg.Telegram.APIURL),
		Destinations: appCfg.Destinations(),
		Labels:       appCfg.Provider.Labels(),
		Metrics:      metrics.New(registry),
	})

	if appCfg.Scheduler.IntervalSec <= 0 {
		if _, err = runner.Run(ctx); err != nil {
			logrus.WithError(err).Error("Market update failed")
			return err
		}
		return nil
	}

	return runDaemon(ctx, appCfg, runner, registry)
}

func runDaemon(ctx context.Context, appCfg *config.AppConfig, runner *quote.Runner, registry *prometheus.Registry) error {
	interval := time.Duration(appCfg.Scheduler.IntervalSec) * time.Second
	scheduler := quote.NewScheduler(runner, interval)
	// Ensure scheduler stops before returning
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if err := scheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Failed to start scheduler")
		return fmt.Errorf("start scheduler: %w", err)
	}
	logrus.Infof("✅ Scheduler activation successful, running every %s", interval)

	if appCfg.HTTPServer.Port == "" {
		<-ctx.Done()
		return nil
	}

	quoteHandler := handler.NewHandler(snapshotfile.NewOsStore(appCfg.Snapshot.Path), runner)
	router := api.NewRouter(quoteHandler, registry)
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer.Port, router); serverErr != nil {
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func setupLogging(level string) {
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
}
