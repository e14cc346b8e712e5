package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aqio/aqdash/internal/adapters/http/api"
	"github.com/aqio/aqdash/internal/adapters/http/docs"
	"github.com/aqio/aqdash/internal/adapters/repository"
	service "github.com/aqio/aqdash/internal/app"
	"github.com/aqio/aqdash/internal/config"
	"github.com/aqio/aqdash/internal/domain/eda"
	"github.com/aqio/aqdash/internal/domain/predict"
	"github.com/aqio/aqdash/pkg/logger"
	"github.com/aqio/aqdash/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 30 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection; the custom registry carries
	// its own system gauges.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("logger sync failed: " + err.Error() + "\n")
		}
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Load the dataset and the prediction artifacts. Any failure here is
	// terminal for the session: report and exit, no retry.
	dataset, err := repository.Load(cfg.DataPath)
	if err != nil {
		log.Error(ctx, "failed to load dataset", logger.String("path", cfg.DataPath), logger.Error(err))
		os.Exit(1)
	}
	pipeline, err := predict.LoadPipeline(cfg.ScalerPath, cfg.ModelPath)
	if err != nil {
		log.Error(ctx, "failed to load prediction artifacts", logger.Error(err))
		os.Exit(1)
	}

	svc := service.New(dataset, pipeline,
		service.WithLogger(log),
		service.WithSampleRows(cfg.SampleRows),
		service.WithChartOptions(eda.Options{
			HistogramBins:   cfg.HistogramBins,
			PairplotWarnAt:  cfg.PairplotWarnColumns,
			PairplotMaxDots: cfg.PairplotMaxPoints,
		}),
	)

	log.Info(ctx, "artifacts loaded",
		logger.Int("rows", dataset.Rows()),
		logger.Int("columns", len(dataset.Columns())),
		logger.String("model_version", pipeline.Meta().Version),
		logger.Int("trees", pipeline.Meta().Trees),
	)

	go startSystemMetricsUpdater(ctx)

	mux := http.NewServeMux()
	docs.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater refreshes process-level gauges periodically.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			metrics.UpdateSystemMemoryUsage(m.Alloc)
			metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
		}
	}
}
