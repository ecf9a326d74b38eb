package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/talentgrid/internal/adapters/consult/gemini"
	"github.com/okian/talentgrid/internal/adapters/http/api"
	"github.com/okian/talentgrid/internal/adapters/http/site"
	"github.com/okian/talentgrid/internal/adapters/http/swagger"
	"github.com/okian/talentgrid/internal/adapters/repository/postgres"
	service "github.com/okian/talentgrid/internal/app"
	"github.com/okian/talentgrid/internal/config"
	"github.com/okian/talentgrid/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load()
	if err != nil {
		// logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, os.Getenv(config.EnvConfig)); err != nil {
		log.Error(ctx, "talentgrid exited", logger.Error(err))
		os.Exit(1)
	}
}

// run starts the service and serves HTTP until ctx is done. When configPath
// is set the scoring engine follows edits to that file.
func run(ctx context.Context, cfg *config.Config, configPath string) error {
	log := logger.Get()

	svc, closeDeps, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDeps()

	if err := svc.Start(ctx); err != nil {
		return err
	}

	if configPath != "" {
		go func() {
			err := config.Watch(ctx, configPath, func(next *config.Config) error {
				return svc.Reload(ctx, next.ScoringConfig())
			})
			if err != nil {
				log.Error(ctx, "config watcher stopped", logger.Error(err))
			}
		}()
	}
	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc, cfg),
		ReadTimeout:       readTimeout,
		WriteTimeout:      cfg.ConsultTimeout + readTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			svc.Stop(context.Background())
			return err
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	svc.Stop(shutdownCtx)

	log.Info(ctx, "server stopped")
	return nil
}

// buildService picks the consultation gateway and record source from cfg.
// The returned func releases them.
func buildService(ctx context.Context, cfg *config.Config) (*service.Service, func(), error) {
	log := logger.Get()
	closers := []func(){}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	opts := []service.Option{
		service.WithLogger(log.Named("service")),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.QueueSize),
		service.WithDedupeSize(cfg.DedupeSize),
		service.WithBatchConcurrency(cfg.ScoreBatchConcurrency),
		service.WithScoringConfig(cfg.ScoringConfig()),
		service.WithConsultTimeout(cfg.ConsultTimeout),
		service.WithForecastDefaults(cfg.DefaultAttritionRate, float64(cfg.DefaultCostPerHire)),
		service.WithPayEquityThreshold(cfg.PayEquityThreshold),
	}

	if cfg.GeminiAPIKey != "" {
		client, err := gemini.New(ctx, cfg.GeminiAPIKey, gemini.WithModel(cfg.GeminiModel))
		if err != nil {
			return nil, closeAll, err
		}
		opts = append(opts, service.WithGateway(client))
		log.Info(ctx, "consultation gateway enabled", logger.String("model", client.Model()))
	} else {
		log.Info(ctx, "no gemini_api_key; consultation answers come from the offline stub")
	}

	if cfg.DatabaseURL != "" {
		src, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, src.Close)
		opts = append(opts, service.WithRecordSource(src))
		log.Info(ctx, "cycle imports enabled")
	}

	svc, err := service.New(opts...)
	if err != nil {
		closeAll()
		return nil, func() {}, err
	}
	return svc, closeAll, nil
}

// newMux registers the docs, landing page and business API routes.
func newMux(ctx context.Context, svc *service.Service, cfg *config.Config) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	site.Register(ctx, mux)
	api.NewServer(svc, cfg.MaxAtRiskLimit).Register(ctx, mux)
	return mux
}

// startServiceMetricsUpdater refreshes the service gauges until ctx is done.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats publishes queue, store and runtime gauges as a side effect.
			_ = svc.GetStats()
		}
	}
}
