package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"resume-builder/internal/adapter/artifact"
	"resume-builder/internal/adapter/cache"
	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/metrics"
	"resume-builder/internal/server"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.NewPrometheus(reg)
	if err != nil {
		logger.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	// Resume store
	store, err := repo.Open(ctx, repo.Options{
		Backend:          cfg.StoreBackend,
		DatabaseURL:      cfg.DatabaseURL,
		MaxConns:         cfg.DatabaseMaxConns,
		FallbackToMemory: cfg.StoreFallbackMemory,
	}, logger)
	if err != nil {
		logger.Error("failed to open resume store",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}

	// Optional Redis for the shared export rate limiter
	var limiter httpadapter.ExportLimiter
	readiness := map[string]httpadapter.HealthChecker{"store": store}
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, using in-process export rate limit",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
		} else {
			logger.Info("connected to Redis")
			limiter = cacheClient
			readiness["redis"] = cacheClient
		}
	}

	// Export pipeline
	archive, err := artifact.Open(ctx, artifact.Options{
		Backend: cfg.ArtifactBackend,
		Dir:     cfg.ArtifactDir,
		S3: artifact.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
			Bucket:    cfg.S3Bucket,
		},
	})
	if err != nil {
		logger.Error("failed to open artifact archive", "backend", cfg.ArtifactBackend, "error", err)
		os.Exit(1)
	}

	engine := infra.NewChromedpRenderer(infra.ChromedpConfig{
		ExecPath:          cfg.ChromePath,
		LaunchTimeout:     cfg.ExportLaunchTimeout,
		NavigationTimeout: cfg.ExportNavigationTimeout,
		RenderTimeout:     cfg.ExportRenderTimeout,
	})

	exporterOpts := []usecase.ExporterOption{
		usecase.WithExportMetrics(recorder),
		usecase.WithLogger(logger),
	}
	if archive != nil {
		exporterOpts = append(exporterOpts, usecase.WithArchive(archive))
	}
	exporter := usecase.NewExporter(store, engine, exporterOpts...)
	resumes := usecase.NewResumeService(store, recorder)

	// HTTP
	h := httpadapter.NewHandler(resumes, exporter, logger)
	health := httpadapter.NewHealthHandler(readiness)
	app := httpadapter.NewApp(httpadapter.AppConfig{
		Logger:       logger,
		Production:   cfg.IsProduction(),
		BodyLimit:    cfg.MaxRequestBodySize,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		CORSOrigins:  cfg.GetCORSAllowedOrigins(),
		JWTSecret:    []byte(cfg.JWTSecret),
		RateLimit: httpadapter.RateLimitConfig{
			Limiter:   limiter,
			PerMinute: cfg.ExportRatePerMinute,
			Burst:     cfg.ExportBurst,
		},
		Gatherer: reg,
	}, h, health)

	srv := server.New(app, cfg.AppPort, cfg.ShutdownTimeout, logger)
	srv.OnShutdown("resume store", func(ctx context.Context) error {
		store.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(ctx context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"store", store.Backend(),
		"artifacts", cfg.ArtifactBackend,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
