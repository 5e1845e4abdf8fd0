package http

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type AppConfig struct {
	Logger       *slog.Logger
	Production   bool
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
	JWTSecret    []byte
	RateLimit    RateLimitConfig
	// Gatherer backs /metrics; the route is not registered when nil.
	Gatherer prometheus.Gatherer
}

// NewApp builds the fiber app with every route and middleware registered.
func NewApp(cfg AppConfig, h *Handler, health *HealthHandler) *fiber.App {
	if cfg.RateLimit.Logger == nil {
		cfg.RateLimit.Logger = cfg.Logger
	}

	app := fiber.New(fiber.Config{
		AppName:               "resume-builder",
		ErrorHandler:          ErrorHandler(cfg.Logger, cfg.Production),
		BodyLimit:             cfg.BodyLimit,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		DisableStartupMessage: true,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.Production}))
	app.Use(requestid.New())
	app.Use(RequestLogger(cfg.Logger))
	app.Use(corsMiddleware(cfg.CORSOrigins))

	app.Get("/healthz", health.Healthz)
	app.Get("/readyz", health.Readyz)
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	auth := RequireAuth(cfg.JWTSecret)
	app.Get("/templates", auth, h.ListTemplates)

	resumes := app.Group("/resumes", auth)
	resumes.Get("", h.ListResumes)
	resumes.Post("", h.SaveResume)
	resumes.Delete("", h.DeleteResume)
	resumes.Get("/export/:id", ExportRateLimit(cfg.RateLimit), h.ExportResume)
	resumes.Get("/:id/preview", h.PreviewResume)
	resumes.Get("/:id", h.GetResume)
	resumes.Put("/:id", h.UpdateResume)
	resumes.Delete("/:id", h.DeleteResume)

	return app
}

// corsMiddleware allows every origin unless a list is configured.
func corsMiddleware(origins []string) fiber.Handler {
	allow := "*"
	if len(origins) > 0 {
		allow = strings.Join(origins, ",")
	}
	return cors.New(cors.Config{
		AllowOrigins:  allow,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		ExposeHeaders: "Content-Disposition, Retry-After, X-Request-ID",
	})
}
