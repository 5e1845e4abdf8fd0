package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthChecker defines an interface for checking dependency health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]HealthChecker
}

// NewHealthHandler takes the dependencies readiness depends on, by name.
// Nil checkers are skipped.
func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	out := make(map[string]HealthChecker, len(checks))
	for name, c := range checks {
		if c != nil {
			out[name] = c
		}
	}
	return &HealthHandler{checks: out}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is a liveness probe; it never checks dependencies.
//
// GET /healthz
func (h *HealthHandler) Healthz(c *fiber.Ctx) error {
	return c.JSON(healthResponse{Status: "ok"})
}

// Readyz reports 503 when any dependency fails its ping.
//
// GET /readyz
func (h *HealthHandler) Readyz(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Checks: map[string]string{}}
	status := fiber.StatusOK
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			resp.Checks[name] = "error: " + err.Error()
			resp.Status = "unavailable"
			status = fiber.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	return c.Status(status).JSON(resp)
}
