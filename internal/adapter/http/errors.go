package http

import (
	"errors"
	"log/slog"
	"strings"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Detail  string            `json:"detail,omitempty"`
}

// ErrorHandler maps errors returned by handlers and middleware to JSON
// responses. Server-side failures are logged in full; their detail is only
// sent to clients outside production.
func ErrorHandler(logger *slog.Logger, production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, resp := classify(err)

		if status >= fiber.StatusInternalServerError || status == fiber.StatusUnprocessableEntity {
			logger.Error("request failed",
				"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
				"method", c.Method(),
				"path", c.Path(),
				"status_code", status,
				"error", err,
			)
			if !production {
				resp.Detail = err.Error()
			}
		}

		return c.Status(status).JSON(resp)
	}
}

func classify(err error) (int, errorResponse) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest, errorResponse{
			Error:   "validation_failed",
			Message: "request validation failed",
			Fields:  verr.Fields,
		}
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, errorResponse{Error: "not_found", Message: "resume not found"}
	case errors.Is(err, domain.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable, errorResponse{Error: "storage_unavailable", Message: "resume storage is disabled"}
	case errors.Is(err, domain.ErrRender):
		return fiber.StatusUnprocessableEntity, errorResponse{Error: "render_failed", Message: "resume cannot be rendered"}
	case errors.Is(err, domain.ErrExportFailed):
		return fiber.StatusBadGateway, errorResponse{Error: "export_failed", Message: "PDF export failed"}
	}

	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return ferr.Code, errorResponse{Error: errorCode(ferr.Code), Message: ferr.Message}
	}

	return fiber.StatusInternalServerError, errorResponse{Error: "internal_error", Message: "internal server error"}
}

// errorCode turns a status into a snake_case code, e.g. 429 -> too_many_requests.
func errorCode(status int) string {
	msg := utils.StatusMessage(status)
	if msg == "" {
		return "error"
	}
	return strings.ReplaceAll(strings.ToLower(msg), " ", "_")
}
