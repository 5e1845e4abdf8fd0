package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/render"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	resumes  *usecase.ResumeService
	exporter *usecase.Exporter
	logger   *slog.Logger
}

func NewHandler(resumes *usecase.ResumeService, exporter *usecase.Exporter, logger *slog.Logger) *Handler {
	return &Handler{resumes: resumes, exporter: exporter, logger: logger}
}

// ListResumes returns the caller's resume summaries, newest first.
//
// GET /resumes
func (h *Handler) ListResumes(c *fiber.Ctx) error {
	out, err := h.resumes.List(c.UserContext(), OwnerID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GET /resumes/:id
func (h *Handler) GetResume(c *fiber.Ctx) error {
	id, err := resumeID(c.Params("id"))
	if err != nil {
		return err
	}
	r, err := h.resumes.Get(c.UserContext(), id, OwnerID(c))
	if err != nil {
		return err
	}
	return c.JSON(r)
}

// SaveResume creates a resume, or updates it when the body carries an id.
//
// POST /resumes
func (h *Handler) SaveResume(c *fiber.Ctx) error {
	p, err := decodePatch(c.Body())
	if err != nil {
		return err
	}
	r, err := h.resumes.Save(c.UserContext(), OwnerID(c), p)
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if p.ID == "" {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(r)
}

// UpdateResume applies a full-field update.
//
// PUT /resumes/:id
func (h *Handler) UpdateResume(c *fiber.Ctx) error {
	id, err := resumeID(c.Params("id"))
	if err != nil {
		return err
	}
	p, err := decodePatch(c.Body())
	if err != nil {
		return err
	}
	if err := usecase.ValidateFullUpdate(p); err != nil {
		return err
	}
	r, err := h.resumes.Update(c.UserContext(), id, OwnerID(c), p)
	if err != nil {
		return err
	}
	return c.JSON(r)
}

// DeleteResume removes a resume named in the path or in a {"id": ...} body.
//
// DELETE /resumes/:id
// DELETE /resumes
func (h *Handler) DeleteResume(c *fiber.Ctx) error {
	raw := c.Params("id")
	if raw == "" {
		var body struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(c.Body(), &body); err != nil || body.ID == "" {
			verr := model.NewValidationError()
			verr.Add("id", "is required")
			return verr
		}
		raw = body.ID
	}
	id, err := resumeID(raw)
	if err != nil {
		return err
	}
	if err := h.resumes.Delete(c.UserContext(), id, OwnerID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportResume streams the resume as a PDF attachment.
//
// GET /resumes/export/:id?lang=xx
func (h *Handler) ExportResume(c *fiber.Ctx) error {
	id, err := resumeID(c.Params("id"))
	if err != nil {
		return err
	}
	res, err := h.exporter.Export(c.UserContext(), id, OwnerID(c), c.Query("lang"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, contentDisposition(res.Filename))
	return c.Send(res.PDF)
}

// PreviewResume returns the HTML document the PDF is printed from.
//
// GET /resumes/:id/preview?lang=xx
func (h *Handler) PreviewResume(c *fiber.Ctx) error {
	id, err := resumeID(c.Params("id"))
	if err != nil {
		return err
	}
	html, err := h.exporter.Preview(c.UserContext(), id, OwnerID(c), c.Query("lang"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// GET /templates
func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(render.Templates())
}

// resumeID parses a path id. A malformed id cannot name an existing resume,
// so it is reported as not found.
func resumeID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}

// decodePatch validates raw against the resume schema and decodes it. An
// empty body is an empty patch.
func decodePatch(raw []byte) (usecase.ResumePatch, error) {
	var p usecase.ResumePatch
	if len(bytes.TrimSpace(raw)) == 0 {
		return p, nil
	}
	if err := model.ValidateDocument(raw); err != nil {
		return p, err
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		verr := model.NewValidationError()
		verr.Add("body", "request body must be a JSON object")
		return p, verr
	}
	return p, nil
}

// contentDisposition builds an attachment header with an ASCII filename and,
// when the name is not plain ASCII, an RFC 5987 UTF-8 variant.
func contentDisposition(filename string) string {
	ascii := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return -1
		}
		return r
	}, filename)
	if ascii == filename {
		return fmt.Sprintf(`attachment; filename="%s"`, filename)
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, ascii, url.PathEscape(filename))
}
