package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/metrics"
	"resume-builder/pkg/infrastructure"
	"resume-builder/pkg/render"

	"github.com/google/uuid"
)

// Engine starts headless browser sessions. Each export gets its own
// session.
type Engine interface {
	Launch(ctx context.Context) (infrastructure.PDFSession, error)
}

// Archive keeps a copy of produced documents. It is optional.
type Archive interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

// ExportResult is a printed resume and the filename it is served under.
type ExportResult struct {
	ResumeID uuid.UUID
	Filename string
	PDF      []byte
}

// Exporter turns stored resumes into HTML previews and PDF documents.
type Exporter struct {
	store   ResumeStore
	engine  Engine
	archive Archive
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// ExporterOption configures optional Exporter collaborators.
type ExporterOption func(*Exporter)

func WithArchive(a Archive) ExporterOption {
	return func(e *Exporter) { e.archive = a }
}

func WithExportMetrics(rec metrics.Recorder) ExporterOption {
	return func(e *Exporter) {
		if rec != nil {
			e.metrics = rec
		}
	}
}

func WithLogger(l *slog.Logger) ExporterOption {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewExporter(store ResumeStore, engine Engine, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		store:   store,
		engine:  engine,
		metrics: metrics.NewNoop(),
		logger:  slog.Default(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Preview renders the HTML the PDF export is produced from.
func (e *Exporter) Preview(ctx context.Context, id uuid.UUID, ownerID, lang string) (string, error) {
	r, err := e.store.Get(ctx, id, ownerID)
	if err != nil {
		return "", err
	}
	return render.Render(r.Content, render.Options{Template: r.Template, Language: lang})
}

// Export renders the resume and prints it to PDF in a fresh browser
// session. Engine failures are reported as domain.ErrExportFailed with the
// cause attached; nothing is retried.
func (e *Exporter) Export(ctx context.Context, id uuid.UUID, ownerID, lang string) (*ExportResult, error) {
	start := time.Now()
	res, err := e.export(ctx, id, ownerID, lang)
	e.metrics.ObserveExport(metrics.OutcomeOf(err), time.Since(start))
	if err != nil {
		return nil, err
	}
	e.metrics.ObserveExportSize(len(res.PDF))

	if e.archive != nil {
		key := ArchiveKey(ownerID, res.ResumeID, res.Filename)
		if aerr := e.archive.Put(ctx, key, "application/pdf", res.PDF); aerr != nil {
			e.logger.Warn("export archive failed", "resume_id", res.ResumeID, "key", key, "error", aerr)
		}
	}
	return res, nil
}

func (e *Exporter) export(ctx context.Context, id uuid.UUID, ownerID, lang string) (*ExportResult, error) {
	r, err := e.store.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	html, err := render.Render(r.Content, render.Options{Template: r.Template, Language: lang})
	if err != nil {
		return nil, err
	}

	session, err := e.engine.Launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: launch: %w", domain.ErrExportFailed, err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			e.logger.Warn("export session close failed", "resume_id", r.ID, "error", cerr)
		}
	}()

	pdf, err := session.PrintToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("%w: print: %w", domain.ErrExportFailed, err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, fmt.Errorf("%w: engine output is not a PDF document", domain.ErrExportFailed)
	}

	fullName := ""
	if r.PersonalInfo != nil {
		fullName = r.PersonalInfo.FullName
	}
	return &ExportResult{
		ResumeID: r.ID,
		Filename: ExportFilename(fullName, e.now()),
		PDF:      pdf,
	}, nil
}

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	filenameUnsafe = regexp.MustCompile(`[^\p{L}\p{N}_.\-]`)
)

// ExportFilename builds "<Full_Name>_<YYYY-MM-DD>.pdf". Whitespace runs
// become "_" and characters that are unsafe in a header or a path are
// dropped; an empty name becomes "resume".
func ExportFilename(fullName string, at time.Time) string {
	name := whitespaceRun.ReplaceAllString(strings.TrimSpace(fullName), "_")
	name = filenameUnsafe.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "resume"
	}
	return fmt.Sprintf("%s_%s.pdf", name, at.Format("2006-01-02"))
}

// ArchiveKey is the object key an exported document is archived under.
func ArchiveKey(ownerID string, resumeID uuid.UUID, filename string) string {
	owner := filenameUnsafe.ReplaceAllString(ownerID, "_")
	return fmt.Sprintf("resumes/%s/%s/%s", owner, resumeID, filename)
}
