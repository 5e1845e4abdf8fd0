// Command export_check runs the PDF export pipeline once against a real
// headless Chrome and writes the results to disk.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-builder/internal/adapter/artifact"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/metrics"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/infrastructure"
)

//go:embed sample.json
var sampleResume []byte

const owner = "export-check"

func main() {
	in := flag.String("in", "", "resume JSON file (defaults to a built-in sample)")
	out := flag.String("out", filepath.Join("resume-data", "generated"), "output directory")
	tpl := flag.String("template", "", "template override")
	lang := flag.String("lang", "en", "label language")
	chrome := flag.String("chrome", os.Getenv("CHROME_PATH"), "Chrome executable")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	rawHTML := flag.String("html", "", "print this HTML file directly, skipping the resume pipeline")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	engine := infrastructure.NewChromedpRenderer(infrastructure.ChromedpConfig{ExecPath: *chrome})

	if *rawHTML != "" {
		if err := printFile(ctx, logger, engine, *rawHTML, *out); err != nil {
			logger.Error("print html", "path", *rawHTML, "error", err)
			os.Exit(1)
		}
		return
	}

	raw := sampleResume
	if *in != "" {
		b, err := os.ReadFile(*in)
		if err != nil {
			logger.Error("read resume", "path", *in, "error", err)
			os.Exit(2)
		}
		raw = b
	}
	if err := model.ValidateDocument(raw); err != nil {
		logger.Error("resume does not match the schema", "error", err)
		os.Exit(2)
	}
	var patch usecase.ResumePatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		logger.Error("decode resume", "error", err)
		os.Exit(2)
	}
	patch.ID = ""
	if *tpl != "" {
		patch.Template = tpl
	}

	store := repo.NewMemoryStore()
	rec := metrics.NewInMemory()
	r, err := usecase.NewResumeService(store, rec).Create(ctx, owner, patch)
	if err != nil {
		logger.Error("store resume", "error", err)
		os.Exit(1)
	}

	archive, err := artifact.NewFileStore(*out)
	if err != nil {
		logger.Error("open output dir", "error", err)
		os.Exit(1)
	}
	exporter := usecase.NewExporter(store, engine,
		usecase.WithArchive(archive),
		usecase.WithExportMetrics(rec),
		usecase.WithLogger(logger),
	)

	html, err := exporter.Preview(ctx, r.ID, owner, *lang)
	if err != nil {
		logger.Error("render preview", "error", err)
		os.Exit(1)
	}
	htmlPath := filepath.Join(*out, r.ID.String()+".html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		logger.Error("write preview", "error", err)
		os.Exit(1)
	}

	start := time.Now()
	res, err := exporter.Export(ctx, r.ID, owner, *lang)
	if err != nil {
		logger.Error("export failed", "error", err, "elapsed", time.Since(start))
		os.Exit(1)
	}

	logger.Info("export ok",
		"filename", res.Filename,
		"bytes", len(res.PDF),
		"elapsed", time.Since(start),
		"pdf", filepath.Join(*out, filepath.FromSlash(usecase.ArchiveKey(owner, res.ResumeID, res.Filename))),
		"html", htmlPath,
		"template", r.Template,
	)
}

// printFile checks the browser alone: the HTML is printed as-is.
func printFile(ctx context.Context, logger *slog.Logger, engine *infrastructure.ChromedpRenderer, path, outDir string) error {
	html, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	pdf, err := engine.RenderHTMLToPDF(ctx, string(html))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".pdf"
	dst := filepath.Join(outDir, name)
	if err := os.WriteFile(dst, pdf, 0o644); err != nil {
		return err
	}
	logger.Info("print ok", "pdf", dst, "bytes", len(pdf))
	return nil
}
