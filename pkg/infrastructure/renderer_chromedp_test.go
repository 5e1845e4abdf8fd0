package infrastructure

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"
)

func TestChromedpConfigDefaults(t *testing.T) {
	cfg := ChromedpConfig{}.withDefaults()
	if cfg.LaunchTimeout != 30*time.Second || cfg.NavigationTimeout != 30*time.Second || cfg.RenderTimeout != 60*time.Second {
		t.Fatalf("unexpected timeouts %+v", cfg)
	}
	if cfg.ViewportWidth != 1240 || cfg.ViewportHeight != 1754 {
		t.Fatalf("unexpected viewport %dx%d", cfg.ViewportWidth, cfg.ViewportHeight)
	}

	custom := ChromedpConfig{RenderTimeout: time.Second, ViewportWidth: 800}.withDefaults()
	if custom.RenderTimeout != time.Second || custom.ViewportWidth != 800 {
		t.Fatalf("explicit values overwritten: %+v", custom)
	}
}

// chromeRenderer skips unless a Chrome binary is configured, since the
// tests start a real browser.
func chromeRenderer(t *testing.T, cfg ChromedpConfig) *ChromedpRenderer {
	t.Helper()
	path := os.Getenv("CHROME_PATH")
	if path == "" {
		t.Skip("CHROME_PATH not set")
	}
	cfg.ExecPath = path
	return NewChromedpRenderer(cfg)
}

func TestRenderHTMLToPDF(t *testing.T) {
	r := chromeRenderer(t, ChromedpConfig{})
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pdf, err := r.RenderHTMLToPDF(ctx, `<!DOCTYPE html><html><body><h1>Hello</h1></body></html>`)
	if err != nil {
		t.Fatalf("RenderHTMLToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", pdf[:min(len(pdf), 16)])
	}
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	r := chromeRenderer(t, ChromedpConfig{})
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := r.Launch(ctx)
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := s.PrintToPDF(ctx, "<html></html>"); err == nil {
		t.Fatal("PrintToPDF after Close should fail")
	}
}

func TestPrintHonoursRenderTimeout(t *testing.T) {
	r := chromeRenderer(t, ChromedpConfig{RenderTimeout: time.Nanosecond})
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := r.Launch(ctx)
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	defer s.Close()

	if _, err := s.PrintToPDF(ctx, "<html><body>x</body></html>"); err == nil {
		t.Fatal("expected the render timeout to fire")
	}
}

func TestLaunchFailsWithMissingBinary(t *testing.T) {
	r := NewChromedpRenderer(ChromedpConfig{ExecPath: "/nonexistent/chrome", LaunchTimeout: 5 * time.Second})
	if _, err := r.Launch(context.Background()); err == nil {
		t.Fatal("expected launch to fail")
	}
}
