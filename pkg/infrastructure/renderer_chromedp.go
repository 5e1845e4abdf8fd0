package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// PDFSession is one running headless browser. It must be closed exactly
// once, whatever happened while printing.
type PDFSession interface {
	PrintToPDF(ctx context.Context, html string) ([]byte, error)
	Close() error
}

type ChromedpConfig struct {
	ExecPath          string
	LaunchTimeout     time.Duration
	NavigationTimeout time.Duration
	RenderTimeout     time.Duration
	ViewportWidth     int64
	ViewportHeight    int64
}

// A4: 210mm x 297mm -> inches: 8.27 x 11.69
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	marginIn      = 0.4
)

func (c ChromedpConfig) withDefaults() ChromedpConfig {
	if c.LaunchTimeout <= 0 {
		c.LaunchTimeout = 30 * time.Second
	}
	if c.NavigationTimeout <= 0 {
		c.NavigationTimeout = 30 * time.Second
	}
	if c.RenderTimeout <= 0 {
		c.RenderTimeout = 60 * time.Second
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = 1240
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = 1754
	}
	return c
}

type ChromedpRenderer struct {
	cfg ChromedpConfig
}

func NewChromedpRenderer(cfg ChromedpConfig) *ChromedpRenderer {
	return &ChromedpRenderer{cfg: cfg.withDefaults()}
}

// Launch starts a dedicated headless Chrome process. Sessions are never
// shared between calls.
func (r *ChromedpRenderer) Launch(ctx context.Context) (PDFSession, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
	)
	if r.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.cfg.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	s := &ChromedpSession{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		cfg:         r.cfg,
	}

	// The first Run allocates the browser and ties it to the context it is
	// given, so it cannot carry the launch timeout itself.
	started := make(chan error, 1)
	go func() { started <- chromedp.Run(tabCtx) }()

	timer := time.NewTimer(r.cfg.LaunchTimeout)
	defer timer.Stop()

	select {
	case err := <-started:
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("launch browser: %w", err)
		}
	case <-timer.C:
		_ = s.Close()
		return nil, fmt.Errorf("launch browser: timed out after %s", r.cfg.LaunchTimeout)
	case <-ctx.Done():
		_ = s.Close()
		return nil, fmt.Errorf("launch browser: %w", ctx.Err())
	}
	return s, nil
}

// RenderHTMLToPDF launches a browser, prints html and tears the browser down.
func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	s, err := r.Launch(ctx)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.PrintToPDF(ctx, html)
}

type ChromedpSession struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	cfg         ChromedpConfig
	closeOnce   sync.Once
	closeErr    error
}

func (s *ChromedpSession) PrintToPDF(ctx context.Context, html string) ([]byte, error) {
	navCtx, cancelNav := context.WithTimeout(s.ctx, s.cfg.NavigationTimeout)
	defer cancelNav()
	stopNav := context.AfterFunc(ctx, cancelNav)
	defer stopNav()

	var fontsReady bool
	err := chromedp.Run(navCtx,
		chromedp.EmulateViewport(s.cfg.ViewportWidth, s.cfg.ViewportHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsReady,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams { return p.WithAwaitPromise(true) }),
	)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	renderCtx, cancelRender := context.WithTimeout(s.ctx, s.cfg.RenderTimeout)
	defer cancelRender()
	stopRender := context.AfterFunc(ctx, cancelRender)
	defer stopRender()

	var pdfBuf []byte
	err = chromedp.Run(renderCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginTop(marginIn).
				WithMarginBottom(marginIn).
				WithMarginLeft(marginIn).
				WithMarginRight(marginIn).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return pdfBuf, nil
}

// Close shuts the browser down and waits for the process to exit. Extra
// calls are no-ops.
func (s *ChromedpSession) Close() error {
	s.closeOnce.Do(func() {
		if err := chromedp.Cancel(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.closeErr = err
		}
		s.cancelTab()
		s.cancelAlloc()
	})
	return s.closeErr
}
