package lookbook

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

var chromeCandidates = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
}

// Exporter prints the lookbook page to PDF with headless Chrome.
type Exporter struct {
	chromePath string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewExporter builds an exporter. An empty chromePath is auto-detected.
func NewExporter(chromePath string, timeout time.Duration, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	if chromePath == "" {
		chromePath = detectChromePath(chromeCandidates)
	}
	return &Exporter{chromePath: chromePath, timeout: timeout, logger: logger.With("component", "lookbook")}
}

// ExportPDF renders pageURL and returns the printed document.
func (e *Exporter) ExportPDF(ctx context.Context, pageURL string) ([]byte, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, e.allocatorOptions()...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	start := time.Now()
	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print lookbook: %w", err)
	}
	e.logger.Info("lookbook exported", "bytes", len(pdf), "duration_ms", time.Since(start).Milliseconds())
	return pdf, nil
}

func (e *Exporter) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.NoSandbox)
	if e.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.chromePath))
	}
	return opts
}

func detectChromePath(candidates []string) string {
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
