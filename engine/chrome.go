package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"bilingual-pdf/logger"
)

// Chrome prints HTML to PDF with a headless browser. The browser is
// started on first use and reused until Close.
type Chrome struct {
	execPath string

	mu            sync.Mutex
	browserCtx    context.Context
	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc
}

// NewChrome returns a Chrome engine. An empty execPath lets chromedp find
// the browser.
func NewChrome(execPath string) *Chrome {
	return &Chrome{execPath: execPath}
}

func (c *Chrome) Name() string   { return "chrome" }
func (c *Chrome) Format() Format { return FormatHTML }

func (c *Chrome) initBrowser() error {
	if c.browserCtx != nil {
		return nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-sandbox", true),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("failed to initialize browser: %w", err)
	}

	c.browserCtx, c.allocCancel, c.browserCancel = browserCtx, allocCancel, browserCancel
	logger.Info("browser initialized")
	return nil
}

func (c *Chrome) Compile(ctx context.Context, source string) ([]byte, error) {
	c.mu.Lock()
	err := c.initBrowser()
	browserCtx := c.browserCtx
	c.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}

	tempFile, err := os.CreateTemp("", "bilingual-pdf-*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	_, err = tempFile.WriteString(source)
	tempFile.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	// one tab per document
	tabCtx, tabCancel := chromedp.NewContext(browserCtx)
	defer tabCancel()
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	var pdf []byte
	err = chromedp.Run(tabCtx,
		chromedp.Navigate("file://"+filepath.ToSlash(tempFile.Name())),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: chromedp execution failed: %w", ErrCompile, err)
	}
	return pdf, nil
}

// Close shuts the browser down.
func (c *Chrome) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browserCancel != nil {
		c.browserCancel()
	}
	if c.allocCancel != nil {
		c.allocCancel()
	}
	c.browserCtx, c.browserCancel, c.allocCancel = nil, nil, nil
	return nil
}
