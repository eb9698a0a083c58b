// internal/infrastructure/browser/rod_fetcher.go
package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/hz-bin/AirTicket/pkg/logger"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// PageFetcher loads a listing page and returns its rendered markup
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Options configures the rod fetcher
type Options struct {
	Headless  bool
	Debug     bool
	DebugFile string

	PageLoadTimeout time.Duration
	// SettleWait is slept after load and again after the element waits; the
	// page has no real readiness signal, so this is a crude settle heuristic.
	SettleWait   time.Duration
	PrimaryWait  time.Duration
	FallbackWait time.Duration
}

// RodFetcher drives a headless Chromium instance via go-rod
type RodFetcher struct {
	opts   Options
	logger logger.Logger
}

// NewRodFetcher creates a new rod-backed page fetcher
func NewRodFetcher(opts Options, logger logger.Logger) *RodFetcher {
	return &RodFetcher{
		opts:   opts,
		logger: logger,
	}
}

// Fetch navigates to url, waits for the listing content to appear and returns
// the page source. Implausibly small content is treated as a fetch failure,
// with the raw source saved for inspection.
func (f *RodFetcher) Fetch(ctx context.Context, url string) (string, error) {
	l := launcher.New().
		Headless(f.opts.Headless).
		NoSandbox(true).
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("start-maximized").
		Set("disable-extensions").
		Set("disable-plugins").
		Set("blink-settings", "imagesEnabled=false").
		Set("user-agent", userAgent).
		Set("accept-lang", "zh-CN,zh;q=0.9,en;q=0.8")

	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return "", fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		f.logger.Info("Closing browser")
		b.Close()
	}()

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}

	f.logger.Info("Visiting listing page", "url", url)
	if err := page.Timeout(f.opts.PageLoadTimeout).Navigate(url); err != nil {
		return "", fmt.Errorf("navigate: %w", err)
	}
	if err := page.Timeout(f.opts.PageLoadTimeout).WaitLoad(); err != nil {
		f.logger.Warn("Page load wait ended early", "error", err)
	}

	time.Sleep(f.opts.SettleWait)

	// The listing container class has changed before; wait for either known
	// variant with a bounded timeout and carry on regardless.
	if err := page.Timeout(f.opts.PrimaryWait).WaitElementsMoreThan(".item-inner", 0); err != nil {
		f.logger.Warn("Listing items did not appear, trying product elements")
		if err := page.Timeout(f.opts.FallbackWait).WaitElementsMoreThan(".product", 0); err != nil {
			f.logger.Warn("No expected flight elements appeared before timeout")
		} else {
			f.logger.Info("Product elements loaded")
		}
	} else {
		f.logger.Info("Listing items loaded")
	}

	time.Sleep(f.opts.SettleWait)

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read page source: %w", err)
	}

	if f.opts.Debug || len(html) < 1000 {
		if err := os.WriteFile(f.opts.DebugFile, []byte(html), 0o644); err != nil {
			f.logger.Warn("Failed to save debug page", "error", err)
		} else {
			f.logger.Info("Saved page source", "file", f.opts.DebugFile, "bytes", len(html))
		}
	}

	if len(html) < 100 {
		return "", fmt.Errorf("page source too small (%d bytes)", len(html))
	}
	return html, nil
}
