package fetcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/shelfscout/shelfscout/config"
	"github.com/shelfscout/shelfscout/models"
)

// Fetcher drives a headless browser to produce rendered markup snapshots.
// One browser process is shared across runs; every Fetch call opens and
// closes its own isolated page, so the Fetcher is safe for concurrent use.
type Fetcher struct {
	browser    *rod.Browser
	browserCfg config.BrowserConfig
	cfg        config.FetcherConfig

	// attempt performs one navigation attempt. Overridable in tests to
	// exercise the primary/fallback policy without a browser.
	attempt func(ctx context.Context, url string, mode waitMode, timeout time.Duration) (string, error)
}

// New launches a headless browser and connects to it.
func New(browserCfg config.BrowserConfig, cfg config.FetcherConfig) (*Fetcher, error) {
	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(browserCfg.NoSandbox)

	if browserCfg.BrowserBin != "" {
		l = l.Bin(browserCfg.BrowserBin)
	}
	if browserCfg.DefaultProxy != "" {
		l = l.Proxy(browserCfg.DefaultProxy)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	f := &Fetcher{
		browser:    browser,
		browserCfg: browserCfg,
		cfg:        cfg,
	}
	f.attempt = f.navigate
	return f, nil
}

// Close kills the browser process. Call this on graceful shutdown to
// prevent zombie Chrome processes.
func (f *Fetcher) Close() {
	slog.Info("fetcher shutting down: closing browser")
	f.browser.MustClose()
	slog.Info("fetcher shutdown complete")
}
