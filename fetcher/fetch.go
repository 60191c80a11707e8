package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/shelfscout/shelfscout/models"
	"github.com/ysmood/gson"
)

// waitMode selects the completion condition for one navigation attempt.
type waitMode int

const (
	// waitNetworkIdle waits until the network has been quiet for the
	// configured settle period. Used by the primary attempt.
	waitNetworkIdle waitMode = iota

	// waitDOMParsed accepts the page as soon as the DOM has stabilised,
	// without waiting for outstanding network activity. Used by the
	// single fallback attempt against slow or partially-loading pages.
	waitDOMParsed
)

// Fetch navigates to the URL and returns the rendered HTML snapshot.
//
// Policy: one primary attempt under the network-idle condition and the
// primary timeout; if it fails for any reason, exactly one fallback
// attempt under the weaker DOM-parsed condition and the shorter fallback
// timeout. The primary strategy is never retried. If both attempts fail,
// a NAVIGATION_FAILED error naming the URL and both causes is returned.
func (f *Fetcher) Fetch(ctx context.Context, target string) (string, error) {
	html, primaryErr := f.attempt(ctx, target, waitNetworkIdle, f.cfg.PrimaryTimeout)
	if primaryErr == nil {
		return html, nil
	}

	slog.Warn("primary navigation failed, attempting fallback",
		"url", target, "error", primaryErr)

	html, fallbackErr := f.attempt(ctx, target, waitDOMParsed, f.cfg.FallbackTimeout)
	if fallbackErr == nil {
		return html, nil
	}

	return "", models.NewScrapeError(
		models.ErrCodeNavigation,
		fmt.Sprintf("navigation to %s failed", target),
		errors.Join(primaryErr, fallbackErr),
	)
}

// navigate performs a single navigation attempt on a fresh page.
//
// Lifecycle:
//
//  1. Timeout guard       – hard deadline on the whole attempt
//  2. Open page           – one isolated tab per attempt
//  3. DEFER: page close   – guaranteed release on every exit path
//  4. Stealth injection   – before navigation, or it has no effect
//  5. Referer header      – synthesised Google referer unless overridden
//  6. Hijack mount        – resource blocking (fallback mode only, see below)
//  7. Idle listener       – registered before Navigate to capture all requests
//  8. Navigate + wait     – per the selected wait mode
//  9. Extract HTML
//
// The hijack router uses the CDP Fetch domain, which conflicts with
// WaitRequestIdle on recent Chromium. Resource blocking is therefore only
// mounted in DOM-parsed mode, where the idle listener is not used.
func (f *Fetcher) navigate(ctx context.Context, target string, mode waitMode, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to open page",
			err,
		)
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			slog.Warn("cleanup: failed to close page", "error", closeErr)
		}
	}()

	if f.cfg.Stealth {
		if evalErr := injectStealth(page); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr)
		}
	}

	// Synthesise a Google search referer so the visit does not look like
	// a cold direct hit.
	if u, parseErr := url.Parse(target); parseErr == nil && u.Hostname() != "" {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(map[string]string{
				"Referer": "https://www.google.com/search?q=" + url.QueryEscape(u.Hostname()),
			}),
		}.Call(page)
	}

	if mode == waitDOMParsed {
		if router := setupHijack(page, f.cfg.BlockedResourceTypes); router != nil {
			defer func() { _ = router.Stop() }()
		}
	}

	p := page.Context(ctx)

	// The idle listener must exist before Navigate, otherwise in-flight
	// requests are missed and the wait returns instantly.
	var waitIdle func()
	if mode == waitNetworkIdle {
		waitIdle = p.WaitRequestIdle(f.cfg.SettlePeriod, nil, nil, nil)
	}

	if navErr := p.Navigate(target); navErr != nil {
		return "", categorizeError(navErr, "navigation to target URL failed")
	}

	if waitIdle != nil {
		waitIdle()
	} else {
		if stableErr := p.WaitDOMStable(f.cfg.SettlePeriod, 0.1); stableErr != nil {
			slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
				"error", stableErr)
		}
	}

	html, htmlErr := p.HTML()
	if htmlErr != nil {
		return "", categorizeError(htmlErr, "failed to extract page HTML")
	}
	return html, nil
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// categorizeError wraps raw errors into typed ScrapeErrors so callers can
// distinguish timeouts from navigation faults.
func categorizeError(err error, msg string) *models.ScrapeError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "attempt canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}
