package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shelfscout/shelfscout/cache"
	"github.com/shelfscout/shelfscout/extractor"
	"github.com/shelfscout/shelfscout/metrics"
	"github.com/shelfscout/shelfscout/models"
	"github.com/shelfscout/shelfscout/store"
)

// PageFetcher produces rendered markup snapshots for target URLs.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Orchestrator sequences one extraction run: fetch → extract → assign
// identity and capture timestamp → append. Its public entry points never
// surface a fault to the caller; every failure is logged and degrades to
// an empty result with nothing appended.
type Orchestrator struct {
	fetcher   PageFetcher
	extractor *extractor.Extractor
	records   *store.ExtractionStore
	catalog   *store.Catalog

	snapshots    *cache.SnapshotCache
	cacheMaxAge  time.Duration
	collector    *metrics.Collector
	scheduledURL string
}

// New wires an Orchestrator. The catalog is consulted to warn about
// unknown product ids when tagging reviews; extraction proceeds either way.
func New(fetcher PageFetcher, ex *extractor.Extractor, records *store.ExtractionStore, catalog *store.Catalog) *Orchestrator {
	return &Orchestrator{
		fetcher:   fetcher,
		extractor: ex,
		records:   records,
		catalog:   catalog,
	}
}

// SetSnapshotCache enables snapshot reuse for repeated fetches of the
// same URL. Extraction and appends still run on every scrape, so cached
// snapshots never suppress record accumulation.
func (o *Orchestrator) SetSnapshotCache(c *cache.SnapshotCache, maxAge time.Duration) {
	o.snapshots = c
	o.cacheMaxAge = maxAge
}

// SetMetrics enables pipeline metrics recording.
func (o *Orchestrator) SetMetrics(c *metrics.Collector) {
	o.collector = c
}

// SetScheduledTarget sets the URL scraped by ScheduledRun.
func (o *Orchestrator) SetScheduledTarget(url string) {
	o.scheduledURL = url
}

// ScrapeReviews runs review-mode extraction against the URL and tags
// every record with the product id. On any fault the run is abandoned:
// the cause is logged, nothing is appended and an empty list is returned.
func (o *Orchestrator) ScrapeReviews(ctx context.Context, productID, sourceURL string) []models.ScrapedReview {
	if o.catalog != nil {
		if _, ok := o.catalog.FindProduct(productID); !ok {
			// Reviews are still stored with the raw id; the graph side
			// resolves dangling references at query time.
			slog.Warn("scraping reviews for unregistered product",
				"productID", productID, "url", sourceURL)
		}
	}

	batch, err := o.runReviews(ctx, productID, sourceURL)
	if err != nil {
		slog.Error("review scrape abandoned", "url", sourceURL, "error", err)
		return []models.ScrapedReview{}
	}

	o.recordBatch("review", len(batch))
	slog.Info("review scrape completed", "url", sourceURL, "records", len(batch))
	return batch
}

// ScrapeProducts runs product-mode extraction against the URL. Same
// failure contract as ScrapeReviews.
func (o *Orchestrator) ScrapeProducts(ctx context.Context, sourceURL string) []models.ScrapedProduct {
	batch, err := o.runProducts(ctx, sourceURL)
	if err != nil {
		slog.Error("product scrape abandoned", "url", sourceURL, "error", err)
		return []models.ScrapedProduct{}
	}

	o.recordBatch("product", len(batch))
	slog.Info("product scrape completed", "url", sourceURL, "records", len(batch))
	return batch
}

// ScheduledRun executes a product-mode run against the preconfigured
// target URL. Fire-and-forget: results and faults are logged only.
func (o *Orchestrator) ScheduledRun(ctx context.Context) {
	if o.scheduledURL == "" {
		slog.Warn("scheduled run skipped: no target URL configured")
		return
	}
	records := o.ScrapeProducts(ctx, o.scheduledURL)
	slog.Info("scheduled run finished", "url", o.scheduledURL, "records", len(records))
}

// runReviews is the fallible inner pipeline, kept separate from the
// fault-collapsing boundary so failure modes stay testable.
func (o *Orchestrator) runReviews(ctx context.Context, productID, sourceURL string) ([]models.ScrapedReview, error) {
	html, err := o.snapshot(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	candidates := o.extractor.ExtractReviews(html)
	now := time.Now()
	batch := make([]models.ScrapedReview, 0, len(candidates))
	for _, c := range candidates {
		batch = append(batch, models.ScrapedReview{
			ID:         uuid.NewString(),
			ProductID:  productID,
			Source:     sourceURL,
			Rating:     c.Rating,
			Comment:    c.Comment,
			CapturedAt: now,
		})
	}

	o.records.AppendReviews(batch)
	return batch, nil
}

func (o *Orchestrator) runProducts(ctx context.Context, sourceURL string) ([]models.ScrapedProduct, error) {
	html, err := o.snapshot(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	candidates := o.extractor.ExtractProducts(html, sourceURL)
	now := time.Now()
	batch := make([]models.ScrapedProduct, 0, len(candidates))
	for _, c := range candidates {
		batch = append(batch, models.ScrapedProduct{
			ID:          uuid.NewString(),
			Name:        c.Name,
			Price:       c.Price,
			Description: c.Description,
			Source:      sourceURL,
			CapturedAt:  now,
		})
	}

	o.records.AppendProducts(batch)
	return batch, nil
}

// snapshot returns the page markup, consulting the snapshot cache first
// when one is configured.
func (o *Orchestrator) snapshot(ctx context.Context, sourceURL string) (string, error) {
	key := cache.Key(sourceURL)
	if o.snapshots != nil {
		if html, hit := o.snapshots.Get(key, o.cacheMaxAge); hit {
			slog.Debug("snapshot cache hit", "url", sourceURL)
			return html, nil
		}
	}

	start := time.Now()
	html, err := o.fetcher.Fetch(ctx, sourceURL)
	if o.collector != nil {
		o.collector.RecordFetch(err == nil, time.Since(start))
	}
	if err != nil {
		return "", err
	}

	if o.snapshots != nil && o.cacheMaxAge > 0 {
		o.snapshots.Set(key, html)
	}
	return html, nil
}

func (o *Orchestrator) recordBatch(kind string, n int) {
	if o.collector != nil {
		o.collector.RecordBatch(kind, n)
	}
}
