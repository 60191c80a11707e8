package store

import (
	"sync"

	"github.com/shelfscout/shelfscout/models"
)

// ExtractionStore is the append-only collection of scraped records.
// Appends are serialized so a batch is never interleaved with another
// writer's; there is no update or remove operation and repeated scrapes
// of the same URL accumulate as distinct records. Safe for concurrent use.
type ExtractionStore struct {
	mu       sync.RWMutex
	reviews  []models.ScrapedReview
	products []models.ScrapedProduct
}

// NewExtractionStore returns an empty store.
func NewExtractionStore() *ExtractionStore {
	return &ExtractionStore{}
}

// AppendReviews adds a batch of reviews in extraction order.
func (s *ExtractionStore) AppendReviews(batch []models.ScrapedReview) {
	if len(batch) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append(s.reviews, batch...)
}

// AppendProducts adds a batch of scraped products in extraction order.
func (s *ExtractionStore) AppendProducts(batch []models.ScrapedProduct) {
	if len(batch) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, batch...)
}

// ReviewsByProduct returns all reviews tagged with the product id, in
// insertion order. No match yields an empty slice, not an error.
func (s *ExtractionStore) ReviewsByProduct(productID string) []models.ScrapedReview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.ScrapedReview{}
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out
}

// ProductsBySource returns all scraped products with the given source
// identifier, in insertion order.
func (s *ExtractionStore) ProductsBySource(source string) []models.ScrapedProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.ScrapedProduct{}
	for _, p := range s.products {
		if p.Source == source {
			out = append(out, p)
		}
	}
	return out
}

// Counts reports the current number of stored reviews and products.
func (s *ExtractionStore) Counts() (reviews, products int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reviews), len(s.products)
}
