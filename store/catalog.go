package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shelfscout/shelfscout/models"
)

// Catalog holds the first-party graph: canonical products, users and the
// feedback linking them. Entities are created once and never mutated;
// feedback references are validated at submission time. Safe for
// concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]models.Product
	users    map[string]models.User
	feedback []models.Feedback
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		products: make(map[string]models.Product),
		users:    make(map[string]models.User),
	}
}

// RegisterProduct creates a canonical product and returns it with a fresh id.
func (c *Catalog) RegisterProduct(name, description string) models.Product {
	p := models.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
	return p
}

// RegisterUser creates a user and returns it with a fresh id.
func (c *Catalog) RegisterUser(name string) models.User {
	u := models.User{
		ID:   uuid.NewString(),
		Name: name,
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[u.ID] = u
	return u
}

// FindProduct looks up a canonical product by id.
func (c *Catalog) FindProduct(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	return p, ok
}

// FindUser looks up a user by id.
func (c *Catalog) FindUser(id string) (models.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[id]
	return u, ok
}

// SubmitFeedback records first-party feedback. Unlike scraped reviews,
// both references must exist; a dangling id surfaces as INVALID_REFERENCE.
func (c *Catalog) SubmitFeedback(userID, productID string, rating int, comment string) (models.Feedback, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.users[userID]; !ok {
		return models.Feedback{}, models.NewInvalidReferenceError("user", userID)
	}
	if _, ok := c.products[productID]; !ok {
		return models.Feedback{}, models.NewInvalidReferenceError("product", productID)
	}

	f := models.Feedback{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	c.feedback = append(c.feedback, f)
	return f, nil
}

// FeedbackByProduct returns all feedback for the product in insertion order.
func (c *Catalog) FeedbackByProduct(productID string) []models.Feedback {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []models.Feedback{}
	for _, f := range c.feedback {
		if f.ProductID == productID {
			out = append(out, f)
		}
	}
	return out
}
