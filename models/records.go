package models

import "time"

// Product is a canonical product registered by a first-party caller.
// Immutable once created; referenced by feedback and scraped reviews.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// User is a first-party account that can submit feedback.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Feedback is a first-party rating submitted by a known user for a
// registered product. Both references are validated at submission time.
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ScrapedReview is a review recovered from a third-party page.
// Created only by the extraction pipeline, never mutated or deleted.
type ScrapedReview struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Source     string    `json:"source"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CapturedAt time.Time `json:"captured_at"`
}

// ScrapedProduct is a raw product listing discovered on a third-party
// page. Not linked to a canonical Product; the price is free text,
// currency and format are not normalized.
type ScrapedProduct struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price,omitempty"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source"`
	CapturedAt  time.Time `json:"captured_at"`
}

// ReviewCandidate is an extractor result before the orchestrator assigns
// identity, product reference and capture timestamp.
type ReviewCandidate struct {
	Rating  int
	Comment string
}

// ProductCandidate is an extractor result before identity assignment.
type ProductCandidate struct {
	Name        string
	Price       string
	Description string
}
