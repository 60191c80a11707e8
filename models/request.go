package models

// RegisterProductRequest is the payload for POST /api/v1/products.
type RegisterProductRequest struct {
	// Name is the display name of the product. Required.
	Name string `json:"name" binding:"required"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`
}

// RegisterUserRequest is the payload for POST /api/v1/users.
type RegisterUserRequest struct {
	Name string `json:"name" binding:"required"`
}

// SubmitFeedbackRequest is the payload for POST /api/v1/feedback.
// Both ids must reference existing entities.
type SubmitFeedbackRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"min=0,max=5"`
	Comment   string `json:"comment,omitempty"`
}

// ScrapeReviewsRequest is the payload for POST /api/v1/scrape/reviews.
type ScrapeReviewsRequest struct {
	// ProductID tags every extracted review with a canonical product.
	ProductID string `json:"product_id" binding:"required"`

	// URL is the target page to scrape. Required.
	URL string `json:"url" binding:"required"`
}

// ScrapeProductsRequest is the payload for POST /api/v1/scrape/products.
type ScrapeProductsRequest struct {
	// URL is the target page to scrape. Required.
	URL string `json:"url" binding:"required"`
}
