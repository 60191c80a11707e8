package models

// ScrapedReviewsResponse is the body for review scrape and query endpoints.
type ScrapedReviewsResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Reviews []ScrapedReview `json:"reviews"`
	Error   *ErrorDetail    `json:"error,omitempty"`
}

// ScrapedProductsResponse is the body for product scrape and query endpoints.
type ScrapedProductsResponse struct {
	Success  bool             `json:"success"`
	Count    int              `json:"count"`
	Products []ScrapedProduct `json:"products"`
	Error    *ErrorDetail     `json:"error,omitempty"`
}

// ErrorResponse is the generic failure body for mutation endpoints.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the body for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
