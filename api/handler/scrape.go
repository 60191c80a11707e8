package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shelfscout/shelfscout/models"
	"github.com/shelfscout/shelfscout/orchestrator"
)

// ScrapeReviews returns a handler for POST /api/v1/scrape/reviews.
//
// The orchestrator never surfaces a fault, so the response is always 200
// with a possibly empty list; callers that need the failure cause must
// inspect the service logs.
func ScrapeReviews(o *orchestrator.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeReviewsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		reviews := o.ScrapeReviews(c.Request.Context(), req.ProductID, req.URL)
		c.JSON(http.StatusOK, models.ScrapedReviewsResponse{
			Success: true,
			Count:   len(reviews),
			Reviews: reviews,
		})
	}
}

// ScrapeProducts returns a handler for POST /api/v1/scrape/products.
func ScrapeProducts(o *orchestrator.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeProductsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		products := o.ScrapeProducts(c.Request.Context(), req.URL)
		c.JSON(http.StatusOK, models.ScrapedProductsResponse{
			Success:  true,
			Count:    len(products),
			Products: products,
		})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeInvalidInput,
			Message: err.Error(),
		},
	})
}
