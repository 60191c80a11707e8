package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shelfscout/shelfscout/models"
	"github.com/shelfscout/shelfscout/store"
)

// ReviewsByProduct returns a handler for GET /api/v1/reviews?product_id=.
func ReviewsByProduct(records *store.ExtractionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Query("product_id")
		if productID == "" {
			badRequest(c, errMissingParam("product_id"))
			return
		}

		reviews := records.ReviewsByProduct(productID)
		c.JSON(http.StatusOK, models.ScrapedReviewsResponse{
			Success: true,
			Count:   len(reviews),
			Reviews: reviews,
		})
	}
}

// ProductsBySource returns a handler for GET /api/v1/products/scraped?source=.
func ProductsBySource(records *store.ExtractionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		source := c.Query("source")
		if source == "" {
			badRequest(c, errMissingParam("source"))
			return
		}

		products := records.ProductsBySource(source)
		c.JSON(http.StatusOK, models.ScrapedProductsResponse{
			Success:  true,
			Count:    len(products),
			Products: products,
		})
	}
}
