package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shelfscout/shelfscout/models"
	"github.com/shelfscout/shelfscout/store"
)

// RegisterProduct returns a handler for POST /api/v1/products.
func RegisterProduct(catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		p := catalog.RegisterProduct(req.Name, req.Description)
		c.JSON(http.StatusCreated, p)
	}
}

// GetProduct returns a handler for GET /api/v1/products/:id.
func GetProduct(catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := catalog.FindProduct(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeNotFound,
					Message: "product not found",
				},
			})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// RegisterUser returns a handler for POST /api/v1/users.
func RegisterUser(catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		u := catalog.RegisterUser(req.Name)
		c.JSON(http.StatusCreated, u)
	}
}

// SubmitFeedback returns a handler for POST /api/v1/feedback.
// A dangling user or product reference maps to 422.
func SubmitFeedback(catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SubmitFeedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		f, err := catalog.SubmitFeedback(req.UserID, req.ProductID, req.Rating, req.Comment)
		if err != nil {
			var scrapeErr *models.ScrapeError
			if errors.As(err, &scrapeErr) && scrapeErr.Code == models.ErrCodeInvalidReference {
				c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
					Success: false,
					Error:   scrapeErr.ToDetail(),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInternal,
					Message: err.Error(),
				},
			})
			return
		}

		c.JSON(http.StatusCreated, f)
	}
}

// FeedbackByProduct returns a handler for GET /api/v1/feedback?product_id=.
func FeedbackByProduct(catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Query("product_id")
		if productID == "" {
			badRequest(c, errMissingParam("product_id"))
			return
		}
		c.JSON(http.StatusOK, catalog.FeedbackByProduct(productID))
	}
}

func errMissingParam(name string) error {
	return fmt.Errorf("missing required query parameter %q", name)
}
