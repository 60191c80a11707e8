package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shelfscout/shelfscout/extractor"
	"github.com/shelfscout/shelfscout/models"
	"github.com/shelfscout/shelfscout/orchestrator"
	"github.com/shelfscout/shelfscout/store"
)

type stubFetcher struct {
	html string
}

func (f *stubFetcher) Fetch(context.Context, string) (string, error) {
	return f.html, nil
}

func testRouter(html string) (*gin.Engine, *store.ExtractionStore, *store.Catalog) {
	gin.SetMode(gin.TestMode)

	records := store.NewExtractionStore()
	catalog := store.NewCatalog()
	o := orchestrator.New(&stubFetcher{html: html}, extractor.New(nil), records, catalog)

	r := gin.New()
	r.POST("/scrape/reviews", ScrapeReviews(o))
	r.POST("/feedback", SubmitFeedback(catalog))
	r.GET("/reviews", ReviewsByProduct(records))
	return r, records, catalog
}

func TestScrapeReviewsHandler(t *testing.T) {
	reviewHTML := `<div class="review"><span class="rating">4</span><p class="comment">Nice</p></div>`
	r, _, catalog := testRouter(reviewHTML)
	p := catalog.RegisterProduct("Lipstick", "")

	body := `{"product_id":"` + p.ID + `","url":"https://shop.example.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scrape/reviews", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.ScrapedReviewsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success || resp.Count != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Reviews[0].Rating != 4 || resp.Reviews[0].Comment != "Nice" {
		t.Errorf("unexpected review: %+v", resp.Reviews[0])
	}
}

func TestScrapeReviewsHandler_InvalidBody(t *testing.T) {
	r, _, _ := testRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scrape/reviews", strings.NewReader(`{"url":""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestReviewsQueryHandler_MissingParam(t *testing.T) {
	r, _, _ := testRouter("")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reviews", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSubmitFeedbackHandler_DanglingReference(t *testing.T) {
	r, _, catalog := testRouter("")
	u := catalog.RegisterUser("ana")

	body := `{"user_id":"` + u.ID + `","product_id":"ghost","rating":3}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeInvalidReference {
		t.Errorf("unexpected error payload: %+v", resp.Error)
	}
}
