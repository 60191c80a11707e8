package extractor

import (
	"strings"
	"testing"
)

func TestExtractReviews_TwoReviews(t *testing.T) {
	rawHTML := `<html><body>
		<div class="review"><span class="rating">5</span><p class="comment">Great</p></div>
		<div class="review"><span class="rating">3</span><p class="comment">Ok</p></div>
	</body></html>`

	got := New(nil).ExtractReviews(rawHTML)
	if len(got) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(got))
	}
	if got[0].Rating != 5 || got[0].Comment != "Great" {
		t.Errorf("review[0] = %+v, want rating 5, comment \"Great\"", got[0])
	}
	if got[1].Rating != 3 || got[1].Comment != "Ok" {
		t.Errorf("review[1] = %+v, want rating 3, comment \"Ok\"", got[1])
	}
}

func TestExtractReviews_MissingMarkers(t *testing.T) {
	rawHTML := `<html><body>
		<div class="review"><span class="rating">not-a-number</span></div>
		<div class="review"><p class="comment">   </p></div>
	</body></html>`

	got := New(nil).ExtractReviews(rawHTML)
	if len(got) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(got))
	}
	if got[0].Rating != 0 {
		t.Errorf("unparsable rating should default to 0, got %d", got[0].Rating)
	}
	if got[0].Comment != DefaultComment {
		t.Errorf("missing comment should default to %q, got %q", DefaultComment, got[0].Comment)
	}
	if got[1].Comment != DefaultComment {
		t.Errorf("blank comment should default to %q, got %q", DefaultComment, got[1].Comment)
	}
}

func TestExtractReviews_NoContainers(t *testing.T) {
	got := New(nil).ExtractReviews(`<html><body><p>nothing to see</p></body></html>`)
	if len(got) != 0 {
		t.Errorf("expected no reviews, got %d", len(got))
	}
}

func TestExtractProducts_GenericTier(t *testing.T) {
	rawHTML := `<html><body>
		<div class="product-card"><h2>Lipstick</h2></div>
	</body></html>`

	got := New(nil).ExtractProducts(rawHTML, "https://shop.example.com")
	if len(got) != 1 {
		t.Fatalf("expected 1 product, got %d", len(got))
	}
	if got[0].Name != "Lipstick" {
		t.Errorf("name = %q, want \"Lipstick\"", got[0].Name)
	}
	if got[0].Price != "" {
		t.Errorf("price should be empty without a price marker, got %q", got[0].Price)
	}
}

func TestExtractProducts_FieldPriority(t *testing.T) {
	rawHTML := `<html><body>
		<section class="item-listing">
			<span class="product-name">Night Cream</span>
			<h2>Should lose to product-name</h2>
			<span class="price">$24.99</span>
			<p>Rich moisturizer for dry skin.</p>
		</section>
	</body></html>`

	got := New(nil).ExtractProducts(rawHTML, "https://shop.example.com")
	if len(got) != 1 {
		t.Fatalf("expected 1 product, got %d", len(got))
	}
	if got[0].Name != "Night Cream" {
		t.Errorf("name = %q, want the higher-priority .product-name text", got[0].Name)
	}
	if got[0].Price != "$24.99" {
		t.Errorf("price = %q, want \"$24.99\"", got[0].Price)
	}
	if got[0].Description != "Rich moisturizer for dry skin." {
		t.Errorf("description = %q", got[0].Description)
	}
}

func TestExtractProducts_SentinelNameRejected(t *testing.T) {
	// Container keyword matches but no name marker resolves.
	rawHTML := `<html><body>
		<div class="product-tile"><span class="price">$10</span></div>
	</body></html>`

	got := New(nil).ExtractProducts(rawHTML, "https://shop.example.com")
	if len(got) != 0 {
		t.Errorf("nameless candidate should be discarded, got %d products", len(got))
	}
}

func TestExtractProducts_NoContainers(t *testing.T) {
	got := New(nil).ExtractProducts(`<html><body><p>empty page</p></body></html>`, "https://shop.example.com")
	if len(got) != 0 {
		t.Errorf("expected no products, got %d", len(got))
	}
}

func TestExtractProducts_SiteFallbackTier(t *testing.T) {
	rawHTML := `<html><body>
		<div class="ProductTile-content">
			<span class="css-1ma869u">Dior Serum</span>
			<span class="css-1f35s9q"><span>$89.00</span></span>
			<div class="css-l6xvpz">Anti-aging serum</div>
		</div>
	</body></html>`

	got := New(nil).ExtractProducts(rawHTML, "https://www.sephora.com/shop/serum")
	if len(got) != 1 {
		t.Fatalf("expected 1 product from the site tier, got %d", len(got))
	}
	if got[0].Name != "Dior Serum" {
		t.Errorf("name = %q, want \"Dior Serum\"", got[0].Name)
	}
	if got[0].Price != "$89.00" {
		t.Errorf("price = %q, want \"$89.00\"", got[0].Price)
	}
	if got[0].Description != "Anti-aging serum" {
		t.Errorf("description = %q, want \"Anti-aging serum\"", got[0].Description)
	}
}

func TestExtractProducts_SiteTierGatedBySource(t *testing.T) {
	// Same tile markup, but the source is not a registered site: the
	// fallback tier must not run even though the generic tier found nothing.
	rawHTML := `<html><body>
		<div class="ProductTile-content"><span class="css-1ma869u">Dior Serum</span></div>
	</body></html>`

	got := New(nil).ExtractProducts(rawHTML, "https://www.example.com/shop/serum")
	if len(got) != 0 {
		t.Errorf("site tier ran for an unregistered source, got %d products", len(got))
	}
}

func TestExtractProducts_SiteTierSkippedAfterGenericHit(t *testing.T) {
	// A generic hit must suppress the site tier even for a matching source.
	rawHTML := `<html><body>
		<div class="product-card"><h2>Generic Find</h2></div>
		<div class="ProductTile-content"><span class="css-1ma869u">Tile Find</span></div>
	</body></html>`

	got := New(nil).ExtractProducts(rawHTML, "https://www.sephora.com/shop")
	for _, p := range got {
		if p.Name == "Tile Find" {
			t.Error("site tier produced a record despite a generic-tier hit")
		}
	}
	found := false
	for _, p := range got {
		if p.Name == "Generic Find" {
			found = true
		}
	}
	if !found {
		t.Error("generic-tier record missing")
	}
}

func TestRegistry_CustomSite(t *testing.T) {
	r := NewRegistry()
	r.Register(SiteRuleset{
		Matches:   func(source string) bool { return strings.Contains(source, "shop.test") },
		Container: compileAll(".tile-x")[0],
		Name:      compileAll(".n"),
	})

	if _, ok := r.Lookup("https://shop.test/page"); !ok {
		t.Error("registered site not found")
	}
	if _, ok := r.Lookup("https://other.test/page"); ok {
		t.Error("lookup matched an unregistered source")
	}
}
