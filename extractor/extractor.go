package extractor

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/shelfscout/shelfscout/models"
)

// Extractor applies layered selector heuristics to markup snapshots to
// recover candidate records. It is stateless after construction and safe
// for concurrent use.
type Extractor struct {
	registry *Registry

	genericName  []goquery.Matcher
	genericPrice []goquery.Matcher
	genericDesc  []goquery.Matcher
}

// New builds an Extractor with precompiled generic selectors. A nil
// registry gets the built-in site rulesets.
func New(registry *Registry) *Extractor {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Extractor{
		registry:     registry,
		genericName:  compileAll(genericNameSelectors...),
		genericPrice: compileAll(genericPriceSelectors...),
		genericDesc:  compileAll(genericDescSelectors...),
	}
}

// ExtractReviews scans the snapshot for review containers. A rating that
// is absent or unparsable becomes 0 and a missing comment becomes
// DefaultComment. An absent container marker yields an empty slice; zero
// matches is a valid outcome, not an error.
func (e *Extractor) ExtractReviews(rawHTML string) []models.ReviewCandidate {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	out := []models.ReviewCandidate{}
	for _, node := range cascadia.QueryAll(doc, reviewContainerSel) {
		rating := 0
		if n := cascadia.Query(node, reviewRatingSel); n != nil {
			if v, convErr := strconv.Atoi(strings.TrimSpace(textContent(n))); convErr == nil {
				rating = v
			}
		}

		comment := DefaultComment
		if n := cascadia.Query(node, reviewCommentSel); n != nil {
			if txt := strings.TrimSpace(textContent(n)); txt != "" {
				comment = txt
			}
		}

		out = append(out, models.ReviewCandidate{Rating: rating, Comment: comment})
	}
	return out
}

// ExtractProducts applies the two-tier product heuristic. The generic
// keyword tier runs first; the site-specific fallback tier runs only when
// the generic tier accepted zero candidates AND the source matches a
// registered site pattern. Tier 2 never runs after a tier-1 hit.
func (e *Extractor) ExtractProducts(rawHTML, source string) []models.ProductCandidate {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	products := e.genericTier(doc)
	if len(products) > 0 {
		return products
	}

	site, ok := e.registry.Lookup(source)
	if !ok {
		return products
	}
	return e.siteTier(doc, site)
}

// genericTier scans container-like elements whose class attribute carries
// one of the product keywords.
func (e *Extractor) genericTier(doc *goquery.Document) []models.ProductCandidate {
	out := []models.ProductCandidate{}
	doc.Find("div, article, section").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		if !hasContainerKeyword(class) {
			return
		}
		if c, ok := resolveCandidate(s, e.genericName, e.genericPrice, e.genericDesc); ok {
			out = append(out, c)
		}
	})
	return out
}

// siteTier scans the site ruleset's dedicated container marker, bypassing
// the generic selector lists entirely.
func (e *Extractor) siteTier(doc *goquery.Document, site SiteRuleset) []models.ProductCandidate {
	out := []models.ProductCandidate{}
	doc.FindMatcher(site.Container).Each(func(_ int, s *goquery.Selection) {
		if c, ok := resolveCandidate(s, site.Name, site.Price, site.Description); ok {
			out = append(out, c)
		}
	})
	return out
}

// resolveCandidate fills the three fields in priority order and rejects
// any candidate whose name stayed at the sentinel: at least one
// identifying field must be non-trivial.
func resolveCandidate(s *goquery.Selection, name, price, desc []goquery.Matcher) (models.ProductCandidate, bool) {
	c := models.ProductCandidate{
		Name:        firstText(s, name, SentinelName),
		Price:       firstText(s, price, ""),
		Description: firstText(s, desc, ""),
	}
	if c.Name == SentinelName {
		return models.ProductCandidate{}, false
	}
	return c, true
}

// firstText returns the trimmed text of the first matcher with a
// non-empty match, or the fallback.
func firstText(s *goquery.Selection, matchers []goquery.Matcher, fallback string) string {
	for _, m := range matchers {
		if txt := strings.TrimSpace(s.FindMatcher(m).First().Text()); txt != "" {
			return txt
		}
	}
	return fallback
}

func hasContainerKeyword(class string) bool {
	if class == "" {
		return false
	}
	lower := strings.ToLower(class)
	for _, kw := range containerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// textContent concatenates all text nodes beneath n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
