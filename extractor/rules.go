package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

const (
	// SentinelName marks a product candidate whose name could not be
	// resolved. Candidates carrying it are discarded before insertion.
	SentinelName = "unresolved name"

	// DefaultComment is stored when a review carries no comment marker.
	DefaultComment = "no comment"
)

// Review markers are fixed. Review widgets across sites converge on these
// class names; no fallback tier exists for reviews.
var (
	reviewContainerSel = mustParse(".review")
	reviewRatingSel    = mustParse(".rating")
	reviewCommentSel   = mustParse(".comment")
)

// containerKeywords gate the generic product tier: any div/article/section
// whose class attribute contains one of these, case-insensitively, is
// treated as a product container.
var containerKeywords = []string{"product", "item", "card", "tile"}

// Generic field resolution order. First non-empty match wins. The
// build-generated css-* markers are deliberately NOT listed here: they
// belong to site rulesets, so the fallback tier stays the only path for
// sites whose containers the keyword scan happens to match.
var (
	genericNameSelectors  = []string{`[itemprop="name"]`, ".product-name", ".product-title", "h1", "h2", "h3"}
	genericPriceSelectors = []string{`[itemprop="price"]`, ".product-price", ".cost", ".price", ".amount"}
	genericDescSelectors  = []string{`[itemprop="description"]`, ".product-description", ".details", "p"}
)

// SiteRuleset is a dedicated extraction ruleset for one site whose markup
// does not follow the generic class conventions, typically because its
// class names are build-generated. It bypasses the generic selector lists
// entirely.
type SiteRuleset struct {
	// Matches reports whether this ruleset applies to the source identifier.
	Matches func(source string) bool

	Container   goquery.Matcher
	Name        []goquery.Matcher
	Price       []goquery.Matcher
	Description []goquery.Matcher
}

// Registry maps source patterns to site-specific fallback rulesets. The
// fallback tier consults it only after the generic tier accepted zero
// candidates; new sites are added here without touching the generic logic.
type Registry struct {
	sites []SiteRuleset
}

// NewRegistry returns a registry seeded with the built-in site rulesets.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(sephoraRuleset())
	return r
}

// Register appends a site ruleset. Rulesets are tried in registration order.
func (r *Registry) Register(rs SiteRuleset) {
	r.sites = append(r.sites, rs)
}

// Lookup returns the first ruleset matching the source identifier.
func (r *Registry) Lookup(source string) (SiteRuleset, bool) {
	for _, rs := range r.sites {
		if rs.Matches(source) {
			return rs, true
		}
	}
	return SiteRuleset{}, false
}

// sephoraRuleset targets sephora.com product tiles. The generated css-*
// class names defeat the keyword tier, so the tile structure is matched
// directly.
func sephoraRuleset() SiteRuleset {
	return SiteRuleset{
		Matches: func(source string) bool {
			return strings.Contains(source, "sephora.com")
		},
		Container:   cascadia.MustCompile(".ProductTile-content"),
		Name:        compileAll(".css-1ma869u"),
		Price:       compileAll(".css-1f35s9q span"),
		Description: compileAll(".css-l6xvpz"),
	}
}

// compileAll compiles CSS selectors into goquery matchers. Panics on an
// invalid selector; rulesets are package data, so this is a startup-time
// programming error, not an input error.
func compileAll(selectors ...string) []goquery.Matcher {
	ms := make([]goquery.Matcher, 0, len(selectors))
	for _, s := range selectors {
		ms = append(ms, cascadia.MustCompile(s))
	}
	return ms
}

func mustParse(selector string) cascadia.Sel {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		panic(err)
	}
	return sel
}
