package usecase

import "strings"

// Default policy lists. Extend later with tobacco / lottery etc.
var (
	defaultRestrictedCategories = []string{"alcohol"}

	defaultRestrictedKeywords = []string{
		"beer", "lager", "cider", "wine", "vodka", "rum", "gin",
		"whisky", "whiskey", "brandy", "alcopop",
	}
)

// Policy holds the catalog-independent compliance rules. A policy match is
// a hard floor: it cannot be overridden by similarity evidence.
type Policy struct {
	restrictedCategories []string
	restrictedKeywords   []string
}

// NewPolicy creates a policy from the configured restricted-category and
// restricted-keyword lists, falling back to the built-in defaults when a
// list is empty.
func NewPolicy(categories, keywords []string) *Policy {
	if len(categories) == 0 {
		categories = defaultRestrictedCategories
	}
	if len(keywords) == 0 {
		keywords = defaultRestrictedKeywords
	}

	p := &Policy{
		restrictedCategories: make([]string, len(categories)),
		restrictedKeywords:   make([]string, len(keywords)),
	}
	for i, c := range categories {
		p.restrictedCategories[i] = strings.ToLower(c)
	}
	for i, k := range keywords {
		p.restrictedKeywords[i] = strings.ToLower(k)
	}
	return p
}

// RequiresAgeVerification reports whether policy mandates age verification
// for a product, from its category (case-insensitive substring match
// against the restricted-category list) or its name (case-insensitive
// substring match against the restricted-keyword list).
func (p *Policy) RequiresAgeVerification(name, category string) bool {
	catLower := strings.ToLower(category)
	for _, restricted := range p.restrictedCategories {
		if strings.Contains(catLower, restricted) {
			return true
		}
	}

	nameLower := strings.ToLower(name)
	for _, keyword := range p.restrictedKeywords {
		if strings.Contains(nameLower, keyword) {
			return true
		}
	}
	return false
}
