package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/excavacionesmoreno/quote-backend/pkg/enums"
)

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	Category    *enums.ProductCategory
	PopularOnly bool
	Query       string
}

// List returns the products matching every set filter, in catalog order.
func (c *Catalog) List(filters ListFilters) []Product {
	needle := Fold(filters.Query)
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if filters.Category != nil && p.Category != *filters.Category {
			continue
		}
		if filters.PopularOnly && !p.Popular {
			continue
		}
		if needle != "" && !matches(p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p Product, needle string) bool {
	return strings.Contains(Fold(p.Name), needle) ||
		strings.Contains(Fold(p.Description), needle) ||
		strings.Contains(Fold(p.ID), needle)
}

// Fold lowercases s and strips diacritics so "Gravín" and "gravin" compare equal.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
