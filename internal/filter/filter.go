// Package filter implements the catalog filter predicate. Matches is a
// pure function over a product and a filter set; an empty filter set
// matches every product.
package filter

import (
	"strings"

	"closetloop/internal/domain"
)

// FilterSet holds the selected constraints. Zero values mean "no
// constraint": empty slices, empty strings, and PriceMax == 0 all pass.
type FilterSet struct {
	SearchText string
	Gender     string
	Sizes      []string
	Colors     []string
	Durations  []string
	PriceMin   float64
	PriceMax   float64
	Occasions  []string
}

// Empty reports whether the set constrains nothing.
func (f FilterSet) Empty() bool {
	return f.SearchText == "" && f.Gender == "" && len(f.Sizes) == 0 &&
		len(f.Colors) == 0 && len(f.Durations) == 0 && len(f.Occasions) == 0 &&
		f.PriceMin <= 0 && f.PriceMax <= 0
}

// Duration bucket labels. A product matches if its day count falls in
// any selected bucket.
const (
	DurationWeek      = "7 Days"
	DurationFortnight = "15 Days"
	DurationMonth     = "1 month"
	DurationSixWeeks  = "1.5 month"
	DurationTwoMonths = "2 month"
)

// occasionKeywords is a closed table mapping each occasion to the name
// categories it covers. Not user data.
var occasionKeywords = map[string][]string{
	"Wedding Season": {"lehenga", "saree", "sherwani", "gown"},
	"Corporate":      {"suit", "blazer", "formal", "shirt"},
	"Weekend Casual": {"denim", "casual", "dress", "t-shirt"},
	"Party":          {"party", "gown", "tuxedo"},
	"Festival":       {"kurta", "panjabi", "festival"},
}

// Matches evaluates the filter set against a product. Categories are
// ANDed; values within a category are ORed. Total: never errors.
func Matches(p domain.Product, f FilterSet) bool {
	if f.SearchText != "" {
		q := strings.ToLower(f.SearchText)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Color), q) &&
			!strings.Contains(strings.ToLower(p.Condition), q) {
			return false
		}
	}

	if f.Gender != "" && p.Gender != "" && !strings.EqualFold(f.Gender, p.Gender) {
		return false
	}

	if len(f.Sizes) > 0 && !containsFold(f.Sizes, p.Size) {
		return false
	}

	if len(f.Colors) > 0 {
		hit := false
		for _, c := range f.Colors {
			// Substring match supports compound color names ("Navy Blue").
			if strings.Contains(strings.ToLower(p.Color), strings.ToLower(c)) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	// A product without a price is never filtered out on price.
	if p.Price.Valid {
		if p.Price.Float64 < f.PriceMin {
			return false
		}
		if f.PriceMax > 0 && p.Price.Float64 > f.PriceMax {
			return false
		}
	}

	if len(f.Durations) > 0 && p.DurationDays > 0 {
		hit := false
		for _, d := range f.Durations {
			if inDurationBucket(d, p.DurationDays) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if len(f.Occasions) > 0 {
		hit := false
		lower := strings.ToLower(p.Name)
		for _, occ := range f.Occasions {
			for _, kw := range occasionKeywords[occ] {
				if strings.Contains(lower, kw) {
					hit = true
					break
				}
			}
			if hit {
				break
			}
		}
		if !hit {
			return false
		}
	}

	return true
}

func inDurationBucket(bucket string, days int) bool {
	switch bucket {
	case DurationWeek:
		return days <= 7
	case DurationFortnight:
		return days >= 8 && days <= 15
	case DurationMonth:
		return days >= 16 && days <= 30
	case DurationSixWeeks:
		return days >= 31 && days <= 45
	case DurationTwoMonths:
		return days >= 46 && days <= 60
	}
	return false
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
