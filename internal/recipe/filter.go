package recipe

import "strings"

// Filter removes every recipe whose ingredients mention, case-insensitively,
// any of the user's allergy or dislike terms as a substring. The check is
// pure; filtering an already-filtered pool with the same terms returns an
// equal pool.
func Filter(recipes []Recipe, allergies, dislikes []string) []Recipe {
	terms := make([]string, 0, len(allergies)+len(dislikes))
	for _, t := range allergies {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			terms = append(terms, t)
		}
	}
	for _, t := range dislikes {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return recipes
	}

	kept := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		ingredients := strings.ToLower(r.IngredientsText)
		excluded := false
		for _, term := range terms {
			if strings.Contains(ingredients, term) {
				excluded = true
				break
			}
		}
		if !excluded {
			kept = append(kept, r)
		}
	}
	return kept
}

// TimeLimits bounds how long a selectable recipe may take to prepare and cook.
type TimeLimits struct {
	MaxPrepMinutes int
	MaxCookMinutes int
}

// DefaultTimeLimits returns the standard weeknight limits.
func DefaultTimeLimits() TimeLimits {
	return TimeLimits{MaxPrepMinutes: 30, MaxCookMinutes: 60}
}

// Valid reports whether the recipe fits within the time limits.
func (l TimeLimits) Valid(r Recipe) bool {
	return r.PrepMinutes <= l.MaxPrepMinutes && r.CookMinutes <= l.MaxCookMinutes
}
