package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	pool := []Recipe{
		{ID: "1", Title: "Peanut Stir Fry", IngredientsText: "noodles, Roasted Peanuts, soy sauce"},
		{ID: "2", Title: "Tomato Soup", IngredientsText: "tomatoes, cream, basil"},
		{ID: "3", Title: "Mushroom Risotto", IngredientsText: "rice, mushrooms, parmesan"},
	}

	t.Run("ExcludesAllergensCaseInsensitively", func(t *testing.T) {
		got := Filter(pool, []string{"peanut"}, nil)
		assert.Len(t, got, 2)
		for _, r := range got {
			assert.NotEqual(t, "1", r.ID)
		}
	})

	t.Run("ExcludesDislikes", func(t *testing.T) {
		got := Filter(pool, nil, []string{"Mushroom"})
		assert.Len(t, got, 2)
	})

	t.Run("BlankTermsIgnored", func(t *testing.T) {
		got := Filter(pool, []string{"  "}, []string{""})
		assert.Equal(t, pool, got)
	})

	t.Run("Idempotent", func(t *testing.T) {
		once := Filter(pool, []string{"peanut"}, []string{"cream"})
		twice := Filter(once, []string{"peanut"}, []string{"cream"})
		assert.Equal(t, once, twice)
	})
}

func TestTimeLimits(t *testing.T) {
	limits := DefaultTimeLimits()

	assert.True(t, limits.Valid(Recipe{PrepMinutes: 30, CookMinutes: 60}))
	assert.True(t, limits.Valid(Recipe{}))
	assert.False(t, limits.Valid(Recipe{PrepMinutes: 31, CookMinutes: 10}))
	assert.False(t, limits.Valid(Recipe{PrepMinutes: 10, CookMinutes: 61}))
}
