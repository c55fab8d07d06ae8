package recipe

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Run("CleansDecoratedRecord", func(t *testing.T) {
		raw := RawRecord{
			"id":          "r1",
			" title ":     "  Best <b>Pasta</b>  ",
			"calories":    "450.5",
			"protein":     22.0,
			"carbs [2]":   "38",
			"fat":         "not-a-number",
			"times":       "Preparation: 15 mins | Cooking: 25 mins",
			"ingredients": "<p>2 cups pasta, 1 tin tomatoes</p>",
			"servings":    4.0,
		}

		r := Normalize(raw)

		if r.ID != "r1" {
			t.Errorf("Expected ID 'r1', got '%s'", r.ID)
		}
		if r.Title != "Best Pasta" {
			t.Errorf("Expected title 'Best Pasta', got '%s'", r.Title)
		}
		if r.Calories != 450.5 {
			t.Errorf("Expected calories 450.5, got %v", r.Calories)
		}
		if r.Protein != 22 {
			t.Errorf("Expected protein 22, got %v", r.Protein)
		}
		if r.Carbs != 38 {
			t.Errorf("Expected carbs 38 from decorated key, got %v", r.Carbs)
		}
		if r.Fat != 0 {
			t.Errorf("Expected unparseable fat to degrade to 0, got %v", r.Fat)
		}
		if r.PrepMinutes != 15 || r.CookMinutes != 25 {
			t.Errorf("Expected times 15/25, got %d/%d", r.PrepMinutes, r.CookMinutes)
		}
		if r.IngredientsText != "2 cups pasta, 1 tin tomatoes" {
			t.Errorf("Expected markup-free ingredients, got '%s'", r.IngredientsText)
		}
		if r.Servings != "4" {
			t.Errorf("Expected servings '4', got '%s'", r.Servings)
		}
	})

	t.Run("CaloriesAlwaysFiniteAndNonNegative", func(t *testing.T) {
		records := []RawRecord{
			{},
			{"calories": nil},
			{"calories": ""},
			{"calories": "garbage"},
			{"calories": "-120"},
			{"calories": "NaN"},
			{"calories": "+Inf"},
			{"calories": []any{1, 2}},
		}
		for _, raw := range records {
			r := Normalize(raw)
			if math.IsNaN(r.Calories) || math.IsInf(r.Calories, 0) || r.Calories < 0 {
				t.Errorf("Normalize(%v) produced unusable calories: %v", raw, r.Calories)
			}
		}
	})

	t.Run("NeverPanics", func(t *testing.T) {
		r := Normalize(RawRecord{"times": 12, "title": true, "servings": nil})
		if r.PrepMinutes != 0 || r.CookMinutes != 0 {
			t.Errorf("Expected zero times for non-string times field, got %d/%d", r.PrepMinutes, r.CookMinutes)
		}
	})
}

func TestParseTimes(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantPrep int
		wantCook int
	}{
		{"BothPatterns", "Preparation: 20 mins Cooking: 40 mins", 20, 40},
		{"CaseInsensitive", "PREPARATION: 10 MINS", 10, 0},
		{"SingularMin", "preparation: 5 min cooking: 8 min", 5, 8},
		{"TotalTimeFallsBackToCook", "Total time: 45 mins", 0, 45},
		{"CookingWinsOverTotal", "Cooking: 25 mins Total time: 55 mins", 0, 25},
		{"NothingMatches", "ready in a jiffy", 0, 0},
		{"Empty", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prep, cook := ParseTimes(tt.text)
			if prep != tt.wantPrep {
				t.Errorf("Expected prep %d, got %d", tt.wantPrep, prep)
			}
			if cook != tt.wantCook {
				t.Errorf("Expected cook %d, got %d", tt.wantCook, cook)
			}
		})
	}
}

func TestStripMarkup(t *testing.T) {
	t.Run("PlainTextUntouched", func(t *testing.T) {
		if got := StripMarkup("chicken, rice"); got != "chicken, rice" {
			t.Errorf("Expected plain text unchanged, got '%s'", got)
		}
	})
	t.Run("TagsRemoved", func(t *testing.T) {
		if got := StripMarkup("<p>chicken, <i>rice</i></p>"); got != "chicken, rice" {
			t.Errorf("Expected tags stripped, got '%s'", got)
		}
	})
}
