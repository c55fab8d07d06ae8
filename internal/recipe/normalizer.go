package recipe

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	bracketSuffix = regexp.MustCompile(`\s*\[\d+\]\s*$`)
	prepPattern   = regexp.MustCompile(`(?i)preparation:\s*(\d+)\s*mins?`)
	cookPattern   = regexp.MustCompile(`(?i)cooking:\s*(\d+)\s*mins?`)
	totalPattern  = regexp.MustCompile(`(?i)total time:\s*(\d+)\s*mins?`)
)

// Normalize converts one raw corpus record into the canonical Recipe schema.
// It never fails: string fields are trimmed and stripped of markup, numeric
// fields are coerced via string-to-float parsing and degrade to 0 when the
// raw value is missing, non-numeric or non-finite. Exclusion of unusable
// records (calories 0, excessive times) is the filter's job, not ours.
func Normalize(raw RawRecord) Recipe {
	fields := make(map[string]any, len(raw))
	for key, value := range raw {
		// Corpus exports decorate some headers with index suffixes like
		// "calories [3]".
		clean := strings.ToLower(strings.TrimSpace(bracketSuffix.ReplaceAllString(key, "")))
		fields[clean] = value
	}

	r := Recipe{
		ID:              textField(fields, "id"),
		Title:           StripMarkup(textField(fields, "title")),
		Calories:        numericField(fields, "calories"),
		Protein:         numericField(fields, "protein"),
		Carbs:           numericField(fields, "carbs"),
		Fat:             numericField(fields, "fat"),
		Fiber:           numericField(fields, "fiber"),
		Sugar:           numericField(fields, "sugar"),
		Saturates:       numericField(fields, "saturates"),
		Salt:            numericField(fields, "salt"),
		IngredientsText: StripMarkup(textField(fields, "ingredients")),
		Servings:        textField(fields, "servings"),
	}
	r.PrepMinutes, r.CookMinutes = ParseTimes(textField(fields, "times"))

	if r.Calories < 0 {
		r.Calories = 0
	}
	return r
}

// ParseTimes extracts preparation and cooking minutes from the free-text time
// description attached to a recipe. "total time" stands in for the cooking
// time when no explicit cooking entry exists. Absent patterns yield 0.
func ParseTimes(timesText string) (prepMinutes, cookMinutes int) {
	if m := prepPattern.FindStringSubmatch(timesText); m != nil {
		prepMinutes, _ = strconv.Atoi(m[1])
	}
	if m := cookPattern.FindStringSubmatch(timesText); m != nil {
		cookMinutes, _ = strconv.Atoi(m[1])
	} else if m := totalPattern.FindStringSubmatch(timesText); m != nil {
		cookMinutes, _ = strconv.Atoi(m[1])
	}
	return prepMinutes, cookMinutes
}

// StripMarkup removes HTML fragments that scraped corpora occasionally leave
// in text fields. Anything that fails to parse is returned as-is.
func StripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func textField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

func numericField(fields map[string]any, key string) float64 {
	var n float64
	switch v := fields[key].(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}
