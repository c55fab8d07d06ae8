package recipe

// Recipe is the canonical form of a corpus record. Every numeric field is
// guaranteed to hold a finite value; 0 marks data that was missing or
// unparseable in the raw record.
type Recipe struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Calories        float64 `json:"calories"`
	Protein         float64 `json:"protein"`
	Carbs           float64 `json:"carbs"`
	Fat             float64 `json:"fat"`
	Fiber           float64 `json:"fiber"`
	Sugar           float64 `json:"sugar"`
	Saturates       float64 `json:"saturates"`
	Salt            float64 `json:"salt"`
	PrepMinutes     int     `json:"prep_minutes"`
	CookMinutes     int     `json:"cook_minutes"`
	IngredientsText string  `json:"ingredients_text"`
	Servings        string  `json:"servings"`
}

// RawRecord is a single uncleaned recipe row exactly as fetched by the
// surrounding system: decorated key names, stray whitespace, numbers stored
// as strings.
type RawRecord map[string]any
