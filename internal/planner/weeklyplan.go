package planner

import (
	"time"

	"meal-planner/internal/biometrics"
	"meal-planner/internal/recipe"
)

// FallbackTier records which rung of the selection ladder produced a meal.
type FallbackTier int

const (
	// TierStrict is a strict-tolerance pick with weekly uniqueness enforced.
	TierStrict FallbackTier = iota
	// TierRelaxed doubles the calorie tolerance, uniqueness still enforced.
	TierRelaxed
	// TierRepeat waives uniqueness; the chosen id is not recorded as used.
	TierRepeat
	// TierCalorieOnly ignores macro scoring and picks by calorie proximity.
	TierCalorieOnly
)

func (t FallbackTier) String() string {
	switch t {
	case TierStrict:
		return "strict"
	case TierRelaxed:
		return "relaxed"
	case TierRepeat:
		return "repeat"
	case TierCalorieOnly:
		return "calorie-only"
	default:
		return "unknown"
	}
}

// DayMeals holds the selected recipe per slot for one day. A nil entry is a
// slot every fallback tier failed to fill.
type DayMeals struct {
	Breakfast *recipe.Recipe `json:"breakfast"`
	Lunch     *recipe.Recipe `json:"lunch"`
	Dinner    *recipe.Recipe `json:"dinner"`
	Snack     *recipe.Recipe `json:"snack"`
}

// Meal returns the recipe selected for the slot.
func (d DayMeals) Meal(slot Slot) *recipe.Recipe {
	switch slot {
	case SlotBreakfast:
		return d.Breakfast
	case SlotLunch:
		return d.Lunch
	case SlotDinner:
		return d.Dinner
	case SlotSnack:
		return d.Snack
	default:
		return nil
	}
}

// DayTotals compares what the day's meals achieve against its target.
type DayTotals struct {
	TargetCalories   int     `json:"target_calories"`
	AchievedCalories float64 `json:"achieved_calories"`
	TargetProtein    int     `json:"target_protein"`
	AchievedProtein  float64 `json:"achieved_protein"`
	TargetCarbs      int     `json:"target_carbs"`
	AchievedCarbs    float64 `json:"achieved_carbs"`
	TargetFat        int     `json:"target_fat"`
	AchievedFat      float64 `json:"achieved_fat"`
}

// WeeklyPlan is one generated 7-day meal plan. Deactivating any previously
// active plan for the same user is the caller's concern.
type WeeklyPlan struct {
	ID            string                           `json:"id"`
	DailyTargets  []biometrics.DailyTarget         `json:"daily_targets"`
	Days          map[string]DayMeals              `json:"days"`
	Totals        map[string]DayTotals             `json:"totals"`
	FallbackTiers map[string]map[Slot]FallbackTier `json:"fallback_tiers"`
	UsedRecipeIDs map[string]struct{}              `json:"-"`
	StartDate     time.Time                        `json:"start_date"`
	EndDate       time.Time                        `json:"end_date"`
	Active        bool                             `json:"active"`
}

// PlanStats summarizes a plan for observability: how often the ladder had to
// degrade and how many slots stayed empty.
type PlanStats struct {
	NullSlots   int
	Relaxed     int
	Repeats     int
	CalorieOnly int
}

// Stats walks the plan's days in canonical order and tallies degradations.
func (p *WeeklyPlan) Stats() PlanStats {
	var stats PlanStats
	for _, day := range biometrics.Days {
		meals := p.Days[day]
		tiers := p.FallbackTiers[day]
		for _, slot := range Slots {
			if meals.Meal(slot) == nil {
				stats.NullSlots++
				continue
			}
			switch tiers[slot] {
			case TierRelaxed:
				stats.Relaxed++
			case TierRepeat:
				stats.Repeats++
			case TierCalorieOnly:
				stats.CalorieOnly++
			}
		}
	}
	return stats
}
