package planner

import (
	"math"

	"meal-planner/internal/recipe"
)

// Slot is one meal position within a single day of the plan.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
	SlotSnack     Slot = "snack"
)

// Slots lists the meal slots in selection order.
var Slots = [4]Slot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

// SlotTarget is the calorie and macro budget for one meal slot.
type SlotTarget struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// Scoring penalty thresholds per serving.
const (
	sugarThreshold     = 15  // grams
	saturatesThreshold = 10  // grams
	fiberBonusMinimum  = 5   // grams
	saltThreshold      = 800 // milligrams

	highActivityCalories = 500
)

// Selector scores candidate recipes against an adjusted slot target and picks
// the best match deterministically.
type Selector struct {
	limits    recipe.TimeLimits
	tolerance float64
}

// NewSelector creates a Selector. tolerance is the base calorie deviation
// allowed around a slot target; a relaxed selection doubles it.
func NewSelector(limits recipe.TimeLimits, tolerance float64) *Selector {
	if tolerance <= 0 {
		tolerance = 50
	}
	return &Selector{limits: limits, tolerance: tolerance}
}

// SelectMeal picks the highest-scoring recipe for the slot, or nil when no
// candidate fits. Candidates must fall inside the calorie tolerance band,
// pass the time limits and not appear in used. Ties resolve by recipe id
// ascending so output never depends on pool order.
func (s *Selector) SelectMeal(pool []recipe.Recipe, target SlotTarget, used map[string]struct{}, slot Slot, activityCalories float64, relax bool) *recipe.Recipe {
	adjusted := adjustTargetsForSlot(target, slot, activityCalories)

	tolerance := s.tolerance
	if relax {
		tolerance *= 2
	}

	var best *recipe.Recipe
	var bestScore float64
	for i := range pool {
		r := &pool[i]
		if math.Abs(r.Calories-target.Calories) > tolerance {
			continue
		}
		if !s.limits.Valid(*r) {
			continue
		}
		if used != nil {
			if _, taken := used[r.ID]; taken {
				continue
			}
		}
		score := score(*r, adjusted)
		if best == nil || score > bestScore || (score == bestScore && r.ID < best.ID) {
			best = r
			bestScore = score
		}
	}
	return best
}

// ClosestByCalories is the last-resort selection: macro scoring and weekly
// uniqueness are ignored and the valid recipe whose calories lie numerically
// closest to the target wins. Recipes with 0 calories carry no usable data
// and are never returned.
func (s *Selector) ClosestByCalories(pool []recipe.Recipe, targetCalories float64) *recipe.Recipe {
	var best *recipe.Recipe
	var bestDelta float64
	for i := range pool {
		r := &pool[i]
		if r.Calories <= 0 || !s.limits.Valid(*r) {
			continue
		}
		delta := math.Abs(r.Calories - targetCalories)
		if best == nil || delta < bestDelta || (delta == bestDelta && r.ID < best.ID) {
			best = r
			bestDelta = delta
		}
	}
	return best
}

// adjustTargetsForSlot reshapes the macro budget for the slot's role in the
// day: carb-forward breakfasts, protein-forward dinners and snacks, an extra
// carb allowance on heavy training days. Lunch keeps the plain split.
func adjustTargetsForSlot(target SlotTarget, slot Slot, activityCalories float64) SlotTarget {
	switch slot {
	case SlotBreakfast:
		target.Carbs *= 1.1
		target.Protein *= 0.9
	case SlotDinner:
		target.Protein *= 1.15
		target.Carbs *= 0.9
	case SlotSnack:
		target.Protein *= 1.2
	}
	if activityCalories > highActivityCalories {
		target.Carbs *= 1.15
	}
	return target
}

// score rates a recipe against the adjusted slot target. The base score falls
// linearly with the mean relative macro deviation; sugar, saturated fat and
// salt excesses accumulate penalties while fiber earns a bonus. The result is
// floored at 0.
func score(r recipe.Recipe, target SlotTarget) float64 {
	var devSum float64
	var devCount int
	for _, pair := range [3][2]float64{
		{r.Protein, target.Protein},
		{r.Carbs, target.Carbs},
		{r.Fat, target.Fat},
	} {
		if pair[1] > 0 {
			devSum += math.Abs(pair[0]-pair[1]) / pair[1]
			devCount++
		}
	}
	var avgDeviation float64
	if devCount > 0 {
		avgDeviation = devSum / float64(devCount)
	}
	base := 100 * (1 - math.Min(avgDeviation, 1))

	var penalties float64
	if r.Sugar > sugarThreshold {
		penalties += 0.1 * (r.Sugar - sugarThreshold)
	}
	if r.Saturates > saturatesThreshold {
		penalties += 0.1 * (r.Saturates - saturatesThreshold)
	}
	if r.Fiber >= fiberBonusMinimum {
		penalties -= 0.05 * r.Fiber
	}
	if r.Salt > saltThreshold {
		penalties += 0.0001 * (r.Salt - saltThreshold)
	}

	return math.Max(0, base-penalties*10)
}
