package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meal-planner/internal/biometrics"
	"meal-planner/internal/recipe"
)

// slotFractions splits a day's calorie and macro budget across its slots.
// Applied identically to calories and to each macro gram count.
var slotFractions = map[Slot]float64{
	SlotBreakfast: 0.25,
	SlotLunch:     0.30,
	SlotDinner:    0.30,
	SlotSnack:     0.15,
}

// ErrIncompletePlan is returned instead of a partial plan when the assembler
// is configured to require all 28 slots filled.
var ErrIncompletePlan = errors.New("plan has unfilled slots")

// Pools holds the normalized, allergy-filtered candidate recipes per meal
// type. The same pool serves every day of the week.
type Pools struct {
	Breakfast []recipe.Recipe
	Lunch     []recipe.Recipe
	Dinner    []recipe.Recipe
	Snack     []recipe.Recipe
}

func (p Pools) forSlot(slot Slot) []recipe.Recipe {
	switch slot {
	case SlotBreakfast:
		return p.Breakfast
	case SlotLunch:
		return p.Lunch
	case SlotDinner:
		return p.Dinner
	case SlotSnack:
		return p.Snack
	default:
		return nil
	}
}

// Assembler orchestrates target computation and meal selection into one
// WeeklyPlan.
type Assembler struct {
	calculator      biometrics.Calculator
	selector        *Selector
	requireComplete bool
	log             *zap.Logger
}

// NewAssembler creates an Assembler. requireComplete turns a plan with any
// unfilled slot into an ErrIncompletePlan failure instead of a deliverable.
func NewAssembler(calculator biometrics.Calculator, selector *Selector, requireComplete bool, log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{
		calculator:      calculator,
		selector:        selector,
		requireComplete: requireComplete,
		log:             log,
	}
}

// GenerateWeeklyPlan computes daily targets for the profile and fills all 7
// days x 4 slots from the pools. One used-id set is threaded across all 28
// selections; it lives exactly as long as this call. Selection runs day by
// day and slot by slot in fixed order because each pick depends on what the
// previous ones consumed.
func (a *Assembler) GenerateWeeklyPlan(profile biometrics.Profile, pools Pools) (*WeeklyPlan, error) {
	targets, err := a.calculator.ComputeDailyTargets(profile)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan := &WeeklyPlan{
		ID:            uuid.NewString(),
		DailyTargets:  make([]biometrics.DailyTarget, 0, len(biometrics.Days)),
		Days:          make(map[string]DayMeals, len(biometrics.Days)),
		Totals:        make(map[string]DayTotals, len(biometrics.Days)),
		FallbackTiers: make(map[string]map[Slot]FallbackTier, len(biometrics.Days)),
		UsedRecipeIDs: make(map[string]struct{}),
		StartDate:     now,
		EndDate:       now.AddDate(0, 0, 7),
		Active:        true,
	}

	for _, day := range biometrics.Days {
		target := targets[day]
		plan.DailyTargets = append(plan.DailyTargets, target)

		var meals DayMeals
		tiers := make(map[Slot]FallbackTier, len(Slots))
		totals := DayTotals{
			TargetCalories: target.Calories,
			TargetProtein:  target.ProteinGrams,
			TargetCarbs:    target.CarbsGrams,
			TargetFat:      target.FatGrams,
		}

		for _, slot := range Slots {
			picked, tier := a.fillSlot(pools.forSlot(slot), subTarget(target, slot), plan.UsedRecipeIDs, slot, target.ActivityCalories)
			if picked == nil {
				a.log.Warn("slot exhausted, leaving empty",
					zap.String("day", day),
					zap.String("slot", string(slot)))
				continue
			}
			// Only unique picks reserve the recipe for the rest of the week.
			if tier == TierStrict || tier == TierRelaxed {
				plan.UsedRecipeIDs[picked.ID] = struct{}{}
			}
			tiers[slot] = tier
			meals.set(slot, picked)
			totals.AchievedCalories += picked.Calories
			totals.AchievedProtein += picked.Protein
			totals.AchievedCarbs += picked.Carbs
			totals.AchievedFat += picked.Fat
		}

		plan.Days[day] = meals
		plan.Totals[day] = totals
		plan.FallbackTiers[day] = tiers
	}

	if a.requireComplete {
		if stats := plan.Stats(); stats.NullSlots > 0 {
			return nil, fmt.Errorf("%w: %d of %d slots empty", ErrIncompletePlan, stats.NullSlots, len(biometrics.Days)*len(Slots))
		}
	}
	return plan, nil
}

// fillSlot walks the fallback ladder until a tier yields a recipe: strict
// tolerance, relaxed tolerance, relaxed with uniqueness waived, then calorie
// proximity alone.
func (a *Assembler) fillSlot(pool []recipe.Recipe, target SlotTarget, used map[string]struct{}, slot Slot, activityCalories float64) (*recipe.Recipe, FallbackTier) {
	if r := a.selector.SelectMeal(pool, target, used, slot, activityCalories, false); r != nil {
		return r, TierStrict
	}
	if r := a.selector.SelectMeal(pool, target, used, slot, activityCalories, true); r != nil {
		return r, TierRelaxed
	}
	if r := a.selector.SelectMeal(pool, target, nil, slot, activityCalories, true); r != nil {
		a.log.Warn("allowing repeated recipe for slot",
			zap.String("slot", string(slot)),
			zap.String("recipe_id", r.ID))
		return r, TierRepeat
	}
	if r := a.selector.ClosestByCalories(pool, target.Calories); r != nil {
		a.log.Warn("falling back to calorie proximity for slot",
			zap.String("slot", string(slot)),
			zap.String("recipe_id", r.ID))
		return r, TierCalorieOnly
	}
	return nil, TierStrict
}

func subTarget(t biometrics.DailyTarget, slot Slot) SlotTarget {
	fraction := slotFractions[slot]
	return SlotTarget{
		Calories: float64(t.Calories) * fraction,
		Protein:  float64(t.ProteinGrams) * fraction,
		Carbs:    float64(t.CarbsGrams) * fraction,
		Fat:      float64(t.FatGrams) * fraction,
	}
}

func (d *DayMeals) set(slot Slot, r *recipe.Recipe) {
	switch slot {
	case SlotBreakfast:
		d.Breakfast = r
	case SlotLunch:
		d.Lunch = r
	case SlotDinner:
		d.Dinner = r
	case SlotSnack:
		d.Snack = r
	}
}
