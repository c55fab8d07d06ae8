package planner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meal-planner/internal/biometrics"
	"meal-planner/internal/recipe"
)

// maintainProfile yields a 1320 kcal daily target: breakfast 330, lunch 396,
// dinner 396, snack 198.
func maintainProfile() biometrics.Profile {
	return biometrics.Profile{
		Age:      30,
		Gender:   biometrics.GenderFemale,
		HeightCm: 165,
		WeightKg: 60,
		Goal:     biometrics.GoalMaintain,
	}
}

func makePool(prefix string, calories, protein, carbs, fat float64, n int) []recipe.Recipe {
	pool := make([]recipe.Recipe, n)
	for i := range pool {
		pool[i] = recipe.Recipe{
			ID:          fmt.Sprintf("%s-%02d", prefix, i),
			Title:       fmt.Sprintf("%s dish %d", prefix, i),
			Calories:    calories + float64(i%5),
			Protein:     protein,
			Carbs:       carbs,
			Fat:         fat,
			PrepMinutes: 10,
			CookMinutes: 20,
		}
	}
	return pool
}

func richPools() Pools {
	return Pools{
		Breakfast: makePool("breakfast", 330, 30, 27, 11, 8),
		Lunch:     makePool("lunch", 396, 40, 30, 13, 8),
		Dinner:    makePool("dinner", 396, 45, 27, 13, 8),
		Snack:     makePool("snack", 198, 24, 15, 7, 8),
	}
}

func newTestAssembler(requireComplete bool) *Assembler {
	return NewAssembler(biometrics.Calculator{}, newTestSelector(), requireComplete, nil)
}

func TestGenerateWeeklyPlanFillsEverySlot(t *testing.T) {
	plan, err := newTestAssembler(false).GenerateWeeklyPlan(maintainProfile(), richPools())
	require.NoError(t, err)

	assert.NotEmpty(t, plan.ID)
	assert.True(t, plan.Active)
	assert.Equal(t, plan.StartDate.AddDate(0, 0, 7), plan.EndDate)
	require.Len(t, plan.DailyTargets, 7)

	seen := make(map[string]int)
	for _, day := range biometrics.Days {
		meals := plan.Days[day]
		for _, slot := range Slots {
			meal := meals.Meal(slot)
			require.NotNilf(t, meal, "%s %s should be filled", day, slot)
			seen[meal.ID]++
			assert.Equal(t, TierStrict, plan.FallbackTiers[day][slot])
		}
	}

	// With ample pools every pick is unique for the whole week.
	assert.Len(t, seen, 28)
	assert.Len(t, plan.UsedRecipeIDs, 28)

	stats := plan.Stats()
	assert.Zero(t, stats.NullSlots)
	assert.Zero(t, stats.Relaxed)
	assert.Zero(t, stats.Repeats)
	assert.Zero(t, stats.CalorieOnly)
}

func TestGenerateWeeklyPlanTracksAchievedTotals(t *testing.T) {
	plan, err := newTestAssembler(false).GenerateWeeklyPlan(maintainProfile(), richPools())
	require.NoError(t, err)

	for _, day := range biometrics.Days {
		totals := plan.Totals[day]
		assert.Equal(t, 1320, totals.TargetCalories)
		// Four meals sized near the 25/30/30/15 split land near the day
		// target.
		assert.InDelta(t, 1320, totals.AchievedCalories, 200)
		assert.Greater(t, totals.AchievedProtein, 0.0)
	}
}

func TestGenerateWeeklyPlanRepeatsUnderScarcity(t *testing.T) {
	pools := Pools{
		Breakfast: makePool("breakfast", 330, 30, 27, 11, 1),
		Lunch:     makePool("lunch", 396, 40, 30, 13, 1),
		Dinner:    makePool("dinner", 396, 45, 27, 13, 1),
		Snack:     makePool("snack", 198, 24, 15, 7, 1),
	}

	plan, err := newTestAssembler(false).GenerateWeeklyPlan(maintainProfile(), pools)
	require.NoError(t, err)

	stats := plan.Stats()
	assert.Zero(t, stats.NullSlots)
	// The first day consumes each pool's only recipe; the remaining six days
	// fall through to the repeat tier, which does not reserve ids.
	assert.Equal(t, 24, stats.Repeats)
	assert.Len(t, plan.UsedRecipeIDs, 4)
}

func TestGenerateWeeklyPlanCalorieOnlyFallback(t *testing.T) {
	pools := Pools{
		// Far outside even the relaxed band around 330 kcal, but valid.
		Breakfast: makePool("heavy", 700, 30, 27, 11, 1),
	}

	plan, err := newTestAssembler(false).GenerateWeeklyPlan(maintainProfile(), pools)
	require.NoError(t, err)

	stats := plan.Stats()
	assert.Equal(t, 7, stats.CalorieOnly)
	assert.Equal(t, 21, stats.NullSlots)
	assert.Empty(t, plan.UsedRecipeIDs)

	for _, day := range biometrics.Days {
		require.NotNil(t, plan.Days[day].Breakfast)
		assert.Nil(t, plan.Days[day].Lunch)
	}
}

func TestGenerateWeeklyPlanIncompletePolicy(t *testing.T) {
	// Lenient assembler delivers the partial plan.
	plan, err := newTestAssembler(false).GenerateWeeklyPlan(maintainProfile(), Pools{})
	require.NoError(t, err)
	assert.Equal(t, 28, plan.Stats().NullSlots)

	// Strict assembler rejects it.
	_, err = newTestAssembler(true).GenerateWeeklyPlan(maintainProfile(), Pools{})
	assert.ErrorIs(t, err, ErrIncompletePlan)
}

func TestGenerateWeeklyPlanRejectsInvalidProfile(t *testing.T) {
	p := maintainProfile()
	p.Gender = "unknown"

	_, err := newTestAssembler(false).GenerateWeeklyPlan(p, richPools())
	assert.ErrorIs(t, err, biometrics.ErrInvalidProfile)
}
