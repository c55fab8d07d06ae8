package biometrics

import "math"

// FuelingDemand buckets a day by how much fuel its activity requires.
type FuelingDemand string

const (
	FuelingLow    FuelingDemand = "low"
	FuelingMedium FuelingDemand = "medium"
	FuelingHigh   FuelingDemand = "high"
)

// DailyTarget is the calorie and macro budget for a single day of the plan.
type DailyTarget struct {
	Day              string        `json:"day"`
	Calories         int           `json:"calories"`
	ProteinGrams     int           `json:"protein_grams"`
	CarbsGrams       int           `json:"carbs_grams"`
	FatGrams         int           `json:"fat_grams"`
	FuelingDemand    FuelingDemand `json:"fueling_demand"`
	ActivityCalories float64       `json:"activity_calories"`
}

// Goal-based calorie adjustments and minimum daily intake per gender.
const (
	loseWeightAdjustment = -550
	gainMuscleAdjustment = 250

	minCaloriesMale   = 1500
	minCaloriesFemale = 1200

	maxTargetFactor = 2.5
)

// Calculator derives per-day calorie and macro targets from a profile.
type Calculator struct {
	// StrictMacroSplit makes an explicit macro split that does not sum to 1
	// a validation failure instead of being accepted as-is.
	StrictMacroSplit bool
}

// BMR computes the basal metabolic rate using the Mifflin-St Jeor equation.
func BMR(p Profile) float64 {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

// ComputeDailyTargets validates the profile and returns one DailyTarget per
// canonical day. This is the only operation in the core that can fail.
func (c Calculator) ComputeDailyTargets(p Profile) (map[string]DailyTarget, error) {
	if err := p.Validate(c.StrictMacroSplit); err != nil {
		return nil, err
	}

	bmr := BMR(p)
	proteinPct, carbsPct, fatPct := macroSplit(p)

	minCalories := float64(minCaloriesFemale)
	if p.Gender == GenderMale {
		minCalories = minCaloriesMale
	}

	targets := make(map[string]DailyTarget, len(Days))
	for _, day := range Days {
		activityCalories := p.ActivityCalories(day)
		tdee := bmr + activityCalories
		target := clamp(tdee+goalAdjustment(p.Goal), minCalories, tdee*maxTargetFactor)
		calories := int(math.Round(target))

		targets[day] = DailyTarget{
			Day:              day,
			Calories:         calories,
			ProteinGrams:     int(math.Round(float64(calories) * proteinPct / 4)),
			CarbsGrams:       int(math.Round(float64(calories) * carbsPct / 4)),
			FatGrams:         int(math.Round(float64(calories) * fatPct / 9)),
			FuelingDemand:    fuelingDemand(activityCalories),
			ActivityCalories: activityCalories,
		}
	}
	return targets, nil
}

func goalAdjustment(goal string) float64 {
	switch goal {
	case GoalLoseWeight:
		return loseWeightAdjustment
	case GoalGainMuscle:
		return gainMuscleAdjustment
	default:
		return 0
	}
}

// macroSplit returns the protein/carbs/fat calorie fractions, preferring an
// explicit user split over the goal defaults.
func macroSplit(p Profile) (proteinPct, carbsPct, fatPct float64) {
	if p.MacroSplit != nil {
		return p.MacroSplit.ProteinPct, p.MacroSplit.CarbsPct, p.MacroSplit.FatPct
	}
	switch p.Goal {
	case GoalLoseWeight:
		return 0.40, 0.35, 0.25
	case GoalGainMuscle:
		return 0.30, 0.45, 0.25
	default:
		return 0.40, 0.30, 0.30
	}
}

func fuelingDemand(activityCalories float64) FuelingDemand {
	switch {
	case activityCalories >= 800:
		return FuelingHigh
	case activityCalories >= 400:
		return FuelingMedium
	default:
		return FuelingLow
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
