package biometrics

import (
	"errors"
	"fmt"
)

// Canonical genders and dietary goals.
const (
	GenderMale   = "male"
	GenderFemale = "female"

	GoalLoseWeight = "lose weight"
	GoalGainMuscle = "gain muscle"
	GoalMaintain   = "maintain"
)

// Days lists the canonical day names in plan order.
var Days = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ErrInvalidProfile marks the fatal validation errors of the planning core.
// A profile failing validation is rejected before any recipe work begins.
var ErrInvalidProfile = errors.New("invalid profile")

// DayActivity describes the planned activity for one day of the week.
type DayActivity struct {
	ActivityName    string  `json:"activity_name"`
	DurationMinutes float64 `json:"duration_minutes"`
	CaloriesBurned  float64 `json:"calories_burned"`
}

// MacroSplit is an explicit protein/carbs/fat calorie split. When supplied it
// overrides the goal-based defaults; all three fractions must be present.
type MacroSplit struct {
	ProteinPct float64 `json:"protein_pct"`
	CarbsPct   float64 `json:"carbs_pct"`
	FatPct     float64 `json:"fat_pct"`
}

// Profile holds the biometrics and preferences a plan is generated for.
type Profile struct {
	Age            int                    `json:"age"`
	Gender         string                 `json:"gender"`
	HeightCm       float64                `json:"height_cm"`
	WeightKg       float64                `json:"weight_kg"`
	Goal           string                 `json:"goal"`
	WeeklyActivity map[string]DayActivity `json:"weekly_activity"`
	FoodAllergies  []string               `json:"food_allergies"`
	FoodDislikes   []string               `json:"food_dislikes"`
	MacroSplit     *MacroSplit            `json:"macro_split,omitempty"`
}

// Validate checks the fields whose absence makes target computation
// meaningless. When strictMacroSplit is set, an explicit split must also sum
// to 1 within a 1% margin.
func (p Profile) Validate(strictMacroSplit bool) error {
	if p.Gender != GenderMale && p.Gender != GenderFemale {
		return fmt.Errorf("%w: gender must be %q or %q, got %q", ErrInvalidProfile, GenderMale, GenderFemale, p.Gender)
	}
	if p.Age <= 0 {
		return fmt.Errorf("%w: age must be positive, got %d", ErrInvalidProfile, p.Age)
	}
	if p.HeightCm <= 0 {
		return fmt.Errorf("%w: height must be positive, got %v", ErrInvalidProfile, p.HeightCm)
	}
	if p.WeightKg <= 0 {
		return fmt.Errorf("%w: weight must be positive, got %v", ErrInvalidProfile, p.WeightKg)
	}
	if p.MacroSplit != nil {
		s := p.MacroSplit
		if s.ProteinPct <= 0 || s.CarbsPct <= 0 || s.FatPct <= 0 {
			return fmt.Errorf("%w: explicit macro split requires all three fractions", ErrInvalidProfile)
		}
		if strictMacroSplit {
			sum := s.ProteinPct + s.CarbsPct + s.FatPct
			if sum < 0.99 || sum > 1.01 {
				return fmt.Errorf("%w: macro split fractions sum to %v, want 1", ErrInvalidProfile, sum)
			}
		}
	}
	return nil
}

// ActivityCalories returns the calories burned on the given day, 0 when the
// day has no scheduled activity.
func (p Profile) ActivityCalories(day string) float64 {
	activity, ok := p.WeeklyActivity[day]
	if !ok || activity.CaloriesBurned < 0 {
		return 0
	}
	return activity.CaloriesBurned
}
