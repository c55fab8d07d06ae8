package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"meal-planner/internal/biometrics"
	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/storage"
)

// App holds the application's dependencies.
type App struct {
	pools        *storage.PoolStore
	assembler    *planner.Assembler
	metricsStore *metrics.Store
	log          *zap.Logger
}

// New creates and initializes a new App instance.
func New(pools *storage.PoolStore, assembler *planner.Assembler, metricsStore *metrics.Store, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		pools:        pools,
		assembler:    assembler,
		metricsStore: metricsStore,
		log:          log,
	}
}

// GeneratePlan loads the profile and the four recipe pools, generates a
// weekly plan, records generation metrics and prints the result.
func (a *App) GeneratePlan(ctx context.Context, profilePath string) error {
	profile, err := loadProfile(profilePath)
	if err != nil {
		return err
	}

	pools, err := a.preparePools(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to prepare recipe pools: %w", err)
	}

	start := time.Now()
	plan, err := a.assembler.GenerateWeeklyPlan(profile, pools)
	if err != nil {
		return fmt.Errorf("failed to generate plan: %w", err)
	}
	latency := time.Since(start)

	stats := plan.Stats()
	if err := a.metricsStore.Record(ctx, metrics.GenerationMetric{
		PlanID:              plan.ID,
		Goal:                profile.Goal,
		TargetCaloriesAvg:   avgTargetCalories(plan),
		AchievedCaloriesAvg: avgAchievedCalories(plan),
		NullSlots:           stats.NullSlots,
		RelaxedPicks:        stats.Relaxed,
		RepeatPicks:         stats.Repeats,
		CalorieOnlyPicks:    stats.CalorieOnly,
		LatencyMS:           latency.Milliseconds(),
	}); err != nil {
		a.log.Warn("failed to record generation metrics", zap.Error(err))
	}

	printPlan(plan)
	return nil
}

// ShowMetrics prints per-day generation aggregates for the last N days.
func (a *App) ShowMetrics(ctx context.Context, days int) error {
	rows, err := a.metricsStore.RecentGenerations(ctx, days)
	if err != nil {
		return fmt.Errorf("failed to load metrics: %w", err)
	}
	if len(rows) == 0 {
		fmt.Println("No plan generations recorded.")
		return nil
	}
	fmt.Printf("%-12s %8s %12s %10s %12s\n", "Date", "Plans", "Null slots", "Degraded", "Avg ms")
	for _, r := range rows {
		fmt.Printf("%-12s %8d %12d %10d %12.1f\n", r.Date, r.Plans, r.NullSlots, r.Degraded, r.AvgLatencyMS)
	}
	return nil
}

// CleanupMetrics removes metric records older than N days.
func (a *App) CleanupMetrics(ctx context.Context, days int) error {
	removed, err := a.metricsStore.Cleanup(ctx, days)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	fmt.Printf("Successfully removed %d old metric records.\n", removed)
	return nil
}

// preparePools loads, normalizes and filters the four meal-type pools
// concurrently; they share no state until selection starts.
func (a *App) preparePools(ctx context.Context, profile biometrics.Profile) (planner.Pools, error) {
	var pools planner.Pools
	g, ctx := errgroup.WithContext(ctx)

	prepare := func(fileName string, dst *[]recipe.Recipe) func() error {
		return func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := a.pools.LoadPool(fileName)
			if err != nil {
				return err
			}
			normalized := make([]recipe.Recipe, len(raw))
			for i, record := range raw {
				normalized[i] = recipe.Normalize(record)
			}
			*dst = recipe.Filter(normalized, profile.FoodAllergies, profile.FoodDislikes)
			a.log.Debug("prepared recipe pool",
				zap.String("file", fileName),
				zap.Int("raw", len(raw)),
				zap.Int("kept", len(*dst)))
			return nil
		}
	}

	g.Go(prepare(storage.BreakfastFile, &pools.Breakfast))
	g.Go(prepare(storage.LunchFile, &pools.Lunch))
	g.Go(prepare(storage.DinnerFile, &pools.Dinner))
	g.Go(prepare(storage.SnackFile, &pools.Snack))

	if err := g.Wait(); err != nil {
		return planner.Pools{}, err
	}
	return pools, nil
}

func loadProfile(path string) (biometrics.Profile, error) {
	var profile biometrics.Profile
	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return profile, nil
}

func avgTargetCalories(plan *planner.WeeklyPlan) float64 {
	if len(plan.DailyTargets) == 0 {
		return 0
	}
	var sum float64
	for _, t := range plan.DailyTargets {
		sum += float64(t.Calories)
	}
	return sum / float64(len(plan.DailyTargets))
}

func avgAchievedCalories(plan *planner.WeeklyPlan) float64 {
	if len(plan.Totals) == 0 {
		return 0
	}
	var sum float64
	for _, totals := range plan.Totals {
		sum += totals.AchievedCalories
	}
	return sum / float64(len(plan.Totals))
}

func printPlan(plan *planner.WeeklyPlan) {
	fmt.Println("\n=== WEEKLY MEAL PLAN ===")
	fmt.Printf("Plan %s, %s to %s\n",
		plan.ID,
		plan.StartDate.Format("2006-01-02"),
		plan.EndDate.Format("2006-01-02"))

	for _, day := range biometrics.Days {
		totals := plan.Totals[day]
		fmt.Printf("\n%s (target %d kcal, achieved %.0f kcal):\n", day, totals.TargetCalories, totals.AchievedCalories)
		meals := plan.Days[day]
		for _, slot := range planner.Slots {
			meal := meals.Meal(slot)
			if meal == nil {
				fmt.Printf("  %-10s (unfilled)\n", slot+":")
				continue
			}
			fmt.Printf("  %-10s %s (%.0f kcal)\n", slot+":", meal.Title, meal.Calories)
		}
	}
}
