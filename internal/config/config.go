package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration for the application.
type Config struct {
	LogLevel      string        `mapstructure:"log_level"`
	RecipeDir     string        `mapstructure:"recipe_dir"`
	MetricsDBPath string        `mapstructure:"metrics_db_path"`
	Planner       PlannerConfig `mapstructure:"planner"`
}

// PlannerConfig tunes the selection engine.
type PlannerConfig struct {
	// CalorieTolerance is the base deviation band around a slot's calorie
	// target; relaxed fallback selection doubles it.
	CalorieTolerance float64 `mapstructure:"calorie_tolerance"`
	MaxPrepMinutes   int     `mapstructure:"max_prep_minutes"`
	MaxCookMinutes   int     `mapstructure:"max_cook_minutes"`
	// RequireCompletePlans fails generation when any of the 28 slots stays
	// empty instead of returning a partial plan.
	RequireCompletePlans bool `mapstructure:"require_complete_plans"`
	// StrictMacroSplit rejects explicit macro splits that do not sum to 1.
	StrictMacroSplit bool `mapstructure:"strict_macro_split"`
}

// Load reads configuration from the environment (and an optional .env file),
// applying defaults for everything not set. Variables use the PLANNER prefix,
// e.g. PLANNER_RECIPE_DIR or PLANNER_PLANNER_CALORIE_TOLERANCE.
func Load() (*Config, error) {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("recipe_dir", "./recipes")
	v.SetDefault("metrics_db_path", "./data/metrics.db")
	v.SetDefault("planner.calorie_tolerance", 50.0)
	v.SetDefault("planner.max_prep_minutes", 30)
	v.SetDefault("planner.max_cook_minutes", 60)
	v.SetDefault("planner.require_complete_plans", false)
	v.SetDefault("planner.strict_macro_split", false)

	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if cfg.Planner.CalorieTolerance <= 0 {
		return nil, fmt.Errorf("planner.calorie_tolerance must be positive, got %v", cfg.Planner.CalorieTolerance)
	}
	if cfg.Planner.MaxPrepMinutes <= 0 || cfg.Planner.MaxCookMinutes <= 0 {
		return nil, fmt.Errorf("planner time limits must be positive")
	}
	return &cfg, nil
}
