package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"meal-planner/internal/app"
	"meal-planner/internal/biometrics"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/logging"
	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.New(cfg.MetricsDBPath)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	poolStore, err := storage.NewPoolStore(cfg.RecipeDir)
	if err != nil {
		logger.Fatal("failed to open recipe directory", zap.Error(err))
	}

	limits := recipe.TimeLimits{
		MaxPrepMinutes: cfg.Planner.MaxPrepMinutes,
		MaxCookMinutes: cfg.Planner.MaxCookMinutes,
	}
	calculator := biometrics.Calculator{StrictMacroSplit: cfg.Planner.StrictMacroSplit}
	selector := planner.NewSelector(limits, cfg.Planner.CalorieTolerance)
	assembler := planner.NewAssembler(calculator, selector, cfg.Planner.RequireCompletePlans, logger)

	application := app.New(poolStore, assembler, metrics.NewStore(db.SQL), logger)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		profilePath := planCmd.String("profile", "profile.json", "Path to the user profile JSON")
		planCmd.Parse(os.Args[2:])

		if err := application.GeneratePlan(ctx, *profilePath); err != nil {
			logger.Fatal("plan generation failed", zap.Error(err))
		}
	case "metrics":
		metricsCmd := flag.NewFlagSet("metrics", flag.ExitOnError)
		days := metricsCmd.Int("days", 7, "Show aggregates for the last N days")
		metricsCmd.Parse(os.Args[2:])

		if err := application.ShowMetrics(ctx, *days); err != nil {
			logger.Fatal("failed to show metrics", zap.Error(err))
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		if err := application.CleanupMetrics(ctx, *days); err != nil {
			logger.Fatal("metrics cleanup failed", zap.Error(err))
		}
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: meal-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan               Generate a weekly meal plan for a profile")
	fmt.Println("  metrics            Show recent plan-generation aggregates")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
