package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"meal-planner/internal/recipe"
)

// Meal-type pool file names expected inside the recipe directory.
const (
	BreakfastFile = "breakfast.json"
	LunchFile     = "lunch.json"
	DinnerFile    = "dinner.json"
	SnackFile     = "snack.json"
)

// PoolStore reads raw recipe pool files from a directory. It is read-only:
// fetching and maintaining the corpus is the surrounding system's job.
type PoolStore struct {
	basePath string
}

// NewPoolStore validates that basePath exists and is a directory.
func NewPoolStore(basePath string) (*PoolStore, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("recipe directory %s: %w", basePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("recipe path %s is not a directory", basePath)
	}
	return &PoolStore{basePath: basePath}, nil
}

// LoadPool reads one raw pool file (a JSON array of records). The records are
// returned uncleaned; normalization happens downstream.
func (s *PoolStore) LoadPool(fileName string) ([]recipe.RawRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.basePath, fileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read pool file %s: %w", fileName, err)
	}

	var records []recipe.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse pool file %s: %w", fileName, err)
	}
	return records, nil
}
