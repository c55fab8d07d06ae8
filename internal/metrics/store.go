package metrics

import (
	"context"
	"database/sql"
	"time"
)

// GenerationMetric records metadata for a single plan generation.
type GenerationMetric struct {
	PlanID              string
	Goal                string
	TargetCaloriesAvg   float64
	AchievedCaloriesAvg float64
	NullSlots           int
	RelaxedPicks        int
	RepeatPicks         int
	CalorieOnlyPicks    int
	LatencyMS           int64
	Timestamp           time.Time
}

// Store persists generation metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore wraps an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves one generation metric.
func (s *Store) Record(ctx context.Context, m GenerationMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plan_metrics (
			plan_id, goal, target_calories_avg, achieved_calories_avg,
			null_slots, relaxed_picks, repeat_picks, calorie_only_picks,
			latency_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.PlanID, m.Goal, m.TargetCaloriesAvg, m.AchievedCaloriesAvg,
		m.NullSlots, m.RelaxedPicks, m.RepeatPicks, m.CalorieOnlyPicks,
		m.LatencyMS, ts,
	)
	return err
}

// DailyGenerations aggregates plan generations for a single day.
type DailyGenerations struct {
	Date         string
	Plans        int
	NullSlots    int
	Degraded     int // picks from the repeat or calorie-only tiers
	AvgLatencyMS float64
}

// RecentGenerations returns per-day aggregates for the last N days, newest
// first.
func (s *Store) RecentGenerations(ctx context.Context, days int) ([]DailyGenerations, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(created_at), COUNT(*), SUM(null_slots),
		       SUM(repeat_picks + calorie_only_picks), AVG(latency_ms)
		FROM plan_metrics
		WHERE created_at >= ?
		GROUP BY date(created_at)
		ORDER BY date(created_at) DESC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyGenerations
	for rows.Next() {
		var d DailyGenerations
		var nullSlots, degraded sql.NullInt64
		var avgLatency sql.NullFloat64
		if err := rows.Scan(&d.Date, &d.Plans, &nullSlots, &degraded, &avgLatency); err != nil {
			return nil, err
		}
		d.NullSlots = int(nullSlots.Int64)
		d.Degraded = int(degraded.Int64)
		d.AvgLatencyMS = avgLatency.Float64
		results = append(results, d)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and returns
// how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	res, err := s.db.ExecContext(ctx, `DELETE FROM plan_metrics WHERE created_at < ?`, threshold)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
