package usecase

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hz-bin/AirTicket/internal/domain/entity"
	"github.com/hz-bin/AirTicket/pkg/logger"
	"github.com/hz-bin/AirTicket/pkg/utils"
)

// Daily query windows (local hours). One run lands at a random time inside
// each window so traffic does not hit the site at fixed times.
var timeWindows = [][2]int{
	{10, 12},
	{14, 16},
	{18, 20},
}

// Scheduler runs the configured route queries at randomized times inside
// fixed daily windows
type Scheduler struct {
	runner  *QueryRunner
	baseDir string
	logger  logger.Logger
}

// NewScheduler creates a new scheduler reading config.json from baseDir
func NewScheduler(runner *QueryRunner, baseDir string, logger logger.Logger) *Scheduler {
	return &Scheduler{
		runner:  runner,
		baseDir: baseDir,
		logger:  logger,
	}
}

// LoadQueries reads the query plan from config.json
func (s *Scheduler) LoadQueries() (entity.ScheduleConfig, error) {
	var cfg entity.ScheduleConfig
	data, err := os.ReadFile(filepath.Join(s.baseDir, "config.json"))
	if err != nil {
		return cfg, err
	}
	err = json.Unmarshal(data, &cfg)
	return cfg, err
}

// RunAll executes every configured query once. Config and per-query failures
// are logged and the remaining queries still run.
func (s *Scheduler) RunAll(ctx context.Context) {
	cfg, err := s.LoadQueries()
	if err != nil {
		s.logger.Error("Failed to load query config", "error", err)
		return
	}
	if len(cfg.Queries) == 0 {
		s.logger.Warn("No queries configured")
		return
	}
	for _, query := range cfg.Queries {
		if query.FromCode == "" || query.ToCode == "" || query.DepartDate == "" {
			s.logger.Warn("Skipping invalid query", "query", query)
			continue
		}
		opts := utils.ParseOptions{DirectOnly: true}
		if err := s.runner.Run(ctx, query, opts); err != nil {
			s.logger.Error("Query failed", "from", query.FromCode, "to", query.ToCode, "error", err)
		}
	}
}

// Start runs the daemon loop until ctx is cancelled
func (s *Scheduler) Start(ctx context.Context) {
	for {
		plan := buildPlan(time.Now())
		for _, runAt := range plan {
			s.logger.Info("Next run scheduled", "at", runAt.Format(utils.TIMESTAMP_LAYOUT))
			if !sleepUntil(ctx, runAt) {
				s.logger.Info("Scheduler stopped")
				return
			}
			s.RunAll(ctx)
		}
	}
}

// scheduleForDate picks one random slot inside each window of the given day.
func scheduleForDate(day time.Time) []time.Time {
	slots := make([]time.Time, 0, len(timeWindows))
	for _, window := range timeWindows {
		start := time.Date(day.Year(), day.Month(), day.Day(), window[0], 0, 0, 0, day.Location())
		end := time.Date(day.Year(), day.Month(), day.Day(), window[1], 0, 0, 0, day.Location())
		dur := end.Sub(start)
		if dur <= 0 {
			continue
		}
		offset := time.Duration(rand.Int64N(int64(dur)))
		slots = append(slots, start.Add(offset))
	}
	return slots
}

// buildPlan returns today's remaining slots, or tomorrow's when all of
// today's windows have passed.
func buildPlan(now time.Time) []time.Time {
	schedule := scheduleForDate(now)
	future := make([]time.Time, 0, len(schedule))
	for _, t := range schedule {
		if t.After(now) {
			future = append(future, t)
		}
	}
	if len(future) == 0 {
		future = scheduleForDate(now.AddDate(0, 0, 1))
	}
	sort.Slice(future, func(i, j int) bool { return future[i].Before(future[j]) })
	return future
}

// sleepUntil blocks until target, waking at most once a minute to stay
// responsive to cancellation. It reports false when ctx was cancelled.
func sleepUntil(ctx context.Context, target time.Time) bool {
	for {
		remaining := time.Until(target)
		if remaining <= 0 {
			return true
		}
		step := time.Minute
		if remaining < step {
			step = remaining
		}
		timer := time.NewTimer(step)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}
