package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hz-bin/AirTicket/pkg/logger"
)

func TestScheduleForDate_SlotsInsideWindows(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)

	slots := scheduleForDate(day)
	require.Len(t, slots, len(timeWindows))

	for i, slot := range slots {
		start := time.Date(2026, 9, 1, timeWindows[i][0], 0, 0, 0, time.Local)
		end := time.Date(2026, 9, 1, timeWindows[i][1], 0, 0, 0, time.Local)
		assert.False(t, slot.Before(start), "slot %d before its window", i)
		assert.True(t, slot.Before(end), "slot %d past its window", i)
	}
}

func TestBuildPlan_OnlyFutureSlots(t *testing.T) {
	now := time.Date(2026, 9, 1, 13, 0, 0, 0, time.Local)

	plan := buildPlan(now)
	require.NotEmpty(t, plan)
	for _, slot := range plan {
		assert.True(t, slot.After(now))
	}
	for i := 1; i < len(plan); i++ {
		assert.True(t, plan[i-1].Before(plan[i]), "plan must be sorted")
	}
}

func TestBuildPlan_RollsOverToTomorrow(t *testing.T) {
	now := time.Date(2026, 9, 1, 23, 0, 0, 0, time.Local)

	plan := buildPlan(now)
	require.Len(t, plan, len(timeWindows))
	for _, slot := range plan {
		assert.Equal(t, 2, slot.Day())
	}
}

func TestLoadQueries(t *testing.T) {
	dir := t.TempDir()
	data := `{"queries":[{"from":"hgh","to":"akl","date":"2026-09-25"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(data), 0o644))

	s := NewScheduler(nil, dir, logger.NewConsoleLogger())
	cfg, err := s.LoadQueries()
	require.NoError(t, err)
	require.Len(t, cfg.Queries, 1)
	assert.Equal(t, "hgh", cfg.Queries[0].FromCode)
	assert.Equal(t, "akl", cfg.Queries[0].ToCode)
	assert.Equal(t, "2026-09-25", cfg.Queries[0].DepartDate)
}

func TestLoadQueries_MissingFile(t *testing.T) {
	s := NewScheduler(nil, t.TempDir(), logger.NewConsoleLogger())
	_, err := s.LoadQueries()
	assert.Error(t, err)
}

func TestSleepUntil_PastTarget(t *testing.T) {
	assert.True(t, sleepUntil(context.Background(), time.Now().Add(-time.Second)))
}

func TestSleepUntil_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, sleepUntil(ctx, time.Now().Add(time.Hour)))
}
