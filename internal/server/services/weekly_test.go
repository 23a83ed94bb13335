package services

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateWeekly_TwoWeeks(t *testing.T) {
	recs := []*models.ExerciseRecord{
		{ID: 3, Date: mon11, DistanceMeters: 4000, Duration: 25 * time.Minute},
		{ID: 1, Date: mon10, DistanceMeters: 5000, Duration: 30 * time.Minute},
		{ID: 2, Date: wed10, DistanceMeters: 3000, Duration: 20 * time.Minute},
	}

	stats, err := AggregateWeekly(recs)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, 10, stats[0].WeekNumber)
	assert.InDelta(t, 4000, stats[0].AverageDistance, 1e-9)
	assert.InDelta(t, 9500, stats[0].AverageSpeed, 1e-6)

	assert.Equal(t, 11, stats[1].WeekNumber)
	assert.InDelta(t, 4000, stats[1].AverageDistance, 1e-9)
	assert.InDelta(t, 9600, stats[1].AverageSpeed, 1e-6)
}

func TestAggregateWeekly_Empty(t *testing.T) {
	stats, err := AggregateWeekly(nil)
	require.NoError(t, err)
	assert.NotNil(t, stats)
	assert.Empty(t, stats)
}

func TestAggregateWeekly_OrderInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	recs := make([]*models.ExerciseRecord, 0, 200)
	for i := 0; i < 200; i++ {
		recs = append(recs, &models.ExerciseRecord{
			ID:             int64(i + 1),
			Date:           start.AddDate(0, 0, rng.Intn(120)),
			DistanceMeters: float64(rng.Intn(20000)) + rng.Float64(),
			Duration:       time.Duration(1+rng.Intn(7200)) * time.Second,
		})
	}

	want, err := AggregateWeekly(recs)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		shuffled := make([]*models.ExerciseRecord, len(recs))
		copy(shuffled, recs)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := AggregateWeekly(shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for i := 1; i < len(want); i++ {
		assert.Less(t, want[i-1].WeekNumber, want[i].WeekNumber)
	}
}

func TestAggregateWeekly_ISOYearBoundary(t *testing.T) {
	// Thu 31 Dec 2020 and Sun 3 Jan 2021 both sit in ISO week 53 of 2020;
	// Mon 4 Jan 2021 starts week 1.
	recs := []*models.ExerciseRecord{
		{ID: 1, Date: time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), DistanceMeters: 1000, Duration: time.Hour},
		{ID: 2, Date: time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC), DistanceMeters: 3000, Duration: time.Hour},
		{ID: 3, Date: time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC), DistanceMeters: 5000, Duration: time.Hour},
	}

	stats, err := AggregateWeekly(recs)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, models.WeeklyStat{WeekNumber: 1, AverageSpeed: 5000, AverageDistance: 5000}, stats[0])
	assert.Equal(t, models.WeeklyStat{WeekNumber: 53, AverageSpeed: 2000, AverageDistance: 2000}, stats[1])
}

func TestAggregateWeekly_ZeroDurationFails(t *testing.T) {
	recs := []*models.ExerciseRecord{
		{ID: 1, Date: mon10, DistanceMeters: 1000, Duration: time.Hour},
		{ID: 2, Date: mon10, DistanceMeters: 1000},
	}

	_, err := AggregateWeekly(recs)
	assert.True(t, errors.Is(err, common.ErrUndefinedSpeed))
}
