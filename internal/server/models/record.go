// Package models defines server-side data models persisted in the database
// and the values derived from them.
package models

import (
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/common"
)

// ExerciseRecord is one logged session. ID is assigned by the store on
// insert and UserID is set from the authenticated caller.
type ExerciseRecord struct {
	ID             int64
	Date           time.Time
	DistanceMeters float64
	Duration       time.Duration
	UserID         string
}

// Speed returns meters per hour. It is derived on every read and never
// stored. A zero or negative duration yields common.ErrUndefinedSpeed.
func (r *ExerciseRecord) Speed() (float64, error) {
	if r.Duration <= 0 {
		return 0, common.ErrUndefinedSpeed
	}
	return r.DistanceMeters / r.Duration.Hours(), nil
}

// DurationResolution is the precision at which durations are stored.
const DurationResolution = time.Millisecond

// Validate checks the client-writable fields. Durations below
// DurationResolution are rejected so that every stored record has a
// defined speed.
func (r *ExerciseRecord) Validate() error {
	switch {
	case r.Date.IsZero():
		return fmt.Errorf("%w: date is required", common.ErrValidation)
	case math.IsNaN(r.DistanceMeters) || math.IsInf(r.DistanceMeters, 0):
		return fmt.Errorf("%w: distance must be a finite number", common.ErrValidation)
	case r.DistanceMeters < 0:
		return fmt.Errorf("%w: distance must not be negative", common.ErrValidation)
	case r.Duration < DurationResolution:
		return fmt.Errorf("%w: duration must be at least %s", common.ErrValidation, DurationResolution)
	}
	return nil
}

// TruncateToDay drops the time of day, keeping the calendar date in UTC.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeeklyStat aggregates the records of one ISO week.
type WeeklyStat struct {
	WeekNumber      int
	AverageSpeed    float64
	AverageDistance float64
}
