package services

import (
	"fmt"
	"sort"

	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
)

type weekBucket struct {
	count    int
	speedSum float64
	distSum  float64
}

// AggregateWeekly groups records by ISO week number (weeks start on Monday,
// week 1 holds the year's first Thursday) and averages per-record speed and
// distance in each group. Groups come out in ascending week order and empty
// weeks are omitted. Records from different years that share a week number
// fall into the same group.
//
// Records are summed in a canonical order so the output does not depend on
// the order of the input. A record without a defined speed fails the whole
// aggregation.
func AggregateWeekly(records []*models.ExerciseRecord) ([]models.WeeklyStat, error) {
	sorted := make([]*models.ExerciseRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return lessRecord(sorted[i], sorted[j]) })

	buckets := make(map[int]*weekBucket)
	for _, rec := range sorted {
		speed, err := rec.Speed()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", rec.ID, err)
		}
		_, week := rec.Date.ISOWeek()

		b, ok := buckets[week]
		if !ok {
			b = &weekBucket{}
			buckets[week] = b
		}
		b.count++
		b.speedSum += speed
		b.distSum += rec.DistanceMeters
	}

	stats := make([]models.WeeklyStat, 0, len(buckets))
	for week, b := range buckets {
		stats = append(stats, models.WeeklyStat{
			WeekNumber:      week,
			AverageSpeed:    b.speedSum / float64(b.count),
			AverageDistance: b.distSum / float64(b.count),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].WeekNumber < stats[j].WeekNumber })
	return stats, nil
}

func lessRecord(a, b *models.ExerciseRecord) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	if a.DistanceMeters != b.DistanceMeters {
		return a.DistanceMeters < b.DistanceMeters
	}
	return a.Duration < b.Duration
}
