// Package records declares the persistence contract for exercise records
// and provides PostgreSQL and in-memory implementations.
package records

import (
	"context"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
)

// Repository stores exercise records. Not-found conditions are reported as
// common.ErrorNotFound.
type Repository interface {
	// Create inserts rec and returns it with the store-assigned ID.
	Create(ctx context.Context, rec *models.ExerciseRecord) (*models.ExerciseRecord, error)

	// Get returns the record with the given id.
	Get(ctx context.Context, id int64) (*models.ExerciseRecord, error)

	// ListByUser returns every record owned by userID, in no particular order.
	ListByUser(ctx context.Context, userID string) ([]*models.ExerciseRecord, error)

	// ListByUserAndDate narrows ListByUser to from <= date <= to. Nil bounds
	// are open.
	ListByUserAndDate(ctx context.Context, userID string, from, to *time.Time) ([]*models.ExerciseRecord, error)

	// Update replaces date, distance and duration of the record with rec.ID.
	// The owner column is never written.
	Update(ctx context.Context, rec *models.ExerciseRecord) error

	// Delete removes the record with the given id.
	Delete(ctx context.Context, id int64) error
}
