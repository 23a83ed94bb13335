package records

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
)

// MemoryRepository keeps records in a map. IDs come from a counter that
// only grows, so deleted IDs are never handed out again.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]models.ExerciseRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[int64]models.ExerciseRecord)}
}

func (r *MemoryRepository) Create(ctx context.Context, rec *models.ExerciseRecord) (*models.ExerciseRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	out := *rec
	out.ID = r.nextID
	r.items[out.ID] = out
	return &out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (*models.ExerciseRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &rec, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.ExerciseRecord, error) {
	return r.ListByUserAndDate(ctx, userID, nil, nil)
}

func (r *MemoryRepository) ListByUserAndDate(ctx context.Context, userID string, from, to *time.Time) ([]*models.ExerciseRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.ExerciseRecord, 0)
	for _, rec := range r.items {
		if rec.UserID != userID {
			continue
		}
		if from != nil && rec.Date.Before(*from) {
			continue
		}
		if to != nil && rec.Date.After(*to) {
			continue
		}
		rec := rec
		result = append(result, &rec)
	}
	return result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, rec *models.ExerciseRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.items[rec.ID]
	if !ok {
		return common.ErrorNotFound
	}
	old.Date = rec.Date
	old.DistanceMeters = rec.DistanceMeters
	old.Duration = rec.Duration
	r.items[rec.ID] = old
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

// DeleteByUser drops every record owned by userID. It backs the cascade
// that the Postgres schema gets from ON DELETE CASCADE.
func (r *MemoryRepository) DeleteByUser(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.items {
		if rec.UserID == userID {
			delete(r.items, id)
		}
	}
}

// Count returns the number of stored records.
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
