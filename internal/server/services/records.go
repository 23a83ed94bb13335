package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"github.com/dmitrijs2005/joggingtracker/internal/logging"
	"github.com/dmitrijs2005/joggingtracker/internal/result"
	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
	"github.com/dmitrijs2005/joggingtracker/internal/server/repositories/repomanager"
)

const recordEntity = "record"

// RecordStore owns exercise records. The caller is responsible for setting
// UserID from the authenticated principal before Create.
type RecordStore struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewRecordStore(m repomanager.RepositoryManager, logger logging.Logger) *RecordStore {
	return &RecordStore{repomanager: m, logger: logger.With("module", "records")}
}

// Create validates rec and stores it. The store assigns the ID.
func (s *RecordStore) Create(ctx context.Context, rec *models.ExerciseRecord) result.Result[*models.ExerciseRecord] {
	in := normalise(rec)
	if in.UserID == "" {
		return result.Failure[*models.ExerciseRecord](result.KindValidation, "owner is required")
	}
	if err := in.Validate(); err != nil {
		return result.Failure[*models.ExerciseRecord](result.KindValidation, err.Error())
	}

	out, err := s.repomanager.Records().Create(ctx, in)
	if err != nil {
		return fromError[*models.ExerciseRecord](ctx, s.logger, "create", recordEntity, err)
	}
	s.logger.Debug(ctx, "record created", "id", out.ID, "user_id", out.UserID)
	return result.Success(out)
}

func (s *RecordStore) GetByID(ctx context.Context, id int64) result.Result[*models.ExerciseRecord] {
	rec, err := s.repomanager.Records().Get(ctx, id)
	if err != nil {
		return fromError[*models.ExerciseRecord](ctx, s.logger, "get", recordEntity, err)
	}
	return result.Success(rec)
}

// GetAllForUser returns the user's records in no particular order.
func (s *RecordStore) GetAllForUser(ctx context.Context, userID string) result.Result[[]*models.ExerciseRecord] {
	recs, err := s.repomanager.Records().ListByUser(ctx, userID)
	if err != nil {
		return fromError[[]*models.ExerciseRecord](ctx, s.logger, "list", recordEntity, err)
	}
	return result.Success(recs)
}

// GetByDateRange filters the user's records to from <= date <= to. Either
// bound may be nil.
func (s *RecordStore) GetByDateRange(ctx context.Context, userID string, from, to *time.Time) result.Result[[]*models.ExerciseRecord] {
	recs, err := s.repomanager.Records().ListByUserAndDate(ctx, userID, truncatePtr(from), truncatePtr(to))
	if err != nil {
		return fromError[[]*models.ExerciseRecord](ctx, s.logger, "filter", recordEntity, err)
	}
	return result.Success(recs)
}

// Update replaces date, distance and duration of the record with rec.ID.
// rec.UserID is ignored: the stored owner is kept.
func (s *RecordStore) Update(ctx context.Context, rec *models.ExerciseRecord) result.Result[*models.ExerciseRecord] {
	in := normalise(rec)
	if err := in.Validate(); err != nil {
		return result.Failure[*models.ExerciseRecord](result.KindValidation, err.Error())
	}

	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx repomanager.RepositoryManager) error {
		existing, err := tx.Records().Get(ctx, in.ID)
		if err != nil {
			return err
		}
		in.UserID = existing.UserID
		return tx.Records().Update(ctx, in)
	})
	if err != nil {
		return fromError[*models.ExerciseRecord](ctx, s.logger, "update", recordEntity, err)
	}
	return result.Success(in)
}

func (s *RecordStore) Delete(ctx context.Context, id int64) result.Result[result.Empty] {
	if err := s.repomanager.Records().Delete(ctx, id); err != nil {
		return fromError[result.Empty](ctx, s.logger, "delete", recordEntity, err)
	}
	return result.Done()
}

// WeeklyAggregate computes per-week averages over all of the user's records.
// See AggregateWeekly for the grouping rule.
func (s *RecordStore) WeeklyAggregate(ctx context.Context, userID string) result.Result[[]models.WeeklyStat] {
	recs, err := s.repomanager.Records().ListByUser(ctx, userID)
	if err != nil {
		return fromError[[]models.WeeklyStat](ctx, s.logger, "weekly", recordEntity, err)
	}

	stats, err := AggregateWeekly(recs)
	if err != nil {
		if errors.Is(err, common.ErrUndefinedSpeed) {
			s.logger.Warn(ctx, "record with undefined speed", "user_id", userID, "error", err)
			return result.Failure[[]models.WeeklyStat](result.KindValidation, "speed is undefined for a record with zero duration")
		}
		return fromError[[]models.WeeklyStat](ctx, s.logger, "weekly", recordEntity, err)
	}
	return result.Success(stats)
}

// normalise copies rec with the date cut to day granularity and the
// duration cut to the stored resolution, so every backend reads back what
// it was given.
func normalise(rec *models.ExerciseRecord) *models.ExerciseRecord {
	out := *rec
	out.Duration = out.Duration.Truncate(models.DurationResolution)
	if !out.Date.IsZero() {
		out.Date = models.TruncateToDay(out.Date)
	}
	return &out
}

func truncatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := models.TruncateToDay(*t)
	return &d
}
