package records

import (
	"context"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/dbx"
	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
)

// PostgresRepository implements record storage over a dbx.DBTX (*sql.DB or *sql.Tx).
// Durations are stored as whole milliseconds.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.ExerciseRecord) (*models.ExerciseRecord, error) {
	query :=
		`INSERT INTO exercise_records (user_id, date, distance_meters, duration_ms)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	out := *rec
	err := r.db.QueryRowContext(ctx, query,
		rec.UserID, rec.Date, rec.DistanceMeters, rec.Duration.Milliseconds()).Scan(&out.ID)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return &out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.ExerciseRecord, error) {
	query :=
		`SELECT id, user_id, date, distance_meters, duration_ms FROM exercise_records
		 WHERE id = $1
		 `

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return rec, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.ExerciseRecord, error) {
	query :=
		`SELECT id, user_id, date, distance_meters, duration_ms FROM exercise_records
		 WHERE user_id = $1
		 `
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListByUserAndDate(ctx context.Context, userID string, from, to *time.Time) ([]*models.ExerciseRecord, error) {
	query :=
		`SELECT id, user_id, date, distance_meters, duration_ms FROM exercise_records
		 WHERE user_id = $1
		   AND ($2::date IS NULL OR date >= $2::date)
		   AND ($3::date IS NULL OR date <= $3::date)
		 `
	return r.list(ctx, query, userID, nullableDate(from), nullableDate(to))
}

func (r *PostgresRepository) Update(ctx context.Context, rec *models.ExerciseRecord) error {
	query :=
		`UPDATE exercise_records SET date = $2, distance_meters = $3, duration_ms = $4
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, rec.ID, rec.Date, rec.DistanceMeters, rec.Duration.Milliseconds())
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM exercise_records WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.ExerciseRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	result := make([]*models.ExerciseRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, dbx.MapError(err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.ExerciseRecord, error) {
	var (
		rec        models.ExerciseRecord
		durationMs int64
	)
	if err := s.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.DistanceMeters, &durationMs); err != nil {
		return nil, err
	}
	rec.Date = models.TruncateToDay(rec.Date)
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	return &rec, nil
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
