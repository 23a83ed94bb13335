package records

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var recordColumns = []string{"id", "user_id", "date", "distance_meters", "duration_ms"}

const (
	qInsert = `(?s)^INSERT\s+INTO\s+exercise_records\s*\(user_id,\s*date,\s*distance_meters,\s*duration_ms\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id\s*$`
	qGet    = `(?s)^SELECT\s+id,\s*user_id,\s*date,\s*distance_meters,\s*duration_ms\s+FROM\s+exercise_records\s+WHERE\s+id\s*=\s*\$1\s*$`
	qList   = `(?s)^SELECT\s+id,.*FROM\s+exercise_records\s+WHERE\s+user_id\s*=\s*\$1\s*$`
	qRange  = `(?s)^SELECT\s+id,.*FROM\s+exercise_records\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+\(\$2::date IS NULL OR date >= \$2::date\)\s+AND\s+\(\$3::date IS NULL OR date <= \$3::date\)\s*$`
	qUpdate = `(?s)^UPDATE\s+exercise_records\s+SET\s+date\s*=\s*\$2,\s*distance_meters\s*=\s*\$3,\s*duration_ms\s*=\s*\$4\s+WHERE\s+id\s*=\s*\$1\s*$`
	qDelete = `^DELETE\s+FROM\s+exercise_records\s+WHERE\s+id\s*=\s*\$1$`
)

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qInsert).
		WithArgs("u-1", day, 5000.0, int64(1800000)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	in := &models.ExerciseRecord{UserID: "u-1", Date: day, DistanceMeters: 5000, Duration: 30 * time.Minute}
	got, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "u-1", got.UserID)
	assert.Zero(t, in.ID, "input must not be mutated")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qInsert).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.ExerciseRecord{UserID: "u-1", Date: day, Duration: time.Minute})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qGet).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow(int64(7), "u-1", day, 3000.0, int64(1200000)))

	got, err := repo.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, &models.ExerciseRecord{ID: 7, UserID: "u-1", Date: day, DistanceMeters: 3000, Duration: 20 * time.Minute}, got)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qGet).WithArgs(int64(7)).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 7)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestListByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qList).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow(int64(1), "u-1", day, 5000.0, int64(1800000)).
			AddRow(int64(2), "u-1", day.AddDate(0, 0, 2), 3000.0, int64(1200000)))

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qList).WithArgs("u-1").WillReturnRows(sqlmock.NewRows(recordColumns))

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUser_ScanError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qList).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow("not-an-int", "u-1", day, 1.0, int64(1)))

	_, err := repo.ListByUser(context.Background(), "u-1")
	assert.Error(t, err)
}

func TestListByUserAndDate_Bounds(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	to := day.AddDate(0, 0, 7)
	mock.ExpectQuery(qRange).
		WithArgs("u-1", nil, to).
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow(int64(1), "u-1", day, 5000.0, int64(1800000)))

	got, err := repo.ListByUserAndDate(context.Background(), "u-1", nil, &to)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name    string
		result  driverResult
		execErr error
		wantErr error
	}{
		{name: "one row", result: driverResult{rows: 1}},
		{name: "missing", result: driverResult{rows: 0}, wantErr: common.ErrorNotFound},
		{name: "db error", execErr: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			exp := mock.ExpectExec(qUpdate).WithArgs(int64(3), day, 100.0, int64(60000))
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.result.rows))
			}

			err := repo.Update(context.Background(), &models.ExerciseRecord{ID: 3, UserID: "ignored", Date: day, DistanceMeters: 100, Duration: time.Minute})
			switch {
			case tt.execErr != nil:
				assert.ErrorContains(t, err, "db error")
			case tt.wantErr != nil:
				assert.True(t, errors.Is(err, tt.wantErr))
			default:
				assert.NoError(t, err)
			}
		})
	}
}

type driverResult struct{ rows int64 }

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(qDelete).WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 9))

	mock.ExpectExec(qDelete).WithArgs(int64(10)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, errors.Is(repo.Delete(context.Background(), 10), common.ErrorNotFound))

	mock.ExpectExec(qDelete).WithArgs(int64(11)).WillReturnResult(sqlmock.NewResult(0, 2))
	assert.ErrorContains(t, repo.Delete(context.Background(), 11), "unexpected rows affected")
}
