package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/logging"
	"github.com/dmitrijs2005/joggingtracker/internal/server/auth"
	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
	"github.com/dmitrijs2005/joggingtracker/internal/server/repositories/records"
	"github.com/dmitrijs2005/joggingtracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/joggingtracker/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// week 10 of 2024 starts on Monday 4 March
var (
	mon10 = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	wed10 = time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	mon11 = time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
)

type env struct {
	manager   *repomanager.InMemoryRepositoryManager
	directory *IdentityDirectory
	records   *RecordStore
	users     *UserService
	tokens    *TokenService
	codec     *auth.TokenCodec
}

func newEnv(t *testing.T) *env {
	t.Helper()
	m := repomanager.NewInMemoryRepositoryManager()
	require.NoError(t, m.RunMigrations(context.Background()))

	dir, err := NewIdentityDirectory(m, bcrypt.MinCost)
	require.NoError(t, err)

	codec, err := auth.NewTokenCodec([]byte("test-secret"), "joggingtracker", "joggingtracker-clients", 24*time.Hour)
	require.NoError(t, err)

	log := logging.Discard()
	return &env{
		manager:   m,
		directory: dir,
		records:   NewRecordStore(m, log),
		users:     NewUserService(dir, log),
		tokens:    NewTokenService(dir, codec, "jogging_session", log),
		codec:     codec,
	}
}

func (e *env) regularUser(t *testing.T, name string) *models.User {
	t.Helper()
	r := e.users.CreateRegularUser(context.Background(), NewUser{
		UserName: name, Password: name + "-pw", Email: name + "@example.com", FirstName: name, LastName: "Test",
	})
	require.True(t, r.Ok(), r.Message())
	return r.MustValue()
}

var errConnReset = errors.New("pq: connection reset by peer at 10.0.0.7:5432")

// brokenManager fails every record operation with a driver-looking error.
type brokenManager struct {
	users *users.MemoryRepository
}

func (b *brokenManager) RunMigrations(context.Context) error { return nil }
func (b *brokenManager) Users() users.Repository             { return b.users }
func (b *brokenManager) Records() records.Repository         { return brokenRecords{} }
func (b *brokenManager) Ping(context.Context) error          { return nil }
func (b *brokenManager) Close() error                        { return nil }

func (b *brokenManager) WithTx(ctx context.Context, fn func(context.Context, repomanager.RepositoryManager) error) error {
	return fn(ctx, b)
}

type brokenRecords struct{}

func (brokenRecords) Create(context.Context, *models.ExerciseRecord) (*models.ExerciseRecord, error) {
	return nil, errConnReset
}
func (brokenRecords) Get(context.Context, int64) (*models.ExerciseRecord, error) {
	return nil, errConnReset
}
func (brokenRecords) ListByUser(context.Context, string) ([]*models.ExerciseRecord, error) {
	return nil, errConnReset
}
func (brokenRecords) ListByUserAndDate(context.Context, string, *time.Time, *time.Time) ([]*models.ExerciseRecord, error) {
	return nil, errConnReset
}
func (brokenRecords) Update(context.Context, *models.ExerciseRecord) error { return errConnReset }
func (brokenRecords) Delete(context.Context, int64) error                  { return errConnReset }
