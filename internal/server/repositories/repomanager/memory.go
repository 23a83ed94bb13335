package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
	"github.com/dmitrijs2005/joggingtracker/internal/server/repositories/records"
	"github.com/dmitrijs2005/joggingtracker/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory. Deleting a
// user drops that user's records, mirroring the Postgres cascade.
type InMemoryRepositoryManager struct {
	users   *users.MemoryRepository
	records *records.MemoryRepository

	// txMu serialises WithTx blocks. Writes are applied immediately and
	// are not undone when fn fails.
	txMu *sync.Mutex
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	u := users.NewMemoryRepository()
	r := records.NewMemoryRepository()
	u.OnDelete(r.DeleteByUser)
	return &InMemoryRepositoryManager{users: u, records: r, txMu: &sync.Mutex{}}
}

// RunMigrations seeds the recognised roles.
func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	for _, role := range models.AllRoles {
		if err := m.users.CreateRole(ctx, role); err != nil {
			return err
		}
	}
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Records() records.Repository {
	return m.records
}

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, m RepositoryManager) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, &inMemoryTx{m})
}

func (m *InMemoryRepositoryManager) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}

// inMemoryTx is handed to WithTx callbacks; nested WithTx calls run inline
// instead of deadlocking on txMu.
type inMemoryTx struct {
	*InMemoryRepositoryManager
}

func (t *inMemoryTx) WithTx(ctx context.Context, fn func(ctx context.Context, m RepositoryManager) error) error {
	return fn(ctx, t)
}
