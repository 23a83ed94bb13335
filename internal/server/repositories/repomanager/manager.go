// Package repomanager hands out the repositories of one storage backend and
// scopes them to a transaction when several writes must land together.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/joggingtracker/internal/server/repositories/records"
	"github.com/dmitrijs2005/joggingtracker/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Records() records.Repository

	// WithTx runs fn with a manager whose repositories share one
	// transaction. fn's error rolls the transaction back.
	WithTx(ctx context.Context, fn func(ctx context.Context, m RepositoryManager) error) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}
