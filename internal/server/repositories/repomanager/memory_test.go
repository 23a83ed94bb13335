package repomanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_SeedsRoles(t *testing.T) {
	m := NewInMemoryRepositoryManager()
	ctx := context.Background()
	require.NoError(t, m.RunMigrations(ctx))

	for _, role := range models.AllRoles {
		ok, err := m.Users().RoleExists(ctx, role)
		require.NoError(t, err)
		assert.True(t, ok, role)
	}
}

func TestInMemory_DeleteUserCascadesToRecords(t *testing.T) {
	m := NewInMemoryRepositoryManager()
	ctx := context.Background()

	alice, err := m.Users().Create(ctx, &models.User{UserName: "alice"})
	require.NoError(t, err)
	bob, err := m.Users().Create(ctx, &models.User{UserName: "bob"})
	require.NoError(t, err)

	for _, owner := range []string{alice.ID, alice.ID, bob.ID} {
		_, err := m.Records().Create(ctx, &models.ExerciseRecord{UserID: owner, Date: time.Now(), Duration: time.Minute})
		require.NoError(t, err)
	}

	require.NoError(t, m.Users().Delete(ctx, alice.ID))

	left, err := m.Records().ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	kept, err := m.Records().ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestInMemory_WithTx(t *testing.T) {
	m := NewInMemoryRepositoryManager()
	ctx := context.Background()
	boom := errors.New("boom")

	err := m.WithTx(ctx, func(ctx context.Context, tx RepositoryManager) error {
		return tx.WithTx(ctx, func(ctx context.Context, inner RepositoryManager) error {
			_, err := inner.Users().Create(ctx, &models.User{UserName: "carol"})
			require.NoError(t, err)
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	err = m.WithTx(cctx, func(context.Context, RepositoryManager) error {
		t.Fatal("must not run")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInMemory_Ping(t *testing.T) {
	m := NewInMemoryRepositoryManager()
	require.NoError(t, m.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Ping(ctx), context.Canceled)
}
