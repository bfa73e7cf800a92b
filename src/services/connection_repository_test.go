package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSQLiteRepo runs the repository against a real SQLite schema so the
// partial unique index and the duplicate-key mapping are exercised, not
// just mirrored by a fake.
func newSQLiteRepo(t *testing.T) *GormConnectionRepository {
	t.Helper()

	// Named shared-cache DSN so every pooled connection sees the same
	// in-memory database, isolated per test
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Connection{}))

	return NewGormConnectionRepository(db)
}

func pendingConnection(sender, recipient uint) *models.Connection {
	return &models.Connection{
		SenderID:    sender,
		RecipientID: recipient,
		Status:      models.ConnectionStatusPending,
		PairKey:     models.PairKey(sender, recipient),
	}
}

func TestLivePairIndexBlocksDoubleInsert(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, pendingConnection(1, 2)))

	// Same direction
	err := repo.Create(ctx, pendingConnection(1, 2))
	assert.ErrorIs(t, err, ErrAlreadyPending)

	// Opposite direction canonicalizes to the same pair key
	err = repo.Create(ctx, pendingConnection(2, 1))
	assert.ErrorIs(t, err, ErrAlreadyPending)
}

func TestLivePairIndexReportsAcceptedRow(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	conn := pendingConnection(1, 2)
	require.NoError(t, repo.Create(ctx, conn))

	_, err := repo.UpdateStatus(ctx, conn.ID, models.ConnectionStatusPending, models.ConnectionStatusAccepted)
	require.NoError(t, err)

	err = repo.Create(ctx, pendingConnection(2, 1))
	assert.ErrorIs(t, err, ErrAlreadyConnected)
}

func TestRejectedRowDoesNotBlockFreshInsert(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	conn := pendingConnection(1, 2)
	require.NoError(t, repo.Create(ctx, conn))

	_, err := repo.UpdateStatus(ctx, conn.ID, models.ConnectionStatusPending, models.ConnectionStatusRejected)
	require.NoError(t, err)

	// The partial index only covers live rows, so the rejected one stays
	// as history without pinning the pair
	fresh := pendingConnection(1, 2)
	require.NoError(t, repo.Create(ctx, fresh))
	assert.NotEqual(t, conn.ID, fresh.ID)

	live, err := repo.FindLiveBetween(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, live.ID)
	assert.Equal(t, models.ConnectionStatusPending, live.Status)
}

func TestSoftDeletedRowDoesNotBlockFreshInsert(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	conn := pendingConnection(3, 4)
	require.NoError(t, repo.Create(ctx, conn))

	_, err := repo.UpdateStatus(ctx, conn.ID, models.ConnectionStatusPending, models.ConnectionStatusAccepted)
	require.NoError(t, err)

	// Revoking soft-deletes the row; the index excludes deleted rows so
	// the pair can connect again later
	require.NoError(t, repo.Delete(ctx, conn.ID))

	_, err = repo.FindLiveBetween(ctx, 3, 4)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Create(ctx, pendingConnection(4, 3)))
}

func TestUpdateStatusIsCompareAndSwap(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	conn := pendingConnection(1, 2)
	require.NoError(t, repo.Create(ctx, conn))

	_, err := repo.UpdateStatus(ctx, conn.ID, models.ConnectionStatusPending, models.ConnectionStatusAccepted)
	require.NoError(t, err)

	// The row already left pending, so a racing transition loses
	_, err = repo.UpdateStatus(ctx, conn.ID, models.ConnectionStatusPending, models.ConnectionStatusRejected)
	assert.ErrorIs(t, err, ErrInvalidState)

	// A vanished row is reported as missing, not as a state conflict
	_, err = repo.UpdateStatus(ctx, 999, models.ConnectionStatusPending, models.ConnectionStatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLifecycleOnSQLiteEndToEnd(t *testing.T) {
	repo := newSQLiteRepo(t)
	svc := NewConnectionService(repo)
	ctx := context.Background()

	conn, err := svc.Request(ctx, 1, 2)
	require.NoError(t, err)

	_, err = svc.Request(ctx, 2, 1)
	assert.ErrorIs(t, err, ErrAlreadyPending)

	_, err = svc.Accept(ctx, conn.ID, 2)
	require.NoError(t, err)

	_, err = svc.Request(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrAlreadyConnected)

	require.NoError(t, svc.Revoke(ctx, 2, 1))

	// Round trip: after revoke the pair can start over
	again, err := svc.Request(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusPending, again.Status)
}
