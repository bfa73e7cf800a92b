package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
)

// fakeConnectionRepo mirrors the persistence contract in memory, including
// the live-pair uniqueness and the compare-and-swap on status.
type fakeConnectionRepo struct {
	nextID uint
	rows   map[uint]*models.Connection

	findErr   error
	createErr error
}

func newFakeConnectionRepo() *fakeConnectionRepo {
	return &fakeConnectionRepo{nextID: 1, rows: map[uint]*models.Connection{}}
}

func (f *fakeConnectionRepo) FindByID(ctx context.Context, id uint) (*models.Connection, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	conn, ok := f.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *conn
	return &copied, nil
}

func (f *fakeConnectionRepo) FindLiveBetween(ctx context.Context, userA, userB uint) (*models.Connection, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	key := models.PairKey(userA, userB)
	for _, conn := range f.rows {
		if conn.PairKey == key && conn.Status != models.ConnectionStatusRejected {
			copied := *conn
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeConnectionRepo) Create(ctx context.Context, conn *models.Connection) error {
	if f.createErr != nil {
		return f.createErr
	}
	if existing, err := f.FindLiveBetween(ctx, conn.SenderID, conn.RecipientID); err == nil {
		return liveRowError(existing)
	}
	conn.ID = f.nextID
	conn.CreatedAt = time.Now()
	conn.UpdatedAt = conn.CreatedAt
	f.nextID++
	copied := *conn
	f.rows[conn.ID] = &copied
	return nil
}

func (f *fakeConnectionRepo) UpdateStatus(ctx context.Context, id uint, from, to models.ConnectionStatus) (*models.Connection, error) {
	conn, ok := f.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	if conn.Status != from {
		return nil, ErrInvalidState
	}
	conn.Status = to
	conn.UpdatedAt = time.Now()
	copied := *conn
	return &copied, nil
}

func (f *fakeConnectionRepo) Delete(ctx context.Context, id uint) error {
	delete(f.rows, id)
	return nil
}

func newTestService() (*ConnectionService, *fakeConnectionRepo) {
	repo := newFakeConnectionRepo()
	return NewConnectionService(repo), repo
}

func TestRequestCreatesPendingConnection(t *testing.T) {
	svc, _ := newTestService()

	conn, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, uint(1), conn.SenderID)
	assert.Equal(t, uint(2), conn.RecipientID)
	assert.Equal(t, models.ConnectionStatusPending, conn.Status)
	assert.Equal(t, models.PairKey(1, 2), conn.PairKey)
}

func TestRequestToSelfFails(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Request(context.Background(), 7, 7)
	assert.ErrorIs(t, err, ErrSelfConnection)
}

func TestRequestDuplicateFailsEitherDirection(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = svc.Request(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrAlreadyPending)

	// Reverse direction hits the same unordered pair
	_, err = svc.Request(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrAlreadyPending)
}

func TestRequestAfterAcceptFails(t *testing.T) {
	svc, _ := newTestService()

	conn, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), conn.ID, 2)
	require.NoError(t, err)

	_, err = svc.Request(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrAlreadyConnected)

	_, err = svc.Request(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrAlreadyConnected)
}

func TestAcceptByRecipient(t *testing.T) {
	svc, _ := newTestService()

	conn, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	accepted, err := svc.Accept(context.Background(), conn.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusAccepted, accepted.Status)

	// Second accept is no longer a valid transition
	_, err = svc.Accept(context.Background(), conn.ID, 2)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAcceptByRequesterFails(t *testing.T) {
	svc, _ := newTestService()

	conn, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), conn.ID, 1)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestAcceptByStrangerFails(t *testing.T) {
	svc, _ := newTestService()

	conn, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), conn.ID, 99)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestAcceptMissingConnection(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Accept(context.Background(), 42, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRejectByRecipient(t *testing.T) {
	svc, _ := newTestService()

	conn, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	rejected, err := svc.Reject(context.Background(), conn.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusRejected, rejected.Status)
}

func TestRejectBySenderCancelsRequest(t *testing.T) {
	svc, _ := newTestService()

	conn, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	// The requester withdrawing their own request goes through the same path
	rejected, err := svc.Reject(context.Background(), conn.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusRejected, rejected.Status)
}

func TestRejectByStrangerFails(t *testing.T) {
	svc, _ := newTestService()

	conn, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), conn.ID, 3)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestRejectAcceptedFails(t *testing.T) {
	svc, _ := newTestService()

	conn, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), conn.ID, 2)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), conn.ID, 2)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestFreshRequestAllowedAfterReject(t *testing.T) {
	svc, _ := newTestService()

	conn, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), conn.ID, 2)
	require.NoError(t, err)

	// A rejected connection does not block a new request between the pair
	fresh, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.NotEqual(t, conn.ID, fresh.ID)
	assert.Equal(t, models.ConnectionStatusPending, fresh.Status)
}

func TestRevokeAcceptedConnection(t *testing.T) {
	svc, _ := newTestService()

	conn, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), conn.ID, 2)
	require.NoError(t, err)

	// Either party may disconnect
	require.NoError(t, svc.Revoke(context.Background(), 1, 2))

	view, err := svc.Status(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "not_connected", view.Status)
}

func TestRevokeIsIdempotent(t *testing.T) {
	svc, _ := newTestService()

	// Nothing to revoke: still a no-op, not an error
	require.NoError(t, svc.Revoke(context.Background(), 1, 2))

	conn, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)
	_, err = svc.Accept(context.Background(), conn.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), 2, 1))
	require.NoError(t, svc.Revoke(context.Background(), 2, 1))
}

func TestRevokeLeavesPendingAlone(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	// Pending requests are withdrawn through Reject, not Revoke
	require.NoError(t, svc.Revoke(context.Background(), 1, 2))

	view, err := svc.Status(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "pending_sent", view.Status)
}

func TestStatusPerspectives(t *testing.T) {
	svc, _ := newTestService()

	conn, err := svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	sent, err := svc.Status(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "pending_sent", sent.Status)
	assert.Equal(t, conn.ID, sent.RequestID)

	received, err := svc.Status(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "pending_received", received.Status)
	assert.Equal(t, conn.ID, received.RequestID)

	_, err = svc.Accept(context.Background(), conn.ID, 2)
	require.NoError(t, err)

	connected, err := svc.Status(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "connected", connected.Status)
	require.NotNil(t, connected.Since)
}

func TestStatusWithSelfFails(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Status(context.Background(), 3, 3)
	assert.ErrorIs(t, err, ErrSelfConnection)
}

func TestInfrastructureErrorsPropagate(t *testing.T) {
	svc, repo := newTestService()

	boom := errors.New("database unavailable")
	repo.findErr = boom

	_, err := svc.Request(context.Background(), 1, 2)
	assert.ErrorIs(t, err, boom)

	_, err = svc.Status(context.Background(), 1, 2)
	assert.ErrorIs(t, err, boom)
}
