package services

import (
	"context"
	"time"

	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
)

// ConnectionRepository is the persistence contract of the lifecycle. Each
// call must be atomic with respect to the live-pair unique index.
type ConnectionRepository interface {
	// FindByID loads a connection or returns ErrNotFound
	FindByID(ctx context.Context, id uint) (*models.Connection, error)
	// FindLiveBetween returns the non-rejected connection of the unordered
	// pair, or ErrNotFound when the pair is not linked
	FindLiveBetween(ctx context.Context, userA, userB uint) (*models.Connection, error)
	// Create inserts a connection; a live-pair collision returns
	// ErrAlreadyPending or ErrAlreadyConnected depending on the surviving row
	Create(ctx context.Context, conn *models.Connection) error
	// UpdateStatus is a compare-and-swap: the row must still be in the `from`
	// status or the transition fails with ErrInvalidState
	UpdateStatus(ctx context.Context, id uint, from, to models.ConnectionStatus) (*models.Connection, error)
	// Delete removes a connection row
	Delete(ctx context.Context, id uint) error
}

// ConnectionStatusView is the pair state resolved from one user's
// perspective for the status endpoint.
type ConnectionStatusView struct {
	Status    string     `json:"status"` // connected | pending_sent | pending_received | not_connected
	RequestID uint       `json:"requestId,omitempty"`
	Since     *time.Time `json:"since,omitempty"`
}

// ConnectionService owns the request/accept/reject/revoke state machine
// between two users and the authorization rules for each transition.
type ConnectionService struct {
	repo ConnectionRepository
}

func NewConnectionService(repo ConnectionRepository) *ConnectionService {
	return &ConnectionService{repo: repo}
}

// Request creates a pending connection from requester to recipient. Fails
// with ErrAlreadyConnected or ErrAlreadyPending when a live row already
// exists in either direction. A previously rejected connection does not
// block a fresh request.
func (s *ConnectionService) Request(ctx context.Context, requesterID, recipientID uint) (*models.Connection, error) {
	if requesterID == recipientID {
		return nil, ErrSelfConnection
	}

	existing, err := s.repo.FindLiveBetween(ctx, requesterID, recipientID)
	if err == nil {
		return nil, liveRowError(existing)
	}
	if err != ErrNotFound {
		return nil, err
	}

	conn := &models.Connection{
		SenderID:    requesterID,
		RecipientID: recipientID,
		Status:      models.ConnectionStatusPending,
		PairKey:     models.PairKey(requesterID, recipientID),
	}

	// The unique index backstops the check above: if both users request each
	// other at the same time, one insert loses and is reported as a
	// duplicate, never as a second live row.
	if err := s.repo.Create(ctx, conn); err != nil {
		return nil, err
	}

	return conn, nil
}

// Accept transitions a pending request to accepted. Only the recipient may
// accept; the requester gets ErrNotAuthorized.
func (s *ConnectionService) Accept(ctx context.Context, connectionID, actingUserID uint) (*models.Connection, error) {
	conn, err := s.repo.FindByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	if conn.RecipientID != actingUserID {
		return nil, ErrNotAuthorized
	}

	if conn.Status != models.ConnectionStatusPending {
		return nil, ErrInvalidState
	}

	return s.repo.UpdateStatus(ctx, conn.ID, models.ConnectionStatusPending, models.ConnectionStatusAccepted)
}

// Reject transitions a pending request to rejected. Either party may do it:
// the recipient declines an incoming request, the requester cancels their
// own sent one. Both clear the relationship the same way.
func (s *ConnectionService) Reject(ctx context.Context, connectionID, actingUserID uint) (*models.Connection, error) {
	conn, err := s.repo.FindByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	if !conn.Involves(actingUserID) {
		return nil, ErrNotAuthorized
	}

	if conn.Status != models.ConnectionStatusPending {
		return nil, ErrInvalidState
	}

	return s.repo.UpdateStatus(ctx, conn.ID, models.ConnectionStatusPending, models.ConnectionStatusRejected)
}

// Revoke removes an accepted connection between the acting user and the
// other user. Idempotent: revoking a pair that is not connected is a no-op.
func (s *ConnectionService) Revoke(ctx context.Context, actingUserID, otherUserID uint) error {
	if actingUserID == otherUserID {
		return ErrSelfConnection
	}

	conn, err := s.repo.FindLiveBetween(ctx, actingUserID, otherUserID)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	if conn.Status != models.ConnectionStatusAccepted {
		// Only an accepted connection can be revoked; a pending request is
		// withdrawn through Reject.
		return nil
	}

	return s.repo.Delete(ctx, conn.ID)
}

// Status resolves the pair state from the acting user's perspective.
// pending_sent vs pending_received is derived by comparing the stored
// requester id with the caller's own id.
func (s *ConnectionService) Status(ctx context.Context, userID, otherUserID uint) (ConnectionStatusView, error) {
	if userID == otherUserID {
		return ConnectionStatusView{}, ErrSelfConnection
	}

	conn, err := s.repo.FindLiveBetween(ctx, userID, otherUserID)
	if err == ErrNotFound {
		return ConnectionStatusView{Status: "not_connected"}, nil
	}
	if err != nil {
		return ConnectionStatusView{}, err
	}

	switch conn.Status {
	case models.ConnectionStatusAccepted:
		since := conn.UpdatedAt
		return ConnectionStatusView{Status: "connected", Since: &since}, nil
	case models.ConnectionStatusPending:
		if conn.SenderID == userID {
			return ConnectionStatusView{Status: "pending_sent", RequestID: conn.ID}, nil
		}
		return ConnectionStatusView{Status: "pending_received", RequestID: conn.ID}, nil
	default:
		return ConnectionStatusView{Status: "not_connected"}, nil
	}
}

// liveRowError maps an existing live row onto the matching request failure
func liveRowError(conn *models.Connection) error {
	if conn.Status == models.ConnectionStatusAccepted {
		return ErrAlreadyConnected
	}
	return ErrAlreadyPending
}
