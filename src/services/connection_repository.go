package services

import (
	"context"
	"errors"

	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
	"gorm.io/gorm"
)

// GormConnectionRepository backs the lifecycle with the shared GORM handle.
// The live-pair unique index and the compare-and-swap in UpdateStatus make
// each transition atomic; callers never sequence writes themselves.
type GormConnectionRepository struct {
	db *gorm.DB
}

func NewGormConnectionRepository(db *gorm.DB) *GormConnectionRepository {
	return &GormConnectionRepository{db: db}
}

func (r *GormConnectionRepository) FindByID(ctx context.Context, id uint) (*models.Connection, error) {
	var conn models.Connection
	err := r.db.WithContext(ctx).First(&conn, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conn, nil
}

func (r *GormConnectionRepository) FindLiveBetween(ctx context.Context, userA, userB uint) (*models.Connection, error) {
	var conn models.Connection
	err := r.db.WithContext(ctx).
		Where("pair_key = ? AND status <> ?", models.PairKey(userA, userB), models.ConnectionStatusRejected).
		First(&conn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conn, nil
}

func (r *GormConnectionRepository) Create(ctx context.Context, conn *models.Connection) error {
	err := r.db.WithContext(ctx).Create(conn).Error
	if err == nil {
		return nil
	}

	// Lost the race against a concurrent request for the same pair. The row
	// that won decides which failure the caller sees.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		existing, findErr := r.FindLiveBetween(ctx, conn.SenderID, conn.RecipientID)
		if findErr == nil {
			return liveRowError(existing)
		}
		return ErrAlreadyPending
	}

	return err
}

func (r *GormConnectionRepository) UpdateStatus(ctx context.Context, id uint, from, to models.ConnectionStatus) (*models.Connection, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)

	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Someone else transitioned the row first
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrInvalidState
	}

	return r.FindByID(ctx, id)
}

func (r *GormConnectionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Connection{}, id).Error
}
