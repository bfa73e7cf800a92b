package lib

import (
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
)

// AutoMigrate runs all database migrations
func AutoMigrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.CarrierReference{},
		&models.Connection{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
		&models.SponsoredAd{},
	)

	if err != nil {
		Log.Fatalw("failed to migrate database", "error", err)
	}

	Log.Infow("database migration completed")
}
