package migrations

import (
	"bounce.link/configs/configslog"
	"bounce.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateBouncesTable creates/updates the bounces table. The users table
// must already exist.
func MigrateBouncesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating bounces table...")
	if err := db.AutoMigrate(&models.Bounce{}); err != nil {
		configslog.Log.Error("Failed to migrate bounces table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Bounces table migrated successfully")
	return nil
}
