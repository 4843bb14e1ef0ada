package migrations

import (
	"bounce.link/configs/configslog"
	"bounce.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateUsersTable creates/updates the users table.
func MigrateUsersTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating users table...")
	if err := db.AutoMigrate(&models.User{}); err != nil {
		configslog.Log.Error("Failed to migrate users table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Users table migrated successfully")
	return nil
}
