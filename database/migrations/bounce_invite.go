package migrations

import (
	"bounce.link/configs/configslog"
	"bounce.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateBounceInvitesTable creates/updates the bounce_invites table. The
// bounces and users tables must already exist.
func MigrateBounceInvitesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating bounce_invites table...")
	if err := db.AutoMigrate(&models.BounceInvite{}); err != nil {
		configslog.Log.Error("Failed to migrate bounce_invites table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Bounce_invites table migrated successfully")
	return nil
}
