package database

import (
	"bounce.link/configs/configslog"
	"bounce.link/database/migrations"
	"bounce.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize runs migrations and seeders inside one transaction, according
// to the flags.
func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("Neither migrate nor seed was requested, nothing to do.")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("Database transaction could not be started", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("Database initialization failed (panic)", zap.Any("panic_info", r))
		} else if err := tx.Error; err != nil && err != gorm.ErrInvalidTransaction {
			configslog.SLog.Warn("Rolling back because initialization reported an error.", zap.Error(err))
			rbErr := tx.Rollback().Error
			if rbErr != nil && rbErr != gorm.ErrInvalidTransaction {
				configslog.Log.Error("Additional error during rollback", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("Database initialization starting...")

	if migrate {
		configslog.SLog.Info("Running migrations...")
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("Migration failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("Migrations completed.")
	} else {
		configslog.SLog.Info("Migrate flag not set, skipping migrations.")
	}

	if seed {
		configslog.SLog.Info("Running seeders...")
		if err := CheckAndRunSeeders(tx); err != nil {
			configslog.Log.Error("Seeding failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("Seeders completed.")
	} else {
		configslog.SLog.Info("Seed flag not set, skipping seeders.")
	}

	configslog.SLog.Info("Committing...")
	if err := tx.Commit().Error; err != nil {
		tx.Error = err
		configslog.Log.Error("Commit failed", zap.Error(err))
		return
	}

	configslog.SLog.Info("Database initialization completed successfully")
}

// RunMigrationsInOrder migrates the tables respecting their foreign key
// dependencies: users before bounces before invites.
func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info(" -> Running user migrations...")
	if err := migrations.MigrateUsersTable(db); err != nil {
		configslog.Log.Error("Users table migration failed", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> User migrations completed.")

	configslog.SLog.Info(" -> Running bounce migrations...")
	if err := migrations.MigrateBouncesTable(db); err != nil {
		configslog.Log.Error("Bounces table migration failed", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Bounce migrations completed.")

	configslog.SLog.Info(" -> Running bounce invite migrations...")
	if err := migrations.MigrateBounceInvitesTable(db); err != nil {
		configslog.Log.Error("Bounce_invites table migration failed", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Bounce invite migrations completed.")

	configslog.SLog.Info("All migrations ran successfully.")
	return nil
}

// CheckAndRunSeeders runs the idempotent seeders.
func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info(" -> Running user seeder...")
	if err := seeders.SeedUsers(db); err != nil {
		configslog.Log.Error("Users table could not be seeded", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> User seeder completed.")

	configslog.SLog.Info("All seeders checked/ran successfully.")
	return nil
}
