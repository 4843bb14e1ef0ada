package seeders

import (
	"errors"

	"bounce.link/configs/configslog"
	"bounce.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// demoUserNames is the fixed seed set every operation assumes to exist.
var demoUserNames = []string{
	"Cameron",
	"Alex",
	"Jordan",
	"Sam",
	"Riley",
}

// SeedUsers creates the demo users that are missing. Existing users are
// left untouched, so the seeder is safe to run repeatedly.
func SeedUsers(db *gorm.DB) error {
	var createdCount int64
	var errorOccurred bool

	configslog.SLog.Info("Seeding demo users...")

	for _, name := range demoUserNames {
		var existing models.User
		result := db.Where("name = ?", name).First(&existing)

		if result.Error == nil {
			configslog.SLog.Debugf("User %q already exists, skipping.", name)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Database error while checking seed user",
				zap.String("name", name),
				zap.Error(result.Error),
			)
			errorOccurred = true
			continue
		}

		user := models.User{Name: name}
		if err := db.Create(&user).Error; err != nil {
			configslog.Log.Error("Seed user could not be created",
				zap.String("name", name),
				zap.Error(err),
			)
			errorOccurred = true
			continue
		}

		configslog.SLog.Infof("Seed user %q created (ID: %d).", name, user.ID)
		createdCount++
	}

	if createdCount > 0 {
		configslog.SLog.Infof("%d new demo users seeded.", createdCount)
	} else if !errorOccurred {
		configslog.SLog.Info("All demo users already exist, nothing to seed.")
	}

	if errorOccurred {
		return errors.New("at least one error occurred while seeding demo users")
	}
	return nil
}
