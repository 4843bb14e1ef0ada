package repositories

import (
	"context"

	"bounce.link/configs/configsdatabase"
	"bounce.link/configs/configslog"
	"bounce.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository is the data access surface for users.
type IUserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
}

type UserRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.User]
}

func NewUserRepository() IUserRepository {
	db := configsdatabase.GetDB()
	return &UserRepository{db: db, base: NewBaseRepository[models.User](db)}
}

// NewUserRepositoryTx binds the repository to an open transaction.
func NewUserRepositoryTx(tx *gorm.DB) IUserRepository {
	return &UserRepository{db: tx, base: NewBaseRepository[models.User](tx)}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return r.base.FindByID(ctx, id)
}

// FindByIDs returns the users matching ids. Missing ids are not an error
// here; callers compare lengths to detect them.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.getDB(ctx).Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		configslog.Log.Error("UserRepository.FindByIDs: DB error", zap.Uints("ids", ids), zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.getDB(ctx).Order("id ASC").Find(&users).Error
	if err != nil {
		configslog.Log.Error("UserRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return users, nil
}

var _ IUserRepository = (*UserRepository)(nil)
