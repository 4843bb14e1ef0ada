package repositories

import (
	"context"
	"errors"
	"strings"

	"bounce.link/configs/configsdatabase"
	"bounce.link/configs/configslog"
	"bounce.link/models"
	"bounce.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IBounceRepository is the data access surface for the bounce aggregate.
// Column-map updates keep the respond transaction explicit about what it
// writes.
type IBounceRepository interface {
	Create(ctx context.Context, bounce *models.Bounce) error
	FindByID(ctx context.Context, id uint) (*models.Bounce, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Bounce, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Bounce, int64, error)
	FindInvitesByInviteeID(ctx context.Context, inviteeID uint) ([]models.BounceInvite, error)
	Update(ctx context.Context, id uint, data map[string]interface{}) error
	UpdateInvite(ctx context.Context, id uint, data map[string]interface{}) error
}

type BounceRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Bounce]
}

func NewBounceRepository() IBounceRepository {
	return newBounceRepository(configsdatabase.GetDB())
}

// NewBounceRepositoryTx binds the repository to an open transaction.
func NewBounceRepositoryTx(tx *gorm.DB) IBounceRepository {
	return newBounceRepository(tx)
}

func newBounceRepository(db *gorm.DB) *BounceRepository {
	base := NewBaseRepository[models.Bounce](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "date", "status", "title"})
	return &BounceRepository{db: db, base: base}
}

func (r *BounceRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// orderedInvites keeps the invite collection in deterministic waterfall
// order wherever it is loaded.
func orderedInvites(db *gorm.DB) *gorm.DB {
	return db.Order("bounce_invites.priority ASC, bounce_invites.id ASC")
}

// Create persists the bounce together with its invites in one insert.
func (r *BounceRepository) Create(ctx context.Context, bounce *models.Bounce) error {
	if bounce == nil || len(bounce.Invites) == 0 {
		return errors.New("a bounce cannot be created without invites")
	}
	return r.getDB(ctx).Create(bounce).Error
}

func (r *BounceRepository) FindByID(ctx context.Context, id uint) (*models.Bounce, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var bounce models.Bounce
	err := r.getDB(ctx).
		Preload("Invites", orderedInvites).
		Preload("Invites.Invitee").
		Preload("Creator").
		First(&bounce, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("BounceRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &bounce, nil
}

// FindByIDForUpdate loads the aggregate with the bounce row locked. Only
// meaningful inside a transaction; the row lock serializes concurrent
// respond calls per bounce.
func (r *BounceRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Bounce, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var bounce models.Bounce
	err := r.getDB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Invites", orderedInvites).
		First(&bounce, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("BounceRepository.FindByIDForUpdate: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &bounce, nil
}

func (r *BounceRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Bounce, int64, error) {
	var bounces []models.Bounce
	var totalCount int64
	db := r.getDB(ctx)

	query := db.Model(&models.Bounce{})
	if params.Status != "" {
		query = query.Where("bounces.status = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("BounceRepository.Count (Paginated): DB error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return bounces, 0, nil
	}

	sortBy := params.SortBy
	if !r.base.IsAllowedSortColumn(sortBy) {
		configslog.SLog.Warnf("Unknown bounce sort column %q requested, falling back to created_at.", sortBy)
		sortBy = "created_at"
	}
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}

	err := query.
		Order("bounces." + sortBy + " " + orderBy).
		Preload("Invites", orderedInvites).
		Preload("Invites.Invitee").
		Preload("Creator").
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&bounces).Error
	if err != nil {
		configslog.Log.Error("BounceRepository.Find (Paginated): DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return bounces, totalCount, nil
}

// FindInvitesByInviteeID returns every invite held by a user, newest bounce
// first, with the parent bounce preloaded for summary annotation.
func (r *BounceRepository) FindInvitesByInviteeID(ctx context.Context, inviteeID uint) ([]models.BounceInvite, error) {
	if inviteeID == 0 {
		return nil, errors.New("invalid invitee ID")
	}
	var invites []models.BounceInvite
	err := r.getDB(ctx).
		Preload("Bounce").
		Where("invitee_id = ?", inviteeID).
		Order("id DESC").
		Find(&invites).Error
	if err != nil {
		configslog.Log.Error("BounceRepository.FindInvitesByInviteeID: DB error", zap.Uint("inviteeID", inviteeID), zap.Error(err))
		return nil, err
	}
	return invites, nil
}

// Update writes the given bounce columns. RowsAffected zero maps to
// ErrNotFound so callers inside a transaction can abort.
func (r *BounceRepository) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	if id == 0 {
		return ErrNotFound
	}
	result := r.getDB(ctx).Model(&models.Bounce{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		configslog.Log.Error("BounceRepository.Update: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BounceRepository) UpdateInvite(ctx context.Context, id uint, data map[string]interface{}) error {
	if id == 0 {
		return ErrNotFound
	}
	result := r.getDB(ctx).Model(&models.BounceInvite{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		configslog.Log.Error("BounceRepository.UpdateInvite: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IBounceRepository = (*BounceRepository)(nil)
