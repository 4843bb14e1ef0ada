package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bounce.link/configs/configsdatabase"
	"bounce.link/configs/configslog"
	"bounce.link/models"
	"bounce.link/pkg/queryparams"
	"bounce.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BounceServiceError is the typed error vocabulary of the bounce service.
type BounceServiceError string

func (e BounceServiceError) Error() string { return string(e) }

const (
	ErrBounceNotFound        BounceServiceError = "bounce not found"
	ErrBounceCreationFailed  BounceServiceError = "bounce could not be created"
	ErrBounceRespondFailed   BounceServiceError = "bounce response could not be recorded"
	ErrBounceInvalidInput    BounceServiceError = "invalid bounce input"
	ErrBounceTitleRequired   BounceServiceError = "bounce title is required"
	ErrBounceDateRequired    BounceServiceError = "bounce date is required"
	ErrInviteeListRequired   BounceServiceError = "at least one invitee is required"
	ErrCreatorNotFound       BounceServiceError = "creator not found"
	ErrInviteeNotFound       BounceServiceError = "invitee not found"
	ErrInvalidResponseStatus BounceServiceError = "response status must be accepted or declined"
	ErrNoActiveInvitee       BounceServiceError = "bounce has no active invitee"
	ErrBounceInconsistent    BounceServiceError = "bounce state is inconsistent"
)

// InviteeInput is one (user, priority) entry of the ordered invitee list.
type InviteeInput struct {
	UserID   uint `json:"user_id"`
	Priority int  `json:"priority"`
}

// CreateBounceInput carries everything needed to open a bounce.
type CreateBounceInput struct {
	Title    string
	Date     time.Time
	Invitees []InviteeInput
}

// BounceSummary is the parent-bounce snapshot attached to a user's invite.
type BounceSummary struct {
	ID               uint                `json:"id"`
	Title            string              `json:"title"`
	Date             time.Time           `json:"date"`
	Status           models.BounceStatus `json:"status"`
	CreatorID        uint                `json:"creator_id"`
	CurrentInviteeID *uint               `json:"current_invitee_id"`
}

// UserInviteEntry annotates one invite with its bounce summary.
// IsCurrentInvitee can be true for a history entry: acceptance never clears
// CurrentInviteeID, so the acceptor stays "current" on a terminal bounce.
type UserInviteEntry struct {
	Invite           models.BounceInvite `json:"invite"`
	Bounce           BounceSummary       `json:"bounce"`
	IsCurrentInvitee bool                `json:"is_current_invitee"`
}

// UserInvitesResult partitions a user's invites into the one awaiting their
// answer and everything else.
type UserInvitesResult struct {
	Pending []UserInviteEntry `json:"pending"`
	History []UserInviteEntry `json:"history"`
}

// IBounceService owns the waterfall: creating a bounce activates the
// highest-priority invitee, declines escalate, an accept locks the bounce.
type IBounceService interface {
	CreateBounce(ctx context.Context, creatorID uint, input CreateBounceInput) (*models.Bounce, error)
	RespondToInvite(ctx context.Context, bounceID uint, status models.InviteStatus) (*models.Bounce, error)
	GetBounceByID(ctx context.Context, id uint) (*models.Bounce, error)
	GetBouncesPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetInvitesForUser(ctx context.Context, userID uint) (*UserInvitesResult, error)
}

type BounceService struct {
	repo        repositories.IBounceRepository
	userRepo    repositories.IUserRepository
	userService IUserService
	db          *gorm.DB
}

func NewBounceService() IBounceService {
	return &BounceService{
		repo:        repositories.NewBounceRepository(),
		userRepo:    repositories.NewUserRepository(),
		userService: NewUserService(),
		db:          configsdatabase.GetDB(),
	}
}

// ValidateCreateBounceInput checks the input shape only; referenced users
// are verified against the store by CreateBounce.
func ValidateCreateBounceInput(input CreateBounceInput) error {
	if input.Title == "" {
		return ErrBounceTitleRequired
	}
	if input.Date.IsZero() {
		return ErrBounceDateRequired
	}
	if len(input.Invitees) == 0 {
		return ErrInviteeListRequired
	}
	seen := make(map[uint]struct{}, len(input.Invitees))
	for _, invitee := range input.Invitees {
		if invitee.UserID == 0 {
			return fmt.Errorf("%w: invitee user ID is required", ErrBounceInvalidInput)
		}
		if _, dup := seen[invitee.UserID]; dup {
			return fmt.Errorf("%w: duplicate invitee user %d", ErrBounceInvalidInput, invitee.UserID)
		}
		seen[invitee.UserID] = struct{}{}
	}
	return nil
}

// CreateBounce validates, then in one transaction persists the bounce with
// all invites pending and activates the highest-priority invitee. Nothing
// is written on any error path.
func (s *BounceService) CreateBounce(ctx context.Context, creatorID uint, input CreateBounceInput) (*models.Bounce, error) {
	if err := ValidateCreateBounceInput(input); err != nil {
		if errors.Is(err, ErrBounceInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrBounceInvalidInput, err)
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("%w: creator ID is required", ErrBounceInvalidInput)
	}

	if err := s.verifyReferencedUsers(ctx, creatorID, input.Invitees); err != nil {
		return nil, err
	}

	var createdID uint
	var firstInviteeID uint
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		bounceRepoTx := repositories.NewBounceRepositoryTx(tx)

		bounce := models.Bounce{
			Title:     input.Title,
			Date:      input.Date.UTC(),
			CreatorID: creatorID,
			Status:    models.BounceStatusPending,
		}
		for _, invitee := range input.Invitees {
			bounce.Invites = append(bounce.Invites, models.BounceInvite{
				InviteeID: invitee.UserID,
				Priority:  invitee.Priority,
				Status:    models.InviteStatusPending,
			})
		}
		if err := bounceRepoTx.Create(ctx, &bounce); err != nil {
			return ErrBounceCreationFailed
		}

		// Invite IDs are assigned in insertion order, so the aggregate's
		// (priority, id) tie-break matches the submitted list order.
		promoted := bounce.ActivateNext(time.Now().UTC())
		if promoted == nil {
			return ErrBounceCreationFailed
		}
		if err := bounceRepoTx.UpdateInvite(ctx, promoted.ID, map[string]interface{}{
			"status":     promoted.Status,
			"invited_at": promoted.InvitedAt,
		}); err != nil {
			return ErrBounceCreationFailed
		}
		if err := bounceRepoTx.Update(ctx, bounce.ID, map[string]interface{}{
			"status":             bounce.Status,
			"current_invitee_id": bounce.CurrentInviteeID,
		}); err != nil {
			return ErrBounceCreationFailed
		}

		createdID = bounce.ID
		firstInviteeID = promoted.InviteeID
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("CreateBounce transaction failed", zap.Uint("creatorID", creatorID), zap.Error(txErr))
		return nil, txErr
	}

	// The read-back runs outside the transaction; a concurrent respond may
	// already have advanced the bounce, so only tx-captured values are
	// logged unconditionally.
	created, err := s.GetBounceByID(ctx, createdID)
	if err != nil {
		return nil, err
	}
	configslog.SLog.Infof("Bounce created: ID %d, title %q, %d invitees, first invitee %d",
		created.ID, created.Title, len(created.Invites), firstInviteeID)
	return created, nil
}

// verifyReferencedUsers ensures the creator and every invitee exist before
// anything is persisted.
func (s *BounceService) verifyReferencedUsers(ctx context.Context, creatorID uint, invitees []InviteeInput) error {
	ids := make([]uint, 0, len(invitees)+1)
	ids = append(ids, creatorID)
	for _, invitee := range invitees {
		ids = append(ids, invitee.UserID)
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	existing := make(map[uint]struct{}, len(users))
	for _, user := range users {
		existing[user.ID] = struct{}{}
	}
	if _, ok := existing[creatorID]; !ok {
		return fmt.Errorf("%w: user %d", ErrCreatorNotFound, creatorID)
	}
	for _, invitee := range invitees {
		if _, ok := existing[invitee.UserID]; !ok {
			return fmt.Errorf("%w: user %d", ErrInviteeNotFound, invitee.UserID)
		}
	}
	return nil
}

// RespondToInvite records the current invitee's answer in one transaction.
// The bounce row is locked for the duration, so of two concurrent calls the
// second one re-reads the advanced state and fails with ErrNoActiveInvitee
// instead of double-escalating.
func (s *BounceService) RespondToInvite(ctx context.Context, bounceID uint, status models.InviteStatus) (*models.Bounce, error) {
	if status != models.InviteStatusAccepted && status != models.InviteStatusDeclined {
		return nil, ErrInvalidResponseStatus
	}
	if bounceID == 0 {
		return nil, ErrBounceNotFound
	}

	var resultStatus models.BounceStatus
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		bounceRepoTx := repositories.NewBounceRepositoryTx(tx)

		bounce, err := bounceRepoTx.FindByIDForUpdate(ctx, bounceID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrBounceNotFound
			}
			return err
		}

		responded, promoted, err := bounce.ApplyResponse(status, time.Now().UTC())
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidResponse):
				return ErrInvalidResponseStatus
			case errors.Is(err, models.ErrNoActiveInvitee):
				return ErrNoActiveInvitee
			case errors.Is(err, models.ErrInviteRowMissing):
				configslog.Log.Error("RespondToInvite: inconsistent aggregate (current invitee without invited slot)",
					zap.Uint("bounceID", bounce.ID), zap.Uintp("currentInviteeID", bounce.CurrentInviteeID))
				return ErrBounceInconsistent
			default:
				return err
			}
		}

		if err := bounceRepoTx.UpdateInvite(ctx, responded.ID, map[string]interface{}{
			"status":       responded.Status,
			"responded_at": responded.RespondedAt,
		}); err != nil {
			return ErrBounceRespondFailed
		}
		if promoted != nil {
			if err := bounceRepoTx.UpdateInvite(ctx, promoted.ID, map[string]interface{}{
				"status":     promoted.Status,
				"invited_at": promoted.InvitedAt,
			}); err != nil {
				return ErrBounceRespondFailed
			}
		}
		if err := bounceRepoTx.Update(ctx, bounce.ID, map[string]interface{}{
			"status":             bounce.Status,
			"current_invitee_id": bounce.CurrentInviteeID,
		}); err != nil {
			return ErrBounceRespondFailed
		}

		resultStatus = bounce.Status
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrBounceNotFound) || errors.Is(txErr, ErrNoActiveInvitee) {
			return nil, txErr
		}
		configslog.Log.Error("RespondToInvite transaction failed",
			zap.Uint("bounceID", bounceID), zap.String("status", string(status)), zap.Error(txErr))
		return nil, txErr
	}

	configslog.SLog.Infof("Bounce %d response recorded: %s, bounce now %s", bounceID, status, resultStatus)

	// Re-read with the full preloads so the respond payload matches the
	// GetBounceByID shape.
	return s.GetBounceByID(ctx, bounceID)
}

func (s *BounceService) GetBounceByID(ctx context.Context, id uint) (*models.Bounce, error) {
	bounce, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBounceNotFound
		}
		return nil, err
	}
	return bounce, nil
}

func (s *BounceService) GetBouncesPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()

	bounces, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: bounces,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// GetInvitesForUser partitions a user's invites: pending holds the invite
// awaiting their answer (their bounce is active and they are its current
// invitee), history holds everything else.
func (s *BounceService) GetInvitesForUser(ctx context.Context, userID uint) (*UserInvitesResult, error) {
	if _, err := s.userService.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	invites, err := s.repo.FindInvitesByInviteeID(ctx, userID)
	if err != nil {
		return nil, err
	}
	pending, history := partitionUserInvites(invites)
	return &UserInvitesResult{Pending: pending, History: history}, nil
}

func partitionUserInvites(invites []models.BounceInvite) (pending, history []UserInviteEntry) {
	pending = []UserInviteEntry{}
	history = []UserInviteEntry{}
	for _, invite := range invites {
		bounce := invite.Bounce
		entry := UserInviteEntry{
			Invite: invite,
			Bounce: BounceSummary{
				ID:               bounce.ID,
				Title:            bounce.Title,
				Date:             bounce.Date,
				Status:           bounce.Status,
				CreatorID:        bounce.CreatorID,
				CurrentInviteeID: bounce.CurrentInviteeID,
			},
			IsCurrentInvitee: bounce.CurrentInviteeID != nil && *bounce.CurrentInviteeID == invite.InviteeID,
		}
		if entry.IsCurrentInvitee && bounce.Status == models.BounceStatusActive {
			pending = append(pending, entry)
		} else {
			history = append(history, entry)
		}
	}
	return pending, history
}

var _ IBounceService = (*BounceService)(nil)
