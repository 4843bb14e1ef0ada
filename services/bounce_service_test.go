package services

import (
	"context"
	"testing"
	"time"

	"bounce.link/models"
	"bounce.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() CreateBounceInput {
	return CreateBounceInput{
		Title: "Coffee Hangout",
		Date:  time.Date(2026, 9, 7, 16, 0, 0, 0, time.UTC),
		Invitees: []InviteeInput{
			{UserID: 2, Priority: 1},
			{UserID: 3, Priority: 2},
		},
	}
}

func TestValidateCreateBounceInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateBounceInput)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(in *CreateBounceInput) {},
		},
		{
			name:    "missing title",
			mutate:  func(in *CreateBounceInput) { in.Title = "" },
			wantErr: ErrBounceTitleRequired,
		},
		{
			name:    "missing date",
			mutate:  func(in *CreateBounceInput) { in.Date = time.Time{} },
			wantErr: ErrBounceDateRequired,
		},
		{
			name:    "empty invitee list",
			mutate:  func(in *CreateBounceInput) { in.Invitees = nil },
			wantErr: ErrInviteeListRequired,
		},
		{
			name:    "invitee without user ID",
			mutate:  func(in *CreateBounceInput) { in.Invitees[1].UserID = 0 },
			wantErr: ErrBounceInvalidInput,
		},
		{
			name:    "duplicate invitee",
			mutate:  func(in *CreateBounceInput) { in.Invitees[1].UserID = in.Invitees[0].UserID },
			wantErr: ErrBounceInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			err := ValidateCreateBounceInput(input)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

type stubUserRepository struct {
	users map[uint]models.User
}

func (s *stubUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return &user, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *stubUserRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var users []models.User
	seen := map[uint]struct{}{}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *stubUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, nil
}

var _ repositories.IUserRepository = (*stubUserRepository)(nil)

func seededUserRepository() *stubUserRepository {
	return &stubUserRepository{users: map[uint]models.User{
		1: {BaseModel: models.BaseModel{ID: 1}, Name: "Cameron"},
		2: {BaseModel: models.BaseModel{ID: 2}, Name: "Alex"},
		3: {BaseModel: models.BaseModel{ID: 3}, Name: "Jordan"},
	}}
}

func TestCreateBounceRejectsUnknownReferencedUsers(t *testing.T) {
	// Reference checks run before the transaction opens; the nil db field
	// guarantees these paths never reach a write.
	svc := &BounceService{userRepo: seededUserRepository()}
	ctx := context.Background()

	t.Run("unknown creator", func(t *testing.T) {
		_, err := svc.CreateBounce(ctx, 9, validInput())
		assert.ErrorIs(t, err, ErrCreatorNotFound)
	})

	t.Run("unknown invitee", func(t *testing.T) {
		input := validInput()
		input.Invitees[1].UserID = 99
		_, err := svc.CreateBounce(ctx, 1, input)
		assert.ErrorIs(t, err, ErrInviteeNotFound)
	})

	t.Run("all referenced users exist", func(t *testing.T) {
		require.NoError(t, svc.verifyReferencedUsers(ctx, 1, validInput().Invitees))
	})
}

func inviteWithBounce(inviteeID uint, inviteStatus models.InviteStatus, bounce models.Bounce) models.BounceInvite {
	return models.BounceInvite{
		BaseModel: models.BaseModel{ID: bounce.ID*100 + inviteeID},
		BounceID:  bounce.ID,
		Bounce:    bounce,
		InviteeID: inviteeID,
		Priority:  1,
		Status:    inviteStatus,
	}
}

func TestPartitionUserInvites(t *testing.T) {
	userID := uint(2)
	otherID := uint(3)

	activeHeld := models.Bounce{
		BaseModel:        models.BaseModel{ID: 1},
		Title:            "Driving Range at 4pm",
		Status:           models.BounceStatusActive,
		CurrentInviteeID: &userID,
	}
	activeMovedOn := models.Bounce{
		BaseModel:        models.BaseModel{ID: 2},
		Title:            "Coffee Hangout",
		Status:           models.BounceStatusActive,
		CurrentInviteeID: &otherID,
	}
	acceptedByUser := models.Bounce{
		BaseModel:        models.BaseModel{ID: 3},
		Title:            "Five-a-side",
		Status:           models.BounceStatusAccepted,
		CurrentInviteeID: &userID,
	}
	cancelled := models.Bounce{
		BaseModel: models.BaseModel{ID: 4},
		Title:     "Hike",
		Status:    models.BounceStatusCancelled,
	}

	invites := []models.BounceInvite{
		inviteWithBounce(userID, models.InviteStatusInvited, activeHeld),
		inviteWithBounce(userID, models.InviteStatusDeclined, activeMovedOn),
		inviteWithBounce(userID, models.InviteStatusAccepted, acceptedByUser),
		inviteWithBounce(userID, models.InviteStatusDeclined, cancelled),
	}

	pending, history := partitionUserInvites(invites)

	require.Len(t, pending, 1)
	assert.Equal(t, uint(1), pending[0].Bounce.ID)
	assert.True(t, pending[0].IsCurrentInvitee)
	assert.Equal(t, "Driving Range at 4pm", pending[0].Bounce.Title)

	require.Len(t, history, 3)

	byBounce := map[uint]UserInviteEntry{}
	for _, entry := range history {
		byBounce[entry.Bounce.ID] = entry
	}
	assert.False(t, byBounce[2].IsCurrentInvitee, "superseded invitee is no longer current")
	assert.False(t, byBounce[4].IsCurrentInvitee)

	// An accepted bounce lands in history, yet the acceptor remains the
	// current invitee: acceptance never clears CurrentInviteeID.
	assert.True(t, byBounce[3].IsCurrentInvitee)
	assert.Equal(t, models.BounceStatusAccepted, byBounce[3].Bounce.Status)
}

func TestPartitionUserInvitesEmpty(t *testing.T) {
	pending, history := partitionUserInvites(nil)

	// Empty, not nil: the JSON payload must carry arrays.
	assert.NotNil(t, pending)
	assert.NotNil(t, history)
	assert.Empty(t, pending)
	assert.Empty(t, history)
}
