package models

import "time"

// InviteStatus is one candidate's position in the offer lifecycle.
type InviteStatus string

const (
	InviteStatusPending   InviteStatus = "pending"   // not yet offered
	InviteStatusInvited   InviteStatus = "invited"   // currently holding the offer
	InviteStatusAccepted  InviteStatus = "accepted"  // took the offer
	InviteStatusDeclined  InviteStatus = "declined"  // passed the offer on
	InviteStatusCancelled InviteStatus = "cancelled" // withdrawn in bulk, never set by the engine
)

// BounceInvite is one candidate's slot in a bounce's priority queue.
// Lower Priority wins; ties resolve to the lowest ID (creation order).
type BounceInvite struct {
	BaseModel
	BounceID  uint   `gorm:"not null;index:idx_invites_bounce_invitee,unique" json:"bounce_id"`
	Bounce    Bounce `gorm:"foreignKey:BounceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	InviteeID uint   `gorm:"not null;index:idx_invites_bounce_invitee,unique" json:"invitee_id"`
	Invitee   User   `gorm:"foreignKey:InviteeID" json:"invitee,omitempty"`
	Priority  int    `gorm:"not null;index" json:"priority"`

	Status InviteStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	// Stamped exactly once, on the pending->invited and invited->responded
	// transitions respectively.
	InvitedAt   *time.Time `gorm:"type:timestamptz" json:"invited_at,omitempty"`
	RespondedAt *time.Time `gorm:"type:timestamptz" json:"responded_at,omitempty"`
}
