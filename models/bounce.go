package models

import (
	"errors"
	"time"
)

// BounceStatus is the lifecycle state of a bounce.
type BounceStatus string

const (
	BounceStatusPending   BounceStatus = "pending"
	BounceStatusActive    BounceStatus = "active"
	BounceStatusAccepted  BounceStatus = "accepted"
	BounceStatusCancelled BounceStatus = "cancelled"
	BounceStatusCompleted BounceStatus = "completed" // set by an external job after the date passes
)

// IsTerminal reports whether no further transitions are permitted.
func (s BounceStatus) IsTerminal() bool {
	return s == BounceStatusAccepted || s == BounceStatusCancelled || s == BounceStatusCompleted
}

// Aggregate-level transition errors. The service layer maps these onto its
// own error vocabulary.
var (
	ErrInvalidResponse  = errors.New("response status must be accepted or declined")
	ErrNoActiveInvitee  = errors.New("bounce has no active invitee")
	ErrInviteRowMissing = errors.New("current invitee has no invited slot")
)

// Bounce is an event offered to an ordered list of invitees. Exactly one
// invitee holds the offer while the bounce is active: CurrentInviteeID is
// non-nil if and only if Status is active.
type Bounce struct {
	BaseModel
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Date      time.Time `gorm:"index;type:timestamptz;not null" json:"date"`
	CreatorID uint      `gorm:"index;not null" json:"creator_id"`
	Creator   User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`

	Status           BounceStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CurrentInviteeID *uint        `gorm:"index" json:"current_invitee_id"`

	Invites []BounceInvite `gorm:"foreignKey:BounceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"invites,omitempty"`
}

// NextPendingInvite selects the pending invite with the lowest priority,
// ties resolved by lowest ID. Nil when the waterfall is exhausted.
func (b *Bounce) NextPendingInvite() *BounceInvite {
	var next *BounceInvite
	for i := range b.Invites {
		inv := &b.Invites[i]
		if inv.Status != InviteStatusPending {
			continue
		}
		if next == nil || inv.Priority < next.Priority ||
			(inv.Priority == next.Priority && inv.ID < next.ID) {
			next = inv
		}
	}
	return next
}

// CurrentInvite returns the invited slot held by the current invitee, nil
// when there is none or the aggregate is inconsistent.
func (b *Bounce) CurrentInvite() *BounceInvite {
	if b.CurrentInviteeID == nil {
		return nil
	}
	for i := range b.Invites {
		inv := &b.Invites[i]
		if inv.InviteeID == *b.CurrentInviteeID && inv.Status == InviteStatusInvited {
			return inv
		}
	}
	return nil
}

// ActivateNext promotes the next pending invite to invited and points the
// bounce at it. Returns nil without mutating anything when no pending
// invite remains.
func (b *Bounce) ActivateNext(now time.Time) *BounceInvite {
	next := b.NextPendingInvite()
	if next == nil {
		return nil
	}
	next.Status = InviteStatusInvited
	next.InvitedAt = &now
	b.Status = BounceStatusActive
	b.CurrentInviteeID = &next.InviteeID
	return next
}

// ApplyResponse records the current invitee's answer and advances the
// waterfall: accepted locks the bounce, declined promotes the next pending
// invite or cancels when none remains. All validation happens before any
// mutation. Returns the responded invite and, on escalation, the promoted
// one.
//
// ErrInviteRowMissing means CurrentInviteeID points at an invitee without
// an invited slot. That state is unreachable while the invariants hold and
// must abort the surrounding transaction.
func (b *Bounce) ApplyResponse(status InviteStatus, now time.Time) (responded, promoted *BounceInvite, err error) {
	if status != InviteStatusAccepted && status != InviteStatusDeclined {
		return nil, nil, ErrInvalidResponse
	}
	if b.CurrentInviteeID == nil {
		return nil, nil, ErrNoActiveInvitee
	}
	responded = b.CurrentInvite()
	if responded == nil {
		// Acceptance leaves CurrentInviteeID set while the invited slot is
		// already consumed; that is terminal, not inconsistent.
		if b.Status.IsTerminal() {
			return nil, nil, ErrNoActiveInvitee
		}
		return nil, nil, ErrInviteRowMissing
	}

	responded.Status = status
	responded.RespondedAt = &now

	if status == InviteStatusAccepted {
		// CurrentInviteeID keeps pointing at the acceptor.
		b.Status = BounceStatusAccepted
		return responded, nil, nil
	}

	if promoted = b.ActivateNext(now); promoted == nil {
		b.Status = BounceStatusCancelled
		b.CurrentInviteeID = nil
	}
	return responded, promoted, nil
}
