package entity

import (
	"database/sql"

	"github.com/questx-lab/rewardengine/pkg/enum"
)

type SpinSource string

var (
	SpinFree   = enum.New(SpinSource("free"))
	SpinTicket = enum.New(SpinSource("ticket"))
)

type ClaimStatus string

var (
	ClaimUnclaimed = enum.New(ClaimStatus("unclaimed"))
	ClaimPending   = enum.New(ClaimStatus("pending"))
	ClaimClaimed   = enum.New(ClaimStatus("claimed"))
	ClaimRejected  = enum.New(ClaimStatus("rejected"))
)

var claimTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimUnclaimed: {ClaimPending},
	ClaimPending:   {ClaimClaimed, ClaimRejected},
}

// CanTransitionTo reports whether the claim state machine allows moving from s
// to next. Terminal states have no outgoing transitions.
func (s ClaimStatus) CanTransitionTo(next ClaimStatus) bool {
	for _, allowed := range claimTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

type DrawHistory struct {
	Base

	UserID  string  `gorm:"index;size:64"`
	Account Account `gorm:"foreignKey:UserID"`

	PrizeID     string          `gorm:"size:36"`
	Prize       PrizeDefinition `gorm:"foreignKey:PrizeID"`
	PayoutKind  PrizeKind       `gorm:"size:16"`
	PayoutValue int64
	SpinSource  SpinSource `gorm:"size:16"`

	// ClaimStatus is only valid for prizes which are not self-settling.
	ClaimStatus sql.NullString `gorm:"index;size:16"`
	ClaimedAt   sql.NullTime
}
