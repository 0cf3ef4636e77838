package entity

import "github.com/questx-lab/rewardengine/pkg/enum"

type PrizeKind string

var (
	PrizeCoins   = enum.New(PrizeKind("coins"))
	PrizeTicket  = enum.New(PrizeKind("ticket"))
	PrizeNothing = enum.New(PrizeKind("nothing"))

	// PrizePhysical is settled out of band and needs the claim workflow.
	PrizePhysical = enum.New(PrizeKind("physical"))
)

// SelfSettling reports whether winning the prize needs no claim step.
func (k PrizeKind) SelfSettling() bool {
	return k != PrizePhysical
}

type PrizeDefinition struct {
	Base

	Name      string
	Kind      PrizeKind `gorm:"size:16"`
	Value     int64
	Weight    int64
	Active    bool `gorm:"index"`
	SortOrder int
}
