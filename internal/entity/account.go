package entity

import (
	"database/sql"
	"time"
)

type Account struct {
	UserID    string `gorm:"primaryKey;size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time

	CoinBalance int64
	TicketCount int64

	LastDailyClaimAt sql.NullTime
	LastFreeSpinAt   sql.NullTime

	Banned    bool
	BanReason string
}
