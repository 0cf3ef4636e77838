package entity

import "github.com/questx-lab/rewardengine/pkg/enum"

type Currency string

var (
	CurrencyCoin   = enum.New(Currency("coin"))
	CurrencyTicket = enum.New(Currency("ticket"))
)

// Column returns the Account column holding the cached balance of c.
func (c Currency) Column() string {
	if c == CurrencyTicket {
		return "ticket_count"
	}

	return "coin_balance"
}

type LedgerKind string

var (
	LedgerDailyClaim     = enum.New(LedgerKind("daily_claim"))
	LedgerAdminAdjust    = enum.New(LedgerKind("admin_adjust"))
	LedgerDrawWin        = enum.New(LedgerKind("draw_win"))
	LedgerDrawSpend      = enum.New(LedgerKind("draw_spend"))
	LedgerTicketPurchase = enum.New(LedgerKind("ticket_purchase"))
	LedgerUploadReward   = enum.New(LedgerKind("upload_reward"))
	LedgerRefund         = enum.New(LedgerKind("refund"))
)

// LedgerEntry is never updated nor deleted. For every user and currency, the
// cached Account balance equals the sum of Amount.
type LedgerEntry struct {
	SnowFlakeBase

	UserID  string  `gorm:"index;size:64"`
	Account Account `gorm:"foreignKey:UserID"`

	Currency     Currency   `gorm:"size:16"`
	Amount       int64
	Kind         LedgerKind `gorm:"size:32"`
	Description  string
	BalanceAfter int64
}
