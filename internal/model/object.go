package model

type AccessToken struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type Account struct {
	UserID           string `json:"user_id"`
	CoinBalance      int64  `json:"coin_balance"`
	TicketCount      int64  `json:"ticket_count"`
	LastDailyClaimAt string `json:"last_daily_claim_at"`
	LastFreeSpinAt   string `json:"last_free_spin_at"`
	Banned           bool   `json:"banned"`
	BanReason        string `json:"ban_reason"`
	CreatedAt        string `json:"created_at"`
}

type LedgerEntry struct {
	ID           int64  `json:"id"`
	UserID       string `json:"user_id"`
	Currency     string `json:"currency"`
	Amount       int64  `json:"amount"`
	Kind         string `json:"kind"`
	Description  string `json:"description"`
	BalanceAfter int64  `json:"balance_after"`
	CreatedAt    string `json:"created_at"`
}

type Prize struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	Value       int64   `json:"value"`
	Weight      int64   `json:"weight"`
	Active      bool    `json:"active"`
	SortOrder   int     `json:"sort_order"`
	Probability float64 `json:"probability"`
}

type DrawHistory struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	PrizeID     string `json:"prize_id"`
	PrizeName   string `json:"prize_name"`
	PayoutKind  string `json:"payout_kind"`
	PayoutValue int64  `json:"payout_value"`
	SpinSource  string `json:"spin_source"`
	ClaimStatus string `json:"claim_status"`
	ClaimedAt   string `json:"claimed_at"`
	CreatedAt   string `json:"created_at"`
}
