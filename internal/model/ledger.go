package model

type GetBalanceRequest struct{}

type GetBalanceResponse struct {
	Account Account `json:"account"`
}

type GetLedgerRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetLedgerResponse struct {
	Entries []LedgerEntry `json:"entries"`
}

type AdjustBalanceRequest struct {
	UserID      string `json:"user_id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

type AdjustBalanceResponse struct {
	CoinBalance int64 `json:"coin_balance"`
	EntryID     int64 `json:"entry_id"`
}

type RewardRequest struct {
	UserID      string `json:"user_id"`
	Amount      int64  `json:"amount"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

type RewardResponse struct {
	CoinBalance int64 `json:"coin_balance"`
	EntryID     int64 `json:"entry_id"`
}

type VerifyConservationRequest struct {
	UserID string `json:"user_id"`
}

type VerifyConservationResponse struct {
	Consistent  bool  `json:"consistent"`
	CoinBalance int64 `json:"coin_balance"`
	CoinSum     int64 `json:"coin_sum"`
	TicketCount int64 `json:"ticket_count"`
	TicketSum   int64 `json:"ticket_sum"`
}
