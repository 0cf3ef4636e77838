package model

type DrawRequest struct{}

type DrawResponse struct {
	DrawID      string `json:"draw_id"`
	PrizeID     string `json:"prize_id"`
	PrizeName   string `json:"prize_name"`
	PayoutKind  string `json:"payout_kind"`
	PayoutValue int64  `json:"payout_value"`
	SpinSource  string `json:"spin_source"`
	ClaimStatus string `json:"claim_status"`
	CoinBalance int64  `json:"coin_balance"`
	TicketCount int64  `json:"ticket_count"`
}

type GetDrawHistoryRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetDrawHistoryResponse struct {
	Draws []DrawHistory `json:"draws"`
}

type GetCatalogRequest struct{}

type GetCatalogResponse struct {
	Prizes []Prize `json:"prizes"`
}
