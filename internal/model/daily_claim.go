package model

type ClaimDailyRequest struct{}

type ClaimDailyResponse struct {
	Claimed        bool   `json:"claimed"`
	NextEligibleAt string `json:"next_eligible_at"`
	CoinBalance    int64  `json:"coin_balance"`
}

type GetDailyStatusRequest struct{}

type GetDailyStatusResponse struct {
	Eligible         bool   `json:"eligible"`
	NextEligibleAt   string `json:"next_eligible_at"`
	FreeSpinEligible bool   `json:"free_spin_eligible"`
	NextFreeSpinAt   string `json:"next_free_spin_at"`
}
