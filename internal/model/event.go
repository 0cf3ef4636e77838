package model

const (
	PrizeWonTopic       = "prize_won"
	ClaimRequestedTopic = "claim_requested"
	ClaimReviewedTopic  = "claim_reviewed"
)

type PrizeWonEvent struct {
	DrawID      string `json:"draw_id"`
	UserID      string `json:"user_id"`
	PrizeID     string `json:"prize_id"`
	PrizeName   string `json:"prize_name"`
	PayoutKind  string `json:"payout_kind"`
	PayoutValue int64  `json:"payout_value"`
}

type ClaimRequestedEvent struct {
	DrawID    string `json:"draw_id"`
	UserID    string `json:"user_id"`
	PrizeName string `json:"prize_name"`
}

type ClaimReviewedEvent struct {
	DrawID   string `json:"draw_id"`
	UserID   string `json:"user_id"`
	Status   string `json:"status"`
	Reviewer string `json:"reviewer"`
	Note     string `json:"note"`
}
