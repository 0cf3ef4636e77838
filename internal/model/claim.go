package model

type RequestClaimRequest struct {
	DrawID string `json:"draw_id"`
}

type RequestClaimResponse struct{}

type ReviewClaimRequest struct {
	DrawID string `json:"draw_id"`
	Accept bool   `json:"accept"`
	Note   string `json:"note"`
}

type ReviewClaimResponse struct{}

type GetPendingClaimsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetPendingClaimsResponse struct {
	Draws []DrawHistory `json:"draws"`
}
