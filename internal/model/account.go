package model

type BanRequest struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

type BanResponse struct{}

type UnbanRequest struct {
	UserID string `json:"user_id"`
}

type UnbanResponse struct{}

type GetAccountRequest struct {
	UserID string `json:"user_id"`
}

type GetAccountResponse struct {
	Account Account `json:"account"`
}
