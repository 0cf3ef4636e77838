package model

type CheckActionRequest struct {
	Action  string `json:"action"`
	Payload string `json:"payload"`
}

type CheckActionResponse struct {
	Allowed bool `json:"allowed"`
}
