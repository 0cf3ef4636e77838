package model

type CreatePrizeRequest struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Value     int64  `json:"value"`
	Weight    int64  `json:"weight"`
	SortOrder int    `json:"sort_order"`
}

type CreatePrizeResponse struct {
	ID string `json:"id"`
}

type UpdatePrizeRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Value     int64  `json:"value"`
	Weight    int64  `json:"weight"`
	Active    bool   `json:"active"`
	SortOrder int    `json:"sort_order"`
}

type UpdatePrizeResponse struct{}

type DeletePrizeRequest struct {
	ID string `json:"id"`
}

type DeletePrizeResponse struct{}

type GetPrizesRequest struct{}

type GetPrizesResponse struct {
	Prizes []Prize `json:"prizes"`
}
