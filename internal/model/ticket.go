package model

type BuyTicketsRequest struct {
	Quantity int64 `json:"quantity"`
}

type BuyTicketsResponse struct {
	TicketCount int64 `json:"ticket_count"`
	CoinBalance int64 `json:"coin_balance"`
}
