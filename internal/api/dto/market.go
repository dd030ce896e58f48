package dto

type MarketResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	OpeningTime string  `json:"opening_time"`
	ClosingTime string  `json:"closing_time"`
	Description string  `json:"description,omitempty"`
}

type ListMarketsResponse struct {
	Markets []MarketResponse `json:"markets"`
}
