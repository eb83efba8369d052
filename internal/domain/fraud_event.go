package domain

import "time"

type FraudAction string

const (
	FraudBlocked FraudAction = "blocked"
	FraudReview  FraudAction = "review"
)

type FraudEvent struct {
	ID        string      `json:"id"`
	HotelID   string      `json:"hotelId"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Score     int         `json:"score"`
	Flags     []string    `json:"flags"`
	Action    FraudAction `json:"action"`
	CreatedAt time.Time   `json:"createdAt"`
}
