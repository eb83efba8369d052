package domain

import "time"

type NotificationChannel string

const (
	ChannelSMS   NotificationChannel = "sms"
	ChannelEmail NotificationChannel = "email"
)

type Notification struct {
	ID        string              `json:"id"`
	BookingID string              `json:"bookingId"`
	HotelID   string              `json:"hotelId"`
	Channel   NotificationChannel `json:"channel"`
	Recipient string              `json:"recipient"`
	Body      string              `json:"body"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}
