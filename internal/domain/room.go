package domain

type Room struct {
	ID            string `json:"id"`
	HotelID       string `json:"hotelId"`
	Category      string `json:"category"`
	PricePerNight int64  `json:"pricePerNight"`
	TotalUnits    int    `json:"totalUnits"`
}
