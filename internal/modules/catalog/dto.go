package catalog

import (
	"hut/internal/domain"
	"hut/internal/domain/stay"
	"hut/internal/modules/availability"
)

type Sort string

const (
	SortRecommended Sort = "recommended"
	SortPriceAsc    Sort = "price_asc"
	SortPriceDesc   Sort = "price_desc"
)

type SearchFilter struct {
	Destination  string
	MinPrice     int64
	MaxPrice     int64 // 0 means no upper bound
	Sort         Sort
	CheckInDate  stay.Date
	CheckOutDate stay.Date
}

// HotelCard is a hotel as listed in search results. Bank details are left out.
type HotelCard struct {
	ID                   string                    `json:"id"`
	Name                 string                    `json:"name"`
	Description          string                    `json:"description"`
	Location             string                    `json:"location"`
	CancellationPolicy   domain.CancellationPolicy `json:"cancellationPolicy"`
	PickupFee            int64                     `json:"pickupFee"`
	PremiumListingActive bool                      `json:"premiumListingActive"`
	MinPrice             int64                     `json:"minPrice"`
	RoomsAvailable       int                       `json:"roomsAvailable"`
	RoomTypePreview      []string                  `json:"roomTypePreview"`
}

type SearchResult struct {
	Hotels       []HotelCard `json:"hotels"`
	Count        int         `json:"count"`
	Total        int         `json:"total"`
	CheckInDate  stay.Date   `json:"checkInDate"`
	CheckOutDate stay.Date   `json:"checkOutDate"`
	Sort         Sort        `json:"sort"`
}

type HotelAvailability struct {
	HotelID      string                          `json:"hotelId"`
	CheckInDate  stay.Date                       `json:"checkInDate"`
	CheckOutDate stay.Date                       `json:"checkOutDate"`
	Rooms        []availability.RoomAvailability `json:"rooms"`
}

type RoomCard struct {
	*domain.Room
	Availability availability.RoomAvailability `json:"availability"`
}

type HotelPage struct {
	Hotel             HotelCard  `json:"hotel"`
	Rooms             []RoomCard `json:"rooms"`
	CancellationRules []string   `json:"cancellationRules"`
	CheckInDate       stay.Date  `json:"checkInDate"`
	CheckOutDate      stay.Date  `json:"checkOutDate"`
}
