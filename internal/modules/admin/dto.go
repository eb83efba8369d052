package admin

import (
	"time"

	"hut/internal/domain"
	"hut/internal/domain/stay"
	"hut/internal/modules/availability"
	"hut/internal/modules/pricing"
)

type CreateHotelRequest struct {
	Name               string                    `json:"name"`
	Description        string                    `json:"description"`
	Location           string                    `json:"location"`
	BankName           string                    `json:"bankName"`
	BankAccount        string                    `json:"bankAccount"`
	CancellationPolicy domain.CancellationPolicy `json:"cancellationPolicy" validate:"omitempty,oneof=flexible moderate strict custom"`
	// CommissionPercent is a percentage; nil means the platform default.
	CommissionPercent    *float64 `json:"commissionPercent" validate:"omitempty,gte=0,lte=100"`
	PickupFee            int64    `json:"pickupFee"`
	PremiumListingActive bool     `json:"premiumListingActive"`
	AdminName            string   `json:"adminName"`
	AdminEmail           string   `json:"adminEmail"`
	AdminPassword        string   `json:"adminPassword"`
}

type CreateHotelResult struct {
	Hotel *domain.Hotel      `json:"hotel"`
	Admin *domain.PublicUser `json:"admin,omitempty"`
}

type CreateRoomRequest struct {
	Category      string `json:"category" validate:"required"`
	PricePerNight int64  `json:"pricePerNight" validate:"gt=0"`
	TotalUnits    int    `json:"totalUnits" validate:"gt=0"`
}

type HotelSummary struct {
	*domain.Hotel
	BookingCount    int   `json:"bookingCount"`
	GrossSales      int64 `json:"grossSales"`
	PlatformRevenue int64 `json:"platformRevenue"`
}

type Dashboard struct {
	Hotel            *domain.Hotel                   `json:"hotel"`
	Rooms            []*domain.Room                  `json:"rooms"`
	Bookings         []*domain.Booking               `json:"bookings"`
	Payments         []*domain.Payment               `json:"payments"`
	Availability     []availability.RoomAvailability `json:"availability"`
	PricingInsights  []pricing.Insight               `json:"pricingInsights"`
	GrossSales       int64                           `json:"grossSales"`
	PlatformRevenue  int64                           `json:"platformRevenue"`
	HotelReceivables int64                           `json:"hotelReceivables"`
	CheckInDate      stay.Date                       `json:"checkInDate"`
	CheckOutDate     stay.Date                       `json:"checkOutDate"`
}

type OwnerSummary struct {
	PaymentCount           int   `json:"paymentCount"`
	HotelTransactionCount  int   `json:"hotelTransactionCount"`
	GrossHotelVolume       int64 `json:"grossHotelVolume"`
	TotalHotelPayouts      int64 `json:"totalHotelPayouts"`
	CommissionRevenue      int64 `json:"commissionRevenue"`
	PremiumRevenue         int64 `json:"premiumRevenue"`
	MarketplaceRevenue     int64 `json:"marketplaceRevenue"`
	MarketplacePlanRevenue int64 `json:"marketplacePlanRevenue"`
	NetPlatformRevenue     int64 `json:"netPlatformRevenue"`
	WalletLiability        int64 `json:"walletLiability"`
}

type PaymentRow struct {
	*domain.Payment
	HotelName string `json:"hotelName"`
	UserName  string `json:"userName"`
}

type OwnerDashboard struct {
	Summary  OwnerSummary `json:"summary"`
	Payments []PaymentRow `json:"payments"`
}

type Settlement struct {
	HotelID   string    `json:"hotelId"`
	Count     int       `json:"count"`
	NetPayout int64     `json:"netPayout"`
	SettledAt time.Time `json:"settledAt"`
}
