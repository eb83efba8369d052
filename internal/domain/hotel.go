package domain

import "time"

type CancellationPolicy string

const (
	PolicyFlexible CancellationPolicy = "flexible"
	PolicyModerate CancellationPolicy = "moderate"
	PolicyStrict   CancellationPolicy = "strict"
	PolicyCustom   CancellationPolicy = "custom"
)

type Hotel struct {
	ID                      string             `json:"id"`
	Name                    string             `json:"name"`
	Description             string             `json:"description"`
	Location                string             `json:"location"`
	BankName                string             `json:"bankName"`
	BankAccount             string             `json:"bankAccount"`
	CancellationPolicy      CancellationPolicy `json:"cancellationPolicy"`
	CommissionRate          float64            `json:"commissionRate"`
	PickupFee               int64              `json:"pickupFee"`
	PremiumListingActive    bool               `json:"premiumListingActive"`
	PremiumListingExpiresAt *time.Time         `json:"premiumListingExpiresAt"`
	CreatedAt               time.Time          `json:"createdAt"`
}

type PremiumSubscription struct {
	ID           string    `json:"id"`
	HotelID      string    `json:"hotelId"`
	Amount       int64     `json:"amount"`
	DurationDays int       `json:"durationDays"`
	Status       string    `json:"status"`
	StartedAt    time.Time `json:"startedAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// PremiumActive reports whether the hotel's premium listing is live at now.
func (h *Hotel) PremiumActive(now time.Time) bool {
	if !h.PremiumListingActive {
		return false
	}
	return h.PremiumListingExpiresAt == nil || h.PremiumListingExpiresAt.After(now)
}
