package booking

import "hut/internal/domain"

type CreateRequest struct {
	CustomerID            string `json:"-"`
	HotelID               string `json:"hotelId" validate:"required"`
	RoomID                string `json:"roomId" validate:"required"`
	EmergencyContactName  string `json:"emergencyContactName" validate:"required"`
	EmergencyContactPhone string `json:"emergencyContactPhone" validate:"required"`
	CheckInDate           string `json:"checkInDate" validate:"required"`
	CheckOutDate          string `json:"checkOutDate" validate:"required"`
	Guests                int    `json:"guests"`
	PickupRequested       bool   `json:"pickupRequested"`
	SpecialRequest        string `json:"specialRequest"`
	CallbackURL           string `json:"-"`
}

type Redirect string

const (
	// RedirectSuccess means the booking is confirmed and paid.
	RedirectSuccess Redirect = "success"
	// RedirectPayment means the customer must complete payment at PaymentURL.
	RedirectPayment Redirect = "payment"
)

type CreateResult struct {
	Booking    domain.Booking `json:"booking"`
	Redirect   Redirect       `json:"redirect"`
	PaymentURL string         `json:"paymentUrl,omitempty"`
}

// Details is a booking with what its confirmation page shows.
type Details struct {
	Booking       domain.Booking         `json:"booking"`
	HotelName     string                 `json:"hotelName"`
	Payment       *domain.Payment        `json:"payment"`
	Notifications []*domain.Notification `json:"notifications"`
	RefundRules   []string               `json:"refundRules"`
}
