package domain

import (
	"time"

	"hut/internal/domain/stay"
)

type BookingStatus string

const (
	BookingPendingPayment BookingStatus = "pending_payment"
	BookingConfirmed      BookingStatus = "confirmed"
	BookingPaymentFailed  BookingStatus = "payment_failed"
	BookingCancelled      BookingStatus = "cancelled"
	BookingCheckedIn      BookingStatus = "checked_in"
)

// BlocksInventory reports whether a booking in this status holds a room unit.
func (s BookingStatus) BlocksInventory() bool {
	return s == BookingConfirmed || s == BookingCheckedIn
}

type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentPaid              PaymentStatus = "paid"
	PaymentFailed            PaymentStatus = "failed"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
	PaymentNotRefundable     PaymentStatus = "not_refundable"
)

// Pricing is the price breakdown frozen on a booking at creation.
type Pricing struct {
	RoomSubtotal          int64   `json:"roomSubtotal"`
	ServiceFee            int64   `json:"serviceFee"`
	PickupTotal           int64   `json:"pickupTotal"`
	TotalPaid             int64   `json:"totalPaid"`
	HotelPayout           int64   `json:"hotelPayout"`
	PlatformRevenue       int64   `json:"platformRevenue"`
	CommissionRateApplied float64 `json:"commissionRateApplied"`
}

// Refund is the outcome of a cancellation, kept on the booking.
type Refund struct {
	LeadHours         float64  `json:"leadHours"`
	RefundablePercent float64  `json:"refundablePercent"`
	BaseRefund        int64    `json:"baseRefund"`
	PickupRefund      int64    `json:"pickupRefund"`
	RefundTotal       int64    `json:"refundTotal"`
	Rules             []string `json:"rules"`
}

type Booking struct {
	ID                    string             `json:"id"`
	HotelID               string             `json:"hotelId"`
	RoomID                string             `json:"roomId"`
	RoomCategory          string             `json:"roomCategory"`
	CustomerUserID        string             `json:"customerUserId"`
	CustomerName          string             `json:"customerName"`
	Email                 string             `json:"email"`
	Phone                 string             `json:"phone"`
	EmergencyContactName  string             `json:"emergencyContactName"`
	EmergencyContactPhone string             `json:"emergencyContactPhone"`
	CheckInDate           stay.Date          `json:"checkInDate"`
	CheckOutDate          stay.Date          `json:"checkOutDate"`
	Nights                int                `json:"nights"`
	Guests                int                `json:"guests"`
	PickupRequested       bool               `json:"pickupRequested"`
	SpecialRequest        string             `json:"specialRequest"`
	Pricing               Pricing            `json:"pricing"`
	Refund                *Refund            `json:"refund,omitempty"`
	FraudScore            int                `json:"fraudScore"`
	FraudFlags            []string           `json:"fraudFlags"`
	Status                BookingStatus      `json:"status"`
	PaymentStatus         PaymentStatus      `json:"paymentStatus"`
	CancellationPolicy    CancellationPolicy `json:"cancellationPolicy"`
	PaymentProvider       string             `json:"paymentProvider,omitempty"`
	PaymentReference      string             `json:"paymentReference,omitempty"`
	PaymentExternalID     string             `json:"paymentExternalId,omitempty"`
	PaymentError          string             `json:"paymentError,omitempty"`
	PaidAt                *time.Time         `json:"paidAt,omitempty"`
	CancelledAt           *time.Time         `json:"cancelledAt,omitempty"`
	CreatedAt             time.Time          `json:"createdAt"`
}
