package domain

import "time"

type TransactionType string

const (
	TxBookingPayment           TransactionType = "booking_payment"
	TxRefund                   TransactionType = "refund"
	TxPremiumSubscription      TransactionType = "premium_subscription"
	TxWalletTopup              TransactionType = "wallet_topup"
	TxMarketplaceContactUnlock TransactionType = "marketplace_contact_unlock"
	TxMarketplacePlanPurchase  TransactionType = "marketplace_plan_purchase"
)

// Payment is one row of the append-only ledger. Refunds are recorded with
// negative amounts against the same columns.
type Payment struct {
	ID                  string          `json:"id"`
	BookingID           *string         `json:"bookingId"`
	HotelID             *string         `json:"hotelId"`
	UserID              *string         `json:"userId"`
	ListingID           *string         `json:"listingId"`
	TransactionRef      string          `json:"transactionRef"`
	TransactionType     TransactionType `json:"transactionType"`
	PaymentProvider     string          `json:"paymentProvider"`
	PaymentExternalID   string          `json:"paymentExternalId"`
	GrossAmount         int64           `json:"grossAmount"`
	HotelPayout         int64           `json:"hotelPayout"`
	PlatformEarning     int64           `json:"platformEarning"`
	CommissionRate      float64         `json:"commissionRate"`
	HotelBankAccount    *string         `json:"hotelBankAccount"`
	PlatformBankAccount string          `json:"platformBankAccount"`
	Settled             bool            `json:"settled"`
	SettledAt           *time.Time      `json:"settledAt,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}

type SessionStatus string

const (
	SessionPending SessionStatus = "pending"
	SessionPaid    SessionStatus = "paid"
	SessionFailed  SessionStatus = "failed"
)

// PaymentSession links a booking to an asynchronous provider charge.
type PaymentSession struct {
	ID         string        `json:"id"`
	BookingID  string        `json:"bookingId"`
	Provider   string        `json:"provider"`
	Reference  string        `json:"reference"`
	PaymentURL *string       `json:"paymentUrl"`
	Status     SessionStatus `json:"status"`
	VerifiedAt *time.Time    `json:"verifiedAt,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// StrPtr returns nil for an empty string.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
