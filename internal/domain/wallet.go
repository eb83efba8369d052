package domain

import "time"

type WalletDirection string

const (
	WalletCredit WalletDirection = "credit"
	WalletDebit  WalletDirection = "debit"
)

// WalletTransaction is an audit entry; User.WalletBalance stays authoritative.
type WalletTransaction struct {
	ID               string          `json:"id"`
	UserID           string          `json:"userId"`
	Type             string          `json:"type"`
	Direction        WalletDirection `json:"direction"`
	Amount           int64           `json:"amount"`
	SignedAmount     int64           `json:"signedAmount"`
	Description      string          `json:"description"`
	Reference        string          `json:"reference"`
	RelatedListingID *string         `json:"relatedListingId"`
	RelatedPaymentID *string         `json:"relatedPaymentId"`
	BalanceAfter     int64           `json:"balanceAfter"`
	CreatedAt        time.Time       `json:"createdAt"`
}
