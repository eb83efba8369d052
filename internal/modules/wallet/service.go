// Package wallet keeps the per-user virtual balance. User.WalletBalance is
// authoritative; every change also appends a WalletTransaction.
package wallet

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"hut/internal/domain"
	"hut/internal/store"
)

const TypeTopUp = "wallet_topup"

// Entry is one balance change. Amount is always positive; Direction decides
// the sign.
type Entry struct {
	UserID           string
	Type             string
	Direction        domain.WalletDirection
	Amount           int64
	Description      string
	Reference        string
	RelatedListingID *string
	RelatedPaymentID *string
}

// Apply changes the user's balance inside a store mutator. A debit that
// would leave a negative balance changes nothing.
func Apply(doc *domain.Document, e Entry, id string, at time.Time) (*domain.WalletTransaction, error) {
	if e.Amount <= 0 {
		return nil, ErrInvalidWalletAmount
	}
	u := doc.FindUser(e.UserID)
	if u == nil {
		return nil, ErrUserNotFound
	}

	signed := e.Amount
	if e.Direction == domain.WalletDebit {
		signed = -e.Amount
	}
	next := u.WalletBalance + signed
	if next < 0 {
		return nil, ErrInsufficientFunds
	}
	u.WalletBalance = next

	tx := &domain.WalletTransaction{
		ID:               id,
		UserID:           u.ID,
		Type:             e.Type,
		Direction:        e.Direction,
		Amount:           e.Amount,
		SignedAmount:     signed,
		Description:      e.Description,
		Reference:        e.Reference,
		RelatedListingID: e.RelatedListingID,
		RelatedPaymentID: e.RelatedPaymentID,
		BalanceAfter:     next,
		CreatedAt:        at,
	}
	doc.WalletTransactions = append(doc.WalletTransactions, tx)
	return tx, nil
}

type Service struct {
	store *store.Store
	now   func() time.Time
	newID func() string
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now, newID: uuid.NewString}
}

// TopUp credits a bank transfer to the user's wallet and records it as a
// wallet_topup payment. reference defaults to BANK-<unixms>.
func (s *Service) TopUp(ctx context.Context, userID string, amount int64, reference string) (*domain.WalletTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	reference = strings.TrimSpace(reference)

	return store.Update(ctx, s.store, func(_ context.Context, doc *domain.Document) (*domain.WalletTransaction, error) {
		u := doc.FindUser(userID)
		if u == nil {
			return nil, ErrUserNotFound
		}
		if u.Role == domain.RoleHotelAdmin {
			return nil, ErrTopUpNotAllowed
		}

		now := s.now().UTC()
		ref := reference
		if ref == "" {
			ref = fmt.Sprintf("BANK-%d", now.UnixMilli())
		}
		paymentID := s.newID()

		tx, err := Apply(doc, Entry{
			UserID:           u.ID,
			Type:             TypeTopUp,
			Direction:        domain.WalletCredit,
			Amount:           amount,
			Description:      "Wallet top-up via transfer to platform account",
			Reference:        ref,
			RelatedPaymentID: &paymentID,
		}, s.newID(), now)
		if err != nil {
			return nil, err
		}

		doc.Payments = append(doc.Payments, &domain.Payment{
			ID:                  paymentID,
			UserID:              domain.StrPtr(u.ID),
			TransactionRef:      fmt.Sprintf("HUT-WTOP-%d", now.UnixMilli()),
			TransactionType:     domain.TxWalletTopup,
			PaymentProvider:     "bank_transfer",
			PaymentExternalID:   ref,
			GrossAmount:         amount,
			PlatformBankAccount: doc.Platform.BankAccount,
			CreatedAt:           now,
		})
		cp := *tx
		return &cp, nil
	})
}

func (s *Service) Balance(ctx context.Context, userID string) (int64, error) {
	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	u := doc.FindUser(userID)
	if u == nil {
		return 0, ErrUserNotFound
	}
	return u.WalletBalance, nil
}

// Transactions lists the user's wallet entries, newest first.
func (s *Service) Transactions(ctx context.Context, userID string) ([]*domain.WalletTransaction, error) {
	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := []*domain.WalletTransaction{}
	for _, tx := range doc.WalletTransactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
