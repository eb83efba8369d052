package domain

import (
	"encoding/json"
)

const (
	DefaultPlatformName           = "Hut!"
	DefaultPlatformBankAccount    = "HUT-PLATFORM-0001"
	DefaultCommissionRate         = 0.12
	DefaultPremiumSubscriptionFee = int64(25000)
)

type Platform struct {
	Name                          string  `json:"name"`
	BankAccount                   string  `json:"bankAccount"`
	DefaultCommissionRate         float64 `json:"defaultCommissionRate"`
	PremiumSubscriptionMonthlyFee int64   `json:"premiumSubscriptionMonthlyFee"`
}

// Document is the whole persisted state. Every write replaces it in full.
type Document struct {
	Platform             Platform               `json:"platform"`
	Users                []*User                `json:"users"`
	Hotels               []*Hotel               `json:"hotels"`
	Rooms                []*Room                `json:"rooms"`
	Bookings             []*Booking             `json:"bookings"`
	Payments             []*Payment             `json:"payments"`
	PaymentSessions      []*PaymentSession      `json:"paymentSessions"`
	FraudEvents          []*FraudEvent          `json:"fraudEvents"`
	WalletTransactions   []*WalletTransaction   `json:"walletTransactions"`
	Notifications        []*Notification        `json:"notifications"`
	PremiumSubscriptions []*PremiumSubscription `json:"premiumSubscriptions"`

	// Marketplace collections are owned by another part of the application
	// and are carried through untouched.
	MarketplaceListings      []json.RawMessage `json:"marketplaceListings"`
	MarketplaceUnlocks       []json.RawMessage `json:"marketplaceUnlocks"`
	MarketplaceSubscriptions []json.RawMessage `json:"marketplaceSubscriptions"`
}

func NewDocument() *Document {
	doc := &Document{}
	doc.Normalize()
	return doc
}

// Normalize repairs the document shape in place: missing collections become
// empty, nil records are dropped and per-record defaults are backfilled.
// Calling it twice is the same as calling it once.
func (d *Document) Normalize() {
	if d.Platform.Name == "" {
		d.Platform.Name = DefaultPlatformName
	}
	if d.Platform.BankAccount == "" {
		d.Platform.BankAccount = DefaultPlatformBankAccount
	}
	if d.Platform.DefaultCommissionRate <= 0 {
		d.Platform.DefaultCommissionRate = DefaultCommissionRate
	}
	if d.Platform.PremiumSubscriptionMonthlyFee <= 0 {
		d.Platform.PremiumSubscriptionMonthlyFee = DefaultPremiumSubscriptionFee
	}

	d.Users = compact(d.Users)
	for _, u := range d.Users {
		if u.HotelIDs == nil {
			u.HotelIDs = []string{}
		}
		if u.Role == "" {
			u.Role = RoleCustomer
		}
	}
	d.Hotels = compact(d.Hotels)
	for _, h := range d.Hotels {
		if h.CancellationPolicy == "" {
			h.CancellationPolicy = PolicyModerate
		}
	}
	d.Rooms = compact(d.Rooms)
	d.Bookings = compact(d.Bookings)
	for _, b := range d.Bookings {
		if b.FraudFlags == nil {
			b.FraudFlags = []string{}
		}
		if b.Refund != nil && b.Refund.Rules == nil {
			b.Refund.Rules = []string{}
		}
	}
	d.Payments = compact(d.Payments)
	d.PaymentSessions = compact(d.PaymentSessions)
	d.FraudEvents = compact(d.FraudEvents)
	for _, e := range d.FraudEvents {
		if e.Flags == nil {
			e.Flags = []string{}
		}
	}
	d.WalletTransactions = compact(d.WalletTransactions)
	d.Notifications = compact(d.Notifications)
	d.PremiumSubscriptions = compact(d.PremiumSubscriptions)

	if d.MarketplaceListings == nil {
		d.MarketplaceListings = []json.RawMessage{}
	}
	if d.MarketplaceUnlocks == nil {
		d.MarketplaceUnlocks = []json.RawMessage{}
	}
	if d.MarketplaceSubscriptions == nil {
		d.MarketplaceSubscriptions = []json.RawMessage{}
	}
}

func compact[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

func (d *Document) FindUser(id string) *User {
	for _, u := range d.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (d *Document) FindHotel(id string) *Hotel {
	for _, h := range d.Hotels {
		if h.ID == id {
			return h
		}
	}
	return nil
}

func (d *Document) FindRoom(id string) *Room {
	for _, r := range d.Rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (d *Document) FindBooking(id string) *Booking {
	for _, b := range d.Bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (d *Document) HotelRooms(hotelID string) []*Room {
	var rooms []*Room
	for _, r := range d.Rooms {
		if r.HotelID == hotelID {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// CommissionRate is the hotel's rate, or the platform default when unset.
func (d *Document) CommissionRate(h *Hotel) float64 {
	if h != nil && h.CommissionRate > 0 {
		return h.CommissionRate
	}
	return d.Platform.DefaultCommissionRate
}
