// Package admin holds the hotel-admin and platform-owner operations: hotel
// onboarding, premium listings, dashboards and payout settlement.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"hut/internal/domain"
	"hut/internal/domain/stay"
	"hut/internal/modules/auth"
	"hut/internal/modules/availability"
	"hut/internal/modules/pricing"
	"hut/internal/pkg/validator"
	"hut/internal/store"
)

const (
	PremiumDurationDays      = 30
	MinCommissionRate        = 0.05
	DefaultCommissionPercent = 12.0

	manualProvider = "manual"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

type Service struct {
	store             *store.Store
	minPasswordLength int
	log               *slog.Logger
	now               func() time.Time
	newID             func() string
}

func NewService(st *store.Store, minPasswordLength int, log *slog.Logger) *Service {
	if minPasswordLength <= 0 {
		minPasswordLength = auth.DefaultMinPasswordLength
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:             st,
		minPasswordLength: minPasswordLength,
		log:               log,
		now:               time.Now,
		newID:             uuid.NewString,
	}
}

func (s *Service) MinPasswordLength() int { return s.minPasswordLength }

func slugify(name string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// CreateHotel onboards a hotel, optionally with its own hotel_admin account
// and a first month of premium listing. Only platform admins may call it.
func (s *Service) CreateHotel(ctx context.Context, actorID string, req CreateHotelRequest) (CreateHotelResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Location = strings.TrimSpace(req.Location)
	req.BankName = strings.TrimSpace(req.BankName)
	req.BankAccount = strings.TrimSpace(req.BankAccount)
	req.AdminName = strings.TrimSpace(req.AdminName)
	req.AdminEmail = strings.ToLower(strings.TrimSpace(req.AdminEmail))

	if req.Name == "" || req.BankName == "" || req.BankAccount == "" {
		return CreateHotelResult{}, ErrMissingHotelDetails
	}
	if errs := validator.Validate(req); errs != nil {
		return CreateHotelResult{}, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	withAdmin := req.AdminName != "" || req.AdminEmail != "" || req.AdminPassword != ""
	var passwordHash string
	if withAdmin {
		if req.AdminName == "" || req.AdminEmail == "" || req.AdminPassword == "" {
			return CreateHotelResult{}, ErrIncompleteAdmin
		}
		if len(req.AdminPassword) < s.minPasswordLength {
			return CreateHotelResult{}, ErrAdminPasswordShort
		}
		// Hashing is slow; keep it out of the write queue.
		hash, err := auth.HashPassword(req.AdminPassword)
		if err != nil {
			return CreateHotelResult{}, fmt.Errorf("hash admin password: %w", err)
		}
		passwordHash = hash
	}

	policy := req.CancellationPolicy
	if policy == "" {
		policy = domain.PolicyFlexible
	}
	percent := DefaultCommissionPercent
	if req.CommissionPercent != nil {
		percent = *req.CommissionPercent
	}
	rate := max(MinCommissionRate, percent/100)
	pickupFee := max(0, req.PickupFee)

	return store.Update(ctx, s.store, func(_ context.Context, doc *domain.Document) (CreateHotelResult, error) {
		actor := doc.FindUser(actorID)
		if actor == nil || actor.Role != domain.RolePlatformAdmin {
			return CreateHotelResult{}, ErrForbidden
		}

		now := s.now().UTC()
		hotel := &domain.Hotel{
			ID:                 fmt.Sprintf("hotel-%s-%d", slugify(req.Name), now.UnixMilli()),
			Name:               req.Name,
			Description:        req.Description,
			Location:           req.Location,
			BankName:           req.BankName,
			BankAccount:        req.BankAccount,
			CancellationPolicy: policy,
			CommissionRate:     rate,
			PickupFee:          pickupFee,
			CreatedAt:          now,
		}

		var res CreateHotelResult
		if withAdmin {
			if auth.FindByEmail(doc, req.AdminEmail) != nil {
				return CreateHotelResult{}, ErrAdminEmailExists
			}
			u := &domain.User{
				ID:           s.newID(),
				Role:         domain.RoleHotelAdmin,
				Name:         req.AdminName,
				Email:        req.AdminEmail,
				HotelIDs:     []string{hotel.ID},
				PasswordHash: passwordHash,
				CreatedAt:    now,
			}
			doc.Users = append(doc.Users, u)
			pub := u.Public()
			res.Admin = &pub
		}

		doc.Hotels = append(doc.Hotels, hotel)
		if req.PremiumListingActive {
			s.extendPremium(doc, hotel, actor.ID, now)
		}

		cp := *hotel
		res.Hotel = &cp
		return res, nil
	})
}

// RenewPremium extends the hotel's premium listing by one period, counting
// from the current expiry when it is still in the future.
func (s *Service) RenewPremium(ctx context.Context, actorID, hotelID string, now time.Time) (*domain.Hotel, error) {
	return store.Update(ctx, s.store, func(_ context.Context, doc *domain.Document) (*domain.Hotel, error) {
		hotel, actor, err := s.authorize(doc, actorID, hotelID)
		if err != nil {
			return nil, err
		}
		s.extendPremium(doc, hotel, actor.ID, now.UTC())
		cp := *hotel
		return &cp, nil
	})
}

func (s *Service) extendPremium(doc *domain.Document, hotel *domain.Hotel, actorID string, now time.Time) {
	start := now
	if hotel.PremiumListingExpiresAt != nil && hotel.PremiumListingExpiresAt.After(now) {
		start = *hotel.PremiumListingExpiresAt
	}
	expiry := start.Add(PremiumDurationDays * 24 * time.Hour)
	fee := doc.Platform.PremiumSubscriptionMonthlyFee

	hotel.PremiumListingActive = true
	hotel.PremiumListingExpiresAt = &expiry

	doc.PremiumSubscriptions = append(doc.PremiumSubscriptions, &domain.PremiumSubscription{
		ID:           s.newID(),
		HotelID:      hotel.ID,
		Amount:       fee,
		DurationDays: PremiumDurationDays,
		Status:       "active",
		StartedAt:    now,
		ExpiresAt:    expiry,
	})
	doc.Payments = append(doc.Payments, &domain.Payment{
		ID:                  s.newID(),
		HotelID:             domain.StrPtr(hotel.ID),
		UserID:              domain.StrPtr(actorID),
		TransactionRef:      fmt.Sprintf("HUT-PREM-%d", now.UnixMilli()),
		TransactionType:     domain.TxPremiumSubscription,
		PaymentProvider:     manualProvider,
		PaymentExternalID:   manualProvider,
		GrossAmount:         fee,
		PlatformEarning:     fee,
		HotelBankAccount:    domain.StrPtr(hotel.BankAccount),
		PlatformBankAccount: doc.Platform.BankAccount,
		CreatedAt:           now,
	})
	s.log.Info("premium listing extended", "hotel_id", hotel.ID, "expires_at", expiry)
}

// ExpirePremium switches off premium listings whose expiry has passed and
// marks their active subscriptions expired. It returns the hotels changed.
func (s *Service) ExpirePremium(ctx context.Context, now time.Time) (int, error) {
	return store.Update(ctx, s.store, func(_ context.Context, doc *domain.Document) (int, error) {
		expired := 0
		for _, h := range doc.Hotels {
			if !h.PremiumListingActive || h.PremiumListingExpiresAt == nil || h.PremiumListingExpiresAt.After(now) {
				continue
			}
			h.PremiumListingActive = false
			expired++
			for _, sub := range doc.PremiumSubscriptions {
				if sub.HotelID == h.ID && sub.Status == "active" && !sub.ExpiresAt.After(now) {
					sub.Status = "expired"
				}
			}
		}
		return expired, nil
	})
}

// CreateRoom adds a room category to a hotel the actor manages.
func (s *Service) CreateRoom(ctx context.Context, actorID, hotelID string, req CreateRoomRequest) (domain.Room, error) {
	req.Category = strings.TrimSpace(req.Category)
	if errs := validator.Validate(req); errs != nil {
		return domain.Room{}, ErrInvalidRoom
	}
	return store.Update(ctx, s.store, func(_ context.Context, doc *domain.Document) (domain.Room, error) {
		if _, _, err := s.authorize(doc, actorID, hotelID); err != nil {
			return domain.Room{}, err
		}
		room := &domain.Room{
			ID:            s.newID(),
			HotelID:       hotelID,
			Category:      req.Category,
			PricePerNight: req.PricePerNight,
			TotalUnits:    req.TotalUnits,
		}
		doc.Rooms = append(doc.Rooms, room)
		return *room, nil
	})
}

// ListHotels returns the hotels the actor may manage with their booking
// totals. Premium listings come first.
func (s *Service) ListHotels(ctx context.Context, actorID string) ([]HotelSummary, error) {
	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	actor := doc.FindUser(actorID)
	if actor == nil {
		return nil, ErrForbidden
	}

	out := []HotelSummary{}
	for _, h := range doc.Hotels {
		if !actor.CanAccessHotel(h.ID) {
			continue
		}
		sum := HotelSummary{Hotel: h}
		for _, b := range doc.Bookings {
			if b.HotelID == h.ID {
				sum.BookingCount++
			}
		}
		for _, p := range doc.Payments {
			if isHotelSale(p, h.ID) {
				sum.GrossSales += p.GrossAmount
				sum.PlatformRevenue += p.PlatformEarning
			}
		}
		out = append(out, sum)
	}

	now := s.now()
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].PremiumActive(now), out[j].PremiumActive(now)
		if pi != pj {
			return pi
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// HotelDashboard assembles the hotel admin's view for one stay window.
func (s *Service) HotelDashboard(ctx context.Context, actorID, hotelID string, checkIn, checkOut stay.Date, now time.Time) (Dashboard, error) {
	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	hotel, _, err := s.authorize(doc, actorID, hotelID)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Hotel:           hotel,
		Rooms:           doc.HotelRooms(hotelID),
		Bookings:        []*domain.Booking{},
		Payments:        []*domain.Payment{},
		Availability:    availability.Hotel(doc, hotelID, checkIn.Time(), checkOut.Time()),
		PricingInsights: pricing.Insights(doc, hotelID, now, pricing.DefaultLookbackDays),
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
	}
	if d.Rooms == nil {
		d.Rooms = []*domain.Room{}
	}
	for _, b := range doc.Bookings {
		if b.HotelID == hotelID {
			d.Bookings = append(d.Bookings, b)
		}
	}
	for _, p := range doc.Payments {
		if p.HotelID == nil || *p.HotelID != hotelID {
			continue
		}
		d.Payments = append(d.Payments, p)
		if p.TransactionType == domain.TxBookingPayment {
			d.GrossSales += p.GrossAmount
			d.PlatformRevenue += p.PlatformEarning
			d.HotelReceivables += p.HotelPayout
		}
	}
	sort.SliceStable(d.Bookings, func(i, j int) bool {
		return d.Bookings[i].CreatedAt.After(d.Bookings[j].CreatedAt)
	})
	sortNewestFirst(d.Payments)
	return d, nil
}

// OwnerDashboard summarizes the whole ledger for the platform owner.
// Wallet top-ups are customer money held by the platform, not revenue.
func (s *Service) OwnerDashboard(ctx context.Context) (OwnerDashboard, error) {
	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return OwnerDashboard{}, err
	}

	payments := append([]*domain.Payment(nil), doc.Payments...)
	sortNewestFirst(payments)

	var sum OwnerSummary
	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		sum.PaymentCount++
		switch p.TransactionType {
		case domain.TxBookingPayment:
			sum.CommissionRevenue += p.PlatformEarning
		case domain.TxPremiumSubscription:
			sum.PremiumRevenue += p.PlatformEarning
		case domain.TxMarketplaceContactUnlock:
			sum.MarketplaceRevenue += p.PlatformEarning
		case domain.TxMarketplacePlanPurchase:
			sum.MarketplacePlanRevenue += p.PlatformEarning
		}
		if p.TransactionType != domain.TxWalletTopup {
			sum.NetPlatformRevenue += p.PlatformEarning
		}

		row := PaymentRow{Payment: p, HotelName: "-", UserName: "-"}
		if p.HotelID != nil {
			sum.HotelTransactionCount++
			sum.GrossHotelVolume += p.GrossAmount
			sum.TotalHotelPayouts += p.HotelPayout
			row.HotelName = "Unknown hotel"
			if h := doc.FindHotel(*p.HotelID); h != nil {
				row.HotelName = h.Name
			}
		}
		if p.UserID != nil {
			row.UserName = "Unknown user"
			if u := doc.FindUser(*p.UserID); u != nil {
				row.UserName = u.Name
			}
		}
		rows = append(rows, row)
	}
	for _, u := range doc.Users {
		sum.WalletLiability += u.WalletBalance
	}
	return OwnerDashboard{Summary: sum, Payments: rows}, nil
}

// SettlePayouts marks every unsettled ledger row of the hotel as paid out
// and reports the net amount owed to the hotel across those rows.
func (s *Service) SettlePayouts(ctx context.Context, actorID, hotelID string) (Settlement, error) {
	return store.Update(ctx, s.store, func(_ context.Context, doc *domain.Document) (Settlement, error) {
		if _, _, err := s.authorize(doc, actorID, hotelID); err != nil {
			return Settlement{}, err
		}
		now := s.now().UTC()
		res := Settlement{HotelID: hotelID, SettledAt: now}
		for _, p := range doc.Payments {
			if p.Settled || p.HotelID == nil || *p.HotelID != hotelID {
				continue
			}
			p.Settled = true
			at := now
			p.SettledAt = &at
			res.Count++
			res.NetPayout += p.HotelPayout
		}
		if res.Count > 0 {
			s.log.Info("payouts settled", "hotel_id", hotelID, "rows", res.Count, "net_payout", res.NetPayout)
		}
		return res, nil
	})
}

func (s *Service) authorize(doc *domain.Document, actorID, hotelID string) (*domain.Hotel, *domain.User, error) {
	actor := doc.FindUser(actorID)
	if actor == nil || !actor.CanAccessHotel(hotelID) {
		return nil, nil, ErrForbidden
	}
	hotel := doc.FindHotel(hotelID)
	if hotel == nil {
		return nil, nil, ErrHotelNotFound
	}
	return hotel, actor, nil
}

func isHotelSale(p *domain.Payment, hotelID string) bool {
	return p.TransactionType == domain.TxBookingPayment && p.HotelID != nil && *p.HotelID == hotelID
}

func sortNewestFirst(payments []*domain.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
}
