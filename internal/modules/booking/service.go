// Package booking orchestrates a stay from reservation to cancellation. Every
// state change runs as a single store mutator, so the capacity check, the
// fraud check, the provider call and the resulting records commit together.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"hut/internal/domain"
	"hut/internal/domain/stay"
	"hut/internal/modules/availability"
	"hut/internal/modules/fraud"
	"hut/internal/modules/notification"
	"hut/internal/modules/payment"
	"hut/internal/modules/pricing"
	"hut/internal/modules/refund"
	"hut/internal/pkg/validator"
	"hut/internal/store"
)

// Notifier is told about committed inventory changes.
type Notifier interface {
	AvailabilityChanged(hotelID, bookingID string)
}

type Service struct {
	store         *store.Store
	provider      payment.Provider
	scorer        *fraud.Scorer
	notifs        *notification.Service
	notifier      Notifier
	minServiceFee int64
	log           *slog.Logger
	now           func() time.Time
	newID         func() string
}

func NewService(
	st *store.Store,
	provider payment.Provider,
	scorer *fraud.Scorer,
	notifs *notification.Service,
	notifier Notifier,
	minServiceFee int64,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:         st,
		provider:      provider,
		scorer:        scorer,
		notifs:        notifs,
		notifier:      notifier,
		minServiceFee: minServiceFee,
		log:           log,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

type stayDates struct {
	in, out stay.Date
	nights  int
}

// Create reserves a room and starts payment. A booking that fails payment
// initialisation is kept as payment_failed and ErrPaymentInit is returned.
func (s *Service) Create(ctx context.Context, req CreateRequest) (CreateResult, error) {
	req.EmergencyContactName = strings.TrimSpace(req.EmergencyContactName)
	req.EmergencyContactPhone = strings.TrimSpace(req.EmergencyContactPhone)
	req.SpecialRequest = strings.TrimSpace(req.SpecialRequest)
	if req.Guests < 1 {
		req.Guests = 1
	}
	if errs := validator.Validate(req); errs != nil {
		return CreateResult{}, fmt.Errorf("%w: %v", ErrValidation, errs)
	}
	in, out, nights, err := stay.ValidateStrings(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return CreateResult{}, err
	}
	dates := stayDates{in: in, out: out, nights: nights}

	res, err := store.Update(ctx, s.store, func(ctx context.Context, doc *domain.Document) (CreateResult, error) {
		return s.create(ctx, doc, req, dates)
	})
	if err != nil {
		return res, err
	}
	if res.Redirect == RedirectSuccess {
		s.availabilityChanged(res.Booking.HotelID, res.Booking.ID)
	}
	return res, nil
}

func (s *Service) create(ctx context.Context, doc *domain.Document, req CreateRequest, dates stayDates) (CreateResult, error) {
	user := doc.FindUser(req.CustomerID)
	if user == nil {
		return CreateResult{}, ErrUserNotFound
	}
	hotel := doc.FindHotel(req.HotelID)
	room := doc.FindRoom(req.RoomID)
	if hotel == nil || room == nil || room.HotelID != hotel.ID {
		return CreateResult{}, ErrHotelNotFound
	}

	if _, err := availability.AssertAvailable(doc, room, dates.in.Time(), dates.out.Time()); err != nil {
		return CreateResult{}, err
	}

	price := pricing.Calculate(pricing.Input{
		PricePerNight:   room.PricePerNight,
		Nights:          dates.nights,
		CommissionRate:  doc.CommissionRate(hotel),
		PickupRequested: req.PickupRequested,
		PickupFee:       hotel.PickupFee,
	}, s.minServiceFee)

	risk := s.scorer.Assess(doc, fraud.Attempt{
		Email:   user.Email,
		Phone:   user.Phone,
		CheckIn: dates.in.Time(),
	}, price.TotalPaid)

	now := s.now().UTC()
	if risk.Blocked {
		doc.FraudEvents = append(doc.FraudEvents, s.fraudEvent(hotel.ID, user.Email, user.Phone, risk, domain.FraudBlocked, now))
		return CreateResult{}, ErrFraudBlocked
	}

	b := &domain.Booking{
		ID:                    s.newID(),
		HotelID:               hotel.ID,
		RoomID:                room.ID,
		RoomCategory:          room.Category,
		CustomerUserID:        user.ID,
		CustomerName:          user.Name,
		Email:                 user.Email,
		Phone:                 user.Phone,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		CheckInDate:           dates.in,
		CheckOutDate:          dates.out,
		Nights:                dates.nights,
		Guests:                req.Guests,
		PickupRequested:       req.PickupRequested,
		SpecialRequest:        req.SpecialRequest,
		Pricing:               price,
		FraudScore:            risk.Score,
		FraudFlags:            risk.Flags,
		Status:                domain.BookingPendingPayment,
		PaymentStatus:         domain.PaymentPending,
		CancellationPolicy:    hotel.CancellationPolicy,
		CreatedAt:             now,
	}
	doc.Bookings = append(doc.Bookings, b)

	if risk.ReviewNeeded {
		doc.FraudEvents = append(doc.FraudEvents, s.fraudEvent(hotel.ID, b.Email, b.Phone, risk, domain.FraudReview, now))
	}

	// The queue never cancels a running mutator; Guarded bounds the call.
	started, err := s.provider.Initialize(context.WithoutCancel(ctx), payment.InitRequest{
		BookingID:    b.ID,
		Amount:       price.TotalPaid,
		CustomerName: b.CustomerName,
		Email:        b.Email,
		Phone:        b.Phone,
		CallbackURL:  req.CallbackURL,
	})
	if err != nil {
		b.Status = domain.BookingPaymentFailed
		b.PaymentStatus = domain.PaymentFailed
		b.PaymentError = err.Error()
		s.log.Warn("payment initialization failed", "booking_id", b.ID, "error", err)
		return CreateResult{Booking: *b}, fmt.Errorf("%w: %w", ErrPaymentInit, err)
	}

	session := &domain.PaymentSession{
		ID:         s.newID(),
		BookingID:  b.ID,
		Provider:   started.Provider,
		Reference:  started.Reference,
		PaymentURL: domain.StrPtr(started.PaymentURL),
		Status:     domain.SessionPending,
		CreatedAt:  now,
	}
	doc.PaymentSessions = append(doc.PaymentSessions, session)

	if started.Status == payment.StatusPaid {
		session.Status = domain.SessionPaid
		s.markPaid(doc, b, hotel, started.Provider, started.Reference, started.Reference)
		return CreateResult{Booking: *b, Redirect: RedirectSuccess}, nil
	}

	b.PaymentReference = started.Reference
	b.PaymentProvider = started.Provider
	return CreateResult{Booking: *b, Redirect: RedirectPayment, PaymentURL: started.PaymentURL}, nil
}

func (s *Service) fraudEvent(hotelID, email, phone string, risk fraud.Assessment, action domain.FraudAction, at time.Time) *domain.FraudEvent {
	return &domain.FraudEvent{
		ID:        s.newID(),
		HotelID:   hotelID,
		Email:     email,
		Phone:     phone,
		Score:     risk.Score,
		Flags:     append([]string{}, risk.Flags...),
		Action:    action,
		CreatedAt: at,
	}
}

// markPaid confirms b and records the booking payment. It reports false when
// b was already paid.
func (s *Service) markPaid(doc *domain.Document, b *domain.Booking, h *domain.Hotel, provider, reference, externalID string) bool {
	if b.PaymentStatus == domain.PaymentPaid {
		return false
	}
	if externalID == "" {
		externalID = reference
	}
	paidAt := s.now().UTC()

	b.Status = domain.BookingConfirmed
	b.PaymentStatus = domain.PaymentPaid
	b.PaymentProvider = provider
	b.PaymentReference = reference
	b.PaymentExternalID = externalID
	b.PaidAt = &paidAt

	doc.Payments = append(doc.Payments, &domain.Payment{
		ID:                  s.newID(),
		BookingID:           domain.StrPtr(b.ID),
		HotelID:             domain.StrPtr(h.ID),
		UserID:              domain.StrPtr(b.CustomerUserID),
		TransactionRef:      reference,
		TransactionType:     domain.TxBookingPayment,
		PaymentProvider:     provider,
		PaymentExternalID:   externalID,
		GrossAmount:         b.Pricing.TotalPaid,
		HotelPayout:         b.Pricing.HotelPayout,
		PlatformEarning:     b.Pricing.PlatformRevenue,
		CommissionRate:      b.Pricing.CommissionRateApplied,
		HotelBankAccount:    domain.StrPtr(h.BankAccount),
		PlatformBankAccount: doc.Platform.BankAccount,
		CreatedAt:           paidAt,
	})
	s.notifs.BookingConfirmed(doc, b, h)
	return true
}

// ConfirmPayment handles a provider callback. A reference matches a pending
// session exactly or when it contains the session reference. Callbacks for
// an already paid booking succeed without a second verification.
func (s *Service) ConfirmPayment(ctx context.Context, provider, reference string, query map[string]string) (string, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return "", fmt.Errorf("%w: missing payment reference", ErrValidation)
	}

	type outcome struct {
		bookingID string
		hotelID   string
		confirmed bool
	}

	res, err := store.Update(ctx, s.store, func(ctx context.Context, doc *domain.Document) (outcome, error) {
		session := findPendingSession(doc, provider, reference)
		if session == nil {
			return outcome{}, ErrPaymentSessionNotFound
		}
		b := doc.FindBooking(session.BookingID)
		if b == nil {
			return outcome{}, ErrNotFound
		}
		h := doc.FindHotel(b.HotelID)
		if h == nil {
			return outcome{}, ErrHotelNotFound
		}
		if b.PaymentStatus == domain.PaymentPaid {
			return outcome{bookingID: b.ID}, nil
		}

		verdict, err := s.provider.Verify(context.WithoutCancel(ctx), payment.VerifyRequest{
			Reference: session.Reference,
			Query:     query,
		})
		if err != nil || !verdict.Verified {
			session.Status = domain.SessionFailed
			b.PaymentStatus = domain.PaymentFailed
			b.Status = domain.BookingPaymentFailed
			if err != nil {
				b.PaymentError = err.Error()
				return outcome{bookingID: b.ID}, fmt.Errorf("%w: %w", ErrPaymentVerification, err)
			}
			return outcome{bookingID: b.ID}, ErrPaymentVerification
		}

		verifiedAt := s.now().UTC()
		session.Status = domain.SessionPaid
		session.VerifiedAt = &verifiedAt
		confirmed := s.markPaid(doc, b, h, session.Provider, session.Reference, verdict.ExternalID)
		return outcome{bookingID: b.ID, hotelID: h.ID, confirmed: confirmed}, nil
	})
	if err != nil {
		return res.bookingID, err
	}
	if res.confirmed {
		s.availabilityChanged(res.hotelID, res.bookingID)
	}
	return res.bookingID, nil
}

func findPendingSession(doc *domain.Document, provider, reference string) *domain.PaymentSession {
	for _, ps := range doc.PaymentSessions {
		if ps.Provider != provider || ps.Status != domain.SessionPending || ps.Reference == "" {
			continue
		}
		if ps.Reference == reference || strings.Contains(reference, ps.Reference) {
			return ps
		}
	}
	return nil
}

// Cancel cancels a confirmed booking for its customer and books the refund
// due under the policy frozen on the booking.
func (s *Service) Cancel(ctx context.Context, bookingID, customerID string, now time.Time) (domain.Booking, error) {
	now = now.UTC()
	b, err := store.Update(ctx, s.store, func(_ context.Context, doc *domain.Document) (domain.Booking, error) {
		b := doc.FindBooking(bookingID)
		if b == nil || b.CustomerUserID != customerID {
			return domain.Booking{}, ErrNotFound
		}
		if b.Status == domain.BookingCancelled {
			return domain.Booking{}, ErrAlreadyCancelled
		}
		if b.Status != domain.BookingConfirmed {
			return domain.Booking{}, ErrNotCancellable
		}
		h := doc.FindHotel(b.HotelID)
		if h == nil {
			return domain.Booking{}, ErrHotelNotFound
		}

		r := refund.Calculate(refundInput(b, now))
		b.Status = domain.BookingCancelled
		b.PaymentStatus = refund.PaymentStatusFor(r.RefundTotal, b.Pricing.TotalPaid)
		b.CancelledAt = &now
		b.Refund = &r

		doc.Payments = append(doc.Payments, refundPayment(doc, b, h, r, s.newID(), now))
		s.notifs.BookingCancelled(doc, b, h, r)
		return *b, nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	s.availabilityChanged(b.HotelID, b.ID)
	return b, nil
}

func refundInput(b *domain.Booking, now time.Time) refund.Input {
	return refund.Input{
		Policy:          b.CancellationPolicy,
		CancelledAt:     now,
		CheckIn:         b.CheckInDate.Time(),
		TotalPaid:       b.Pricing.TotalPaid,
		PickupTotal:     b.Pricing.PickupTotal,
		PickupRequested: b.PickupRequested,
	}
}

func refundPayment(doc *domain.Document, b *domain.Booking, h *domain.Hotel, r domain.Refund, id string, at time.Time) *domain.Payment {
	provider := b.PaymentProvider
	if provider == "" {
		provider = "n/a"
	}
	externalID := b.PaymentExternalID
	if externalID == "" {
		externalID = b.PaymentReference
	}
	if externalID == "" {
		externalID = "n/a"
	}
	return &domain.Payment{
		ID:                  id,
		BookingID:           domain.StrPtr(b.ID),
		HotelID:             domain.StrPtr(b.HotelID),
		UserID:              domain.StrPtr(b.CustomerUserID),
		TransactionRef:      fmt.Sprintf("HUT-RFND-%d", at.UnixMilli()),
		TransactionType:     domain.TxRefund,
		PaymentProvider:     provider,
		PaymentExternalID:   externalID,
		GrossAmount:         -r.RefundTotal,
		HotelPayout:         -min(b.Pricing.HotelPayout, r.RefundTotal),
		PlatformEarning:     -max(0, r.RefundTotal-b.Pricing.HotelPayout),
		CommissionRate:      b.Pricing.CommissionRateApplied,
		HotelBankAccount:    domain.StrPtr(h.BankAccount),
		PlatformBankAccount: doc.Platform.BankAccount,
		CreatedAt:           at,
	}
}

func (s *Service) Get(ctx context.Context, id string) (Details, error) {
	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return Details{}, err
	}
	b := doc.FindBooking(id)
	if b == nil {
		return Details{}, ErrNotFound
	}

	d := Details{
		Booking:       *b,
		Notifications: notification.ForBooking(doc, b.ID),
		RefundRules:   refund.Rules(b.CancellationPolicy),
	}
	if h := doc.FindHotel(b.HotelID); h != nil {
		d.HotelName = h.Name
	}
	for _, p := range doc.Payments {
		if p.BookingID != nil && *p.BookingID == b.ID && p.TransactionType == domain.TxBookingPayment {
			d.Payment = p
			break
		}
	}
	return d, nil
}

// GetFor is Get restricted to users allowed to see the booking: its customer,
// admins of its hotel and platform admins.
func (s *Service) GetFor(ctx context.Context, viewerID, id string) (Details, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return Details{}, err
	}
	ok, err := s.canView(ctx, viewerID, &d.Booking)
	if err != nil {
		return Details{}, err
	}
	if !ok {
		return Details{}, ErrNotFound
	}
	return d, nil
}

func (s *Service) canView(ctx context.Context, viewerID string, b *domain.Booking) (bool, error) {
	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return false, err
	}
	u := doc.FindUser(viewerID)
	if u == nil {
		return false, nil
	}
	if u.Role == domain.RoleCustomer {
		return u.ID == b.CustomerUserID, nil
	}
	return u.CanAccessHotel(b.HotelID), nil
}

// ListForCustomer returns the customer's bookings, newest first.
func (s *Service) ListForCustomer(ctx context.Context, userID string) ([]domain.Booking, error) {
	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Booking{}
	for _, b := range doc.Bookings {
		if b.CustomerUserID == userID {
			out = append(out, *b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RefundPreview returns what cancelling at now would refund. For a booking
// that is already cancelled it returns the refund that was granted.
func (s *Service) RefundPreview(ctx context.Context, id string, now time.Time) (domain.Refund, error) {
	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return domain.Refund{}, err
	}
	b := doc.FindBooking(id)
	if b == nil {
		return domain.Refund{}, ErrNotFound
	}
	if b.Refund != nil {
		return *b.Refund, nil
	}
	return refund.Calculate(refundInput(b, now.UTC())), nil
}

func (s *Service) availabilityChanged(hotelID, bookingID string) {
	if s.notifier != nil {
		s.notifier.AvailabilityChanged(hotelID, bookingID)
	}
}
