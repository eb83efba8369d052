// Package notification records the SMS and email acknowledgements sent for
// booking events. Delivery through SMS/email providers happens elsewhere;
// the records here are the audit trail shown to customers.
package notification

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"hut/internal/domain"
)

const StatusSent = "sent"

type Service struct {
	now   func() time.Time
	newID func() string
}

func NewService() *Service {
	return &Service{now: time.Now, newID: uuid.NewString}
}

func (s *Service) BookingConfirmed(doc *domain.Document, b *domain.Booking, h *domain.Hotel) []*domain.Notification {
	total := naira(b.Pricing.TotalPaid)
	sms := fmt.Sprintf("Hut! Booking confirmed (%s) at %s from %s to %s. Total paid: NGN %s.",
		shortID(b.ID), h.Name, b.CheckInDate, b.CheckOutDate, total)
	email := fmt.Sprintf("Hello %s, your Hut booking is confirmed.\n\n"+
		"Hotel: %s\nStay: %s to %s (%d nights)\nTotal paid: NGN %s\n"+
		"Emergency contact: %s (%s)\n\nThank you for using Hut!",
		b.CustomerName, h.Name, b.CheckInDate, b.CheckOutDate, b.Nights, total,
		b.EmergencyContactName, b.EmergencyContactPhone)

	return s.pushPair(doc, b, sms, email)
}

func (s *Service) BookingCancelled(doc *domain.Document, b *domain.Booking, h *domain.Hotel, r domain.Refund) []*domain.Notification {
	refund := naira(r.RefundTotal)
	sms := fmt.Sprintf("Hut! Booking %s cancelled. Refund: NGN %s.", shortID(b.ID), refund)
	email := fmt.Sprintf("Hello %s,\n\nYour booking at %s has been cancelled.\n"+
		"Refund approved: NGN %s.\nCancellation lead time: %.1f hours before check-in.\n\n"+
		"Regards,\nHut Support",
		b.CustomerName, h.Name, refund, math.Max(0, r.LeadHours))

	return s.pushPair(doc, b, sms, email)
}

// ForBooking lists the notifications of one booking, oldest first.
func ForBooking(doc *domain.Document, bookingID string) []*domain.Notification {
	out := []*domain.Notification{}
	for _, n := range doc.Notifications {
		if n.BookingID == bookingID {
			out = append(out, n)
		}
	}
	return out
}

func (s *Service) pushPair(doc *domain.Document, b *domain.Booking, smsBody, emailBody string) []*domain.Notification {
	return []*domain.Notification{
		s.push(doc, b, domain.ChannelSMS, b.Phone, smsBody),
		s.push(doc, b, domain.ChannelEmail, b.Email, emailBody),
	}
}

func (s *Service) push(doc *domain.Document, b *domain.Booking, ch domain.NotificationChannel, recipient, body string) *domain.Notification {
	n := &domain.Notification{
		ID:        s.newID(),
		BookingID: b.ID,
		HotelID:   b.HotelID,
		Channel:   ch,
		Recipient: recipient,
		Body:      body,
		Status:    StatusSent,
		CreatedAt: s.now().UTC(),
	}
	doc.Notifications = append(doc.Notifications, n)
	return n
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func naira(amount int64) string { return humanize.Comma(amount) }
