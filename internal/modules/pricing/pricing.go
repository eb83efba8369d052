// Package pricing derives the booking price breakdown and the occupancy based
// rate recommendations shown on the hotel dashboard.
package pricing

import (
	"math"
	"time"

	"hut/internal/domain"
)

const DefaultMinServiceFee int64 = 2500

type Input struct {
	PricePerNight   int64
	Nights          int
	CommissionRate  float64
	PickupRequested bool
	PickupFee       int64
}

// Calculate never fails; negative inputs are treated as zero.
func Calculate(in Input, minServiceFee int64) domain.Pricing {
	price := nonNegative(float64(in.PricePerNight))
	nights := nonNegative(float64(in.Nights))
	rate := nonNegative(in.CommissionRate)
	if minServiceFee < 0 {
		minServiceFee = 0
	}

	roomSubtotal := round(price * nights)
	serviceFee := round(float64(roomSubtotal) * rate)
	if serviceFee < minServiceFee {
		serviceFee = minServiceFee
	}
	var pickupTotal int64
	if in.PickupRequested {
		pickupTotal = round(nonNegative(float64(in.PickupFee)))
	}

	return domain.Pricing{
		RoomSubtotal:          roomSubtotal,
		ServiceFee:            serviceFee,
		PickupTotal:           pickupTotal,
		TotalPaid:             roomSubtotal + serviceFee + pickupTotal,
		HotelPayout:           roomSubtotal + pickupTotal,
		PlatformRevenue:       serviceFee,
		CommissionRateApplied: rate,
	}
}

func round(v float64) int64 { return int64(math.Round(v)) }

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

const DefaultLookbackDays = 30

type Insight struct {
	RoomID         string  `json:"roomId"`
	Category       string  `json:"category"`
	BasePrice      int64   `json:"basePrice"`
	OccupancyRate  float64 `json:"occupancyRate"`
	BookedNights   int     `json:"bookedNights"`
	CapacityNights int     `json:"capacityNights"`
	Recommendation string  `json:"recommendation"`
}

// Insights measures occupancy of each hotel room over the last lookbackDays,
// counting confirmed bookings created inside the window.
func Insights(doc *domain.Document, hotelID string, now time.Time, lookbackDays int) []Insight {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	since := now.Add(-time.Duration(lookbackDays) * 24 * time.Hour)

	rooms := doc.HotelRooms(hotelID)
	out := make([]Insight, 0, len(rooms))
	for _, room := range rooms {
		booked := 0
		for _, b := range doc.Bookings {
			if b.RoomID != room.ID || b.Status != domain.BookingConfirmed || b.CreatedAt.Before(since) {
				continue
			}
			booked += b.Nights
		}
		capacity := room.TotalUnits * lookbackDays
		var occupancy float64
		if capacity > 0 {
			occupancy = float64(booked) / float64(capacity)
		}
		out = append(out, Insight{
			RoomID:         room.ID,
			Category:       room.Category,
			BasePrice:      room.PricePerNight,
			OccupancyRate:  occupancy,
			BookedNights:   booked,
			CapacityNights: capacity,
			Recommendation: recommend(occupancy),
		})
	}
	return out
}

func recommend(occupancy float64) string {
	switch {
	case occupancy >= 0.8:
		return "Increase by 10%-15% for this category."
	case occupancy >= 0.5:
		return "Keep current rate; test +5% on weekends."
	case occupancy >= 0.3:
		return "Offer 5%-8% discount on mid-week nights."
	default:
		return "Run demand campaign and test 10%-12% discount."
	}
}
