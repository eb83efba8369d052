package availability

import (
	"time"

	"hut/internal/domain"
	"hut/internal/domain/stay"
)

type RoomAvailability struct {
	RoomID         string `json:"roomId"`
	Category       string `json:"category"`
	TotalUnits     int    `json:"totalUnits"`
	ActiveBookings int    `json:"activeBookings"`
	AvailableUnits int    `json:"availableUnits"`
	SoldOut        bool   `json:"soldOut"`
}

// CountOverlapping counts capacity-blocking bookings on roomID that overlap
// [checkIn, checkOut). excludeBookingID is skipped when non-empty.
func CountOverlapping(doc *domain.Document, roomID string, checkIn, checkOut time.Time, excludeBookingID string) int {
	count := 0
	for _, b := range doc.Bookings {
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}
		if b.RoomID != roomID || !b.Status.BlocksInventory() {
			continue
		}
		if stay.Overlaps(b.CheckInDate.Time(), b.CheckOutDate.Time(), checkIn, checkOut) {
			count++
		}
	}
	return count
}

func Room(doc *domain.Document, room *domain.Room, checkIn, checkOut time.Time) RoomAvailability {
	active := CountOverlapping(doc, room.ID, checkIn, checkOut, "")
	available := room.TotalUnits - active
	if available < 0 {
		available = 0
	}
	return RoomAvailability{
		RoomID:         room.ID,
		Category:       room.Category,
		TotalUnits:     room.TotalUnits,
		ActiveBookings: active,
		AvailableUnits: available,
		SoldOut:        available <= 0,
	}
}

// Hotel returns availability for every room of hotelID, in document order.
func Hotel(doc *domain.Document, hotelID string, checkIn, checkOut time.Time) []RoomAvailability {
	rooms := doc.HotelRooms(hotelID)
	out := make([]RoomAvailability, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, Room(doc, r, checkIn, checkOut))
	}
	return out
}

// AssertAvailable must run against the live document inside the write lock,
// right before a booking is appended.
func AssertAvailable(doc *domain.Document, room *domain.Room, checkIn, checkOut time.Time) (RoomAvailability, error) {
	if room == nil {
		return RoomAvailability{}, ErrRoomNotFound
	}
	ra := Room(doc, room, checkIn, checkOut)
	if ra.AvailableUnits <= 0 {
		return ra, ErrSoldOut
	}
	return ra, nil
}
