// Package catalog serves the public hotel listing: search, hotel pages and
// room availability for a stay.
package catalog

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"hut/internal/domain"
	"hut/internal/domain/stay"
	"hut/internal/modules/availability"
	"hut/internal/modules/refund"
	"hut/internal/store"
)

const roomTypePreviewSize = 3

type Service struct {
	store *store.Store
	now   func() time.Time
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// DefaultStay is tomorrow to the day after, in UTC.
func (s *Service) DefaultStay() (stay.Date, stay.Date) {
	today := stay.NewDate(s.now())
	return today.AddDays(1), today.AddDays(2)
}

// ResolveStay parses the requested dates, defaulting missing ends.
func (s *Service) ResolveStay(checkIn, checkOut string) (stay.Date, stay.Date, error) {
	defIn, defOut := s.DefaultStay()
	if checkIn == "" {
		checkIn = defIn.String()
	}
	if checkOut == "" {
		checkOut = defOut.String()
	}
	in, out, _, err := stay.ValidateStrings(checkIn, checkOut)
	if err != nil {
		return stay.Date{}, stay.Date{}, err
	}
	return in, out, nil
}

func (s *Service) Search(ctx context.Context, f SearchFilter) (SearchResult, error) {
	switch f.Sort {
	case "":
		f.Sort = SortRecommended
	case SortRecommended, SortPriceAsc, SortPriceDesc:
	default:
		return SearchResult{}, fmt.Errorf("%w: %s", ErrInvalidSort, f.Sort)
	}

	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	now := s.now()
	query := strings.ToLower(strings.TrimSpace(f.Destination))

	cards := make([]HotelCard, 0, len(doc.Hotels))
	for _, h := range doc.Hotels {
		if query != "" && !strings.Contains(searchable(h), query) {
			continue
		}
		card := s.card(doc, h, f.CheckInDate, f.CheckOutDate, now)
		if card.MinPrice < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && card.MinPrice > f.MaxPrice {
			continue
		}
		cards = append(cards, card)
	}

	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		switch f.Sort {
		case SortPriceAsc:
			return a.MinPrice < b.MinPrice
		case SortPriceDesc:
			return a.MinPrice > b.MinPrice
		default:
			if a.PremiumListingActive != b.PremiumListingActive {
				return a.PremiumListingActive
			}
			return a.Name < b.Name
		}
	})

	return SearchResult{
		Hotels:       cards,
		Count:        len(cards),
		Total:        len(doc.Hotels),
		CheckInDate:  f.CheckInDate,
		CheckOutDate: f.CheckOutDate,
		Sort:         f.Sort,
	}, nil
}

func (s *Service) Hotel(ctx context.Context, hotelID string, checkIn, checkOut stay.Date) (HotelPage, error) {
	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return HotelPage{}, err
	}
	h := doc.FindHotel(hotelID)
	if h == nil {
		return HotelPage{}, ErrHotelNotFound
	}

	rooms := doc.HotelRooms(h.ID)
	cards := make([]RoomCard, 0, len(rooms))
	for _, r := range rooms {
		cards = append(cards, RoomCard{
			Room:         r,
			Availability: availability.Room(doc, r, checkIn.Time(), checkOut.Time()),
		})
	}
	return HotelPage{
		Hotel:             s.card(doc, h, checkIn, checkOut, s.now()),
		Rooms:             cards,
		CancellationRules: refund.Rules(h.CancellationPolicy),
		CheckInDate:       checkIn,
		CheckOutDate:      checkOut,
	}, nil
}

func (s *Service) Availability(ctx context.Context, hotelID string, checkIn, checkOut stay.Date) (HotelAvailability, error) {
	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return HotelAvailability{}, err
	}
	if doc.FindHotel(hotelID) == nil {
		return HotelAvailability{}, ErrHotelNotFound
	}
	return HotelAvailability{
		HotelID:      hotelID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Rooms:        availability.Hotel(doc, hotelID, checkIn.Time(), checkOut.Time()),
	}, nil
}

func (s *Service) card(doc *domain.Document, h *domain.Hotel, checkIn, checkOut stay.Date, now time.Time) HotelCard {
	rooms := doc.HotelRooms(h.ID)
	minPrice := int64(math.MaxInt64)
	preview := []string{}
	for i, r := range rooms {
		minPrice = min(minPrice, r.PricePerNight)
		if i < roomTypePreviewSize {
			preview = append(preview, r.Category)
		}
	}
	if len(rooms) == 0 {
		minPrice = 0
	}

	available := 0
	for _, ra := range availability.Hotel(doc, h.ID, checkIn.Time(), checkOut.Time()) {
		available += ra.AvailableUnits
	}

	return HotelCard{
		ID:                   h.ID,
		Name:                 h.Name,
		Description:          h.Description,
		Location:             h.Location,
		CancellationPolicy:   h.CancellationPolicy,
		PickupFee:            h.PickupFee,
		PremiumListingActive: h.PremiumActive(now),
		MinPrice:             minPrice,
		RoomsAvailable:       available,
		RoomTypePreview:      preview,
	}
}

func searchable(h *domain.Hotel) string {
	return strings.ToLower(strings.Join([]string{h.Name, h.Location, h.Description}, " "))
}
