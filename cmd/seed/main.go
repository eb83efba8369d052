package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"hut/internal/config"
	"hut/internal/domain"
	"hut/internal/modules/auth"
	"hut/internal/obs"
	"hut/internal/store"
)

type demoHotel struct {
	name     string
	location string
	bank     string
	account  string
	policy   domain.CancellationPolicy
	rate     float64
	pickup   int64
	premium  bool
	rooms    []domain.Room
}

var demoHotels = []demoHotel{
	{
		name: "Lagoon Suites", location: "Victoria Island, Lagos", bank: "GTBank", account: "0123456789",
		policy: domain.PolicyFlexible, rate: 0.12, pickup: 15000, premium: true,
		rooms: []domain.Room{
			{Category: "Standard", PricePerNight: 45000, TotalUnits: 6},
			{Category: "Deluxe", PricePerNight: 72000, TotalUnits: 4},
			{Category: "Executive Suite", PricePerNight: 150000, TotalUnits: 1},
		},
	},
	{
		name: "Abuja Court", location: "Maitama, Abuja", bank: "UBA", account: "9876543210",
		policy: domain.PolicyModerate, rate: 0.1, pickup: 10000,
		rooms: []domain.Room{
			{Category: "Classic", PricePerNight: 38000, TotalUnits: 8},
			{Category: "Family Room", PricePerNight: 65000, TotalUnits: 3},
		},
	},
	{
		name: "Garden City Lodge", location: "Port Harcourt", bank: "Access Bank", account: "1122334455",
		policy: domain.PolicyStrict, rate: 0.15,
		rooms: []domain.Room{
			{Category: "Standard", PricePerNight: 30000, TotalUnits: 5},
		},
	},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.AppEnv)
	ctx := context.Background()

	persister, err := store.OpenPersister(cfg, logger)
	if err != nil {
		logger.Error("store init failed", "error", err)
		os.Exit(1)
	}
	st := store.New(persister, logger)

	ownerPassword := getenv("SEED_OWNER_PASSWORD", "owner12345")
	adminPassword := getenv("SEED_HOTEL_ADMIN_PASSWORD", "hotel12345")
	ownerHash, err := auth.HashPassword(ownerPassword)
	if err != nil {
		logger.Error("hash failed", "error", err)
		os.Exit(1)
	}
	adminHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		logger.Error("hash failed", "error", err)
		os.Exit(1)
	}

	var created int
	err = st.Do(ctx, func(_ context.Context, doc *domain.Document) error {
		if len(doc.Users) > 0 || len(doc.Hotels) > 0 {
			return nil
		}
		now := time.Now().UTC()

		logger.Info("creating platform owner")
		doc.Users = append(doc.Users, &domain.User{
			ID:           uuid.NewString(),
			Role:         domain.RolePlatformAdmin,
			Name:         "Hut! Owner",
			Email:        "owner@hut.ng",
			PasswordHash: ownerHash,
			HotelIDs:     []string{},
			CreatedAt:    now,
		})

		logger.Info("creating hotels")
		for i, dh := range demoHotels {
			h := &domain.Hotel{
				ID:                 fmt.Sprintf("hotel-demo-%d", i+1),
				Name:               dh.name,
				Location:           dh.location,
				BankName:           dh.bank,
				BankAccount:        dh.account,
				CancellationPolicy: dh.policy,
				CommissionRate:     dh.rate,
				PickupFee:          dh.pickup,
				CreatedAt:          now,
			}
			if dh.premium {
				expiry := now.Add(30 * 24 * time.Hour)
				h.PremiumListingActive = true
				h.PremiumListingExpiresAt = &expiry
			}
			doc.Hotels = append(doc.Hotels, h)

			for _, r := range dh.rooms {
				room := r
				room.ID = uuid.NewString()
				room.HotelID = h.ID
				doc.Rooms = append(doc.Rooms, &room)
			}

			doc.Users = append(doc.Users, &domain.User{
				ID:           uuid.NewString(),
				Role:         domain.RoleHotelAdmin,
				Name:         dh.name + " Admin",
				Email:        fmt.Sprintf("admin%d@hut.ng", i+1),
				PasswordHash: adminHash,
				HotelIDs:     []string{h.ID},
				CreatedAt:    now,
			})
			created++
		}
		return nil
	})
	if err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
	if created == 0 {
		logger.Info("store already has data, nothing seeded")
		return
	}
	logger.Info("seed complete", "hotels", created, "owner", "owner@hut.ng")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
