package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hut/internal/database"
	"hut/internal/domain"
)

const legacyDocument = `{
  "platform": {"name": "HuT!", "bankAccount": "0123456789"},
  "users": [{"id": "u1", "role": "customer", "name": "Ada", "email": "ada@example.com"}],
  "hotels": [{"id": "h1", "name": "Lagoon Inn", "cancellationPolicy": "strict", "commissionRate": 0.1}],
  "rooms": [{"id": "r1", "hotelId": "h1", "category": "Deluxe", "pricePerNight": 45000, "totalUnits": 2}],
  "bookings": [{"id": "b1", "roomId": "r1", "checkInDate": "2026-03-10", "checkOutDate": "2026-03-12", "status": "confirmed"}],
  "payments": [{"id": "p1", "grossAmount": 100, "bookingId": null}],
  "marketplaceListings": [{"id": "l1", "title": "Generator"}]
}`

func TestFilePersister_MissingFileIsEmptyDocument(t *testing.T) {
	p := NewFilePersister(filepath.Join(t.TempDir(), "db.json"))

	doc, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, doc.Bookings)
	assert.Empty(t, doc.Bookings)
	assert.Equal(t, domain.DefaultPlatformName, doc.Platform.Name)
}

func TestFilePersister_WritesIndentedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db.json")
	p := NewFilePersister(path)

	require.NoError(t, p.Persist(context.Background(), domain.NewDocument()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n  \"platform\": {\n    \"name\""))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestFilePersister_RepairIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(legacyDocument), 0o644))
	ctx := context.Background()
	p := NewFilePersister(path)

	first, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), first.Users[0].WalletBalance)
	assert.Equal(t, []string{}, first.Users[0].HotelIDs)
	assert.Equal(t, []string{}, first.Bookings[0].FraudFlags)
	assert.False(t, first.Payments[0].Settled)
	assert.Nil(t, first.Payments[0].BookingID)
	assert.NotNil(t, first.WalletTransactions)
	assert.Equal(t, "HuT!", first.Platform.Name)
	assert.Equal(t, domain.DefaultCommissionRate, first.Platform.DefaultCommissionRate)

	require.NoError(t, p.Persist(ctx, first))
	onceRaw, err := os.ReadFile(path)
	require.NoError(t, err)

	second, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Users, second.Users)
	assert.Equal(t, first.Bookings, second.Bookings)
	assert.Equal(t, first.Platform, second.Platform)

	require.NoError(t, p.Persist(ctx, second))
	twiceRaw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(onceRaw), string(twiceRaw))
	assert.Contains(t, string(twiceRaw), `"title": "Generator"`)
}

func TestFilePersister_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFilePersister(path).Load(context.Background())
	assert.ErrorContains(t, err, "decode")
}

func TestStore_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	ctx := context.Background()

	s := New(NewFilePersister(path), quietLogger())
	require.NoError(t, s.Do(ctx, func(_ context.Context, doc *domain.Document) error {
		doc.Hotels = append(doc.Hotels, &domain.Hotel{ID: "h1", Name: "Lagoon Inn"})
		return nil
	}))

	reopened := New(NewFilePersister(path), quietLogger())
	doc, err := reopened.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Hotels, 1)
	assert.Equal(t, domain.PolicyModerate, doc.Hotels[0].CancellationPolicy)
}

func openSQLite(t *testing.T) *SQLPersister {
	t.Helper()
	dsn := fmt.Sprintf("file:store_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := database.Connect(dsn, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	p := NewSQLPersister(db, "")
	require.NoError(t, p.AutoMigrate())
	return p
}

func TestSQLPersister_RoundTrip(t *testing.T) {
	p := openSQLite(t)
	ctx := context.Background()

	doc, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Hotels)

	doc.Hotels = append(doc.Hotels, &domain.Hotel{ID: "h1", Name: "Lagoon Inn", CancellationPolicy: domain.PolicyStrict})
	require.NoError(t, p.Persist(ctx, doc))
	doc.Hotels[0].Name = "Lagoon Suites"
	require.NoError(t, p.Persist(ctx, doc))

	fresh := NewSQLPersister(p.db, "")
	loaded, err := fresh.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Hotels, 1)
	assert.Equal(t, "Lagoon Suites", loaded.Hotels[0].Name)
	assert.Equal(t, int64(2), fresh.version)
}

func TestSQLPersister_DetectsSecondWriter(t *testing.T) {
	p := openSQLite(t)
	ctx := context.Background()

	other := NewSQLPersister(p.db, "")
	_, err := p.Load(ctx)
	require.NoError(t, err)
	_, err = other.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, p.Persist(ctx, domain.NewDocument()))
	assert.ErrorIs(t, other.Persist(ctx, domain.NewDocument()), ErrConcurrentWriter)

	stale := NewSQLPersister(p.db, "")
	_, err = stale.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, p.Persist(ctx, domain.NewDocument()))
	assert.ErrorIs(t, stale.Persist(ctx, domain.NewDocument()), ErrConcurrentWriter)
}

func TestSQLPersister_KeysAreIndependent(t *testing.T) {
	p := openSQLite(t)
	ctx := context.Background()
	staging := NewSQLPersister(p.db, "staging")

	_, err := p.Load(ctx)
	require.NoError(t, err)
	_, err = staging.Load(ctx)
	require.NoError(t, err)

	doc := domain.NewDocument()
	doc.Platform.Name = "Staging"
	require.NoError(t, staging.Persist(ctx, doc))
	require.NoError(t, p.Persist(ctx, domain.NewDocument()))

	loaded, err := NewSQLPersister(p.db, "staging").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Staging", loaded.Platform.Name)
}
