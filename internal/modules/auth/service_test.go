package auth

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hut/internal/domain"
	"hut/internal/pkg/jwt"
	"hut/internal/store"
)

func newTestService(t *testing.T, seed func(doc *domain.Document)) (*Service, *store.Store) {
	t.Helper()
	ctx := context.Background()
	p := store.NewFilePersister(filepath.Join(t.TempDir(), "db.json"))
	doc := domain.NewDocument()
	if seed != nil {
		seed(doc)
	}
	require.NoError(t, p.Persist(ctx, doc))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(p, log)
	return NewService(st, jwt.New("test-secret", time.Hour), 8, log), st
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		Name:            "Ada Obi",
		Email:           "  Ada@Example.com ",
		Phone:           "08030000000",
		Password:        "longenough",
		ConfirmPassword: "longenough",
	}
}

func TestRegister_Success(t *testing.T) {
	svc, st := newTestService(t, nil)

	user, token, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, domain.RoleCustomer, user.Role)

	doc, err := st.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Users, 1)
	assert.NotEqual(t, "longenough", doc.Users[0].PasswordHash)
	assert.True(t, CheckPassword(doc.Users[0].PasswordHash, "longenough"))
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t, nil)

	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
		want   error
	}{
		{"missing name", func(r *RegisterRequest) { r.Name = " " }, ErrMissingFields},
		{"missing phone", func(r *RegisterRequest) { r.Phone = "" }, ErrMissingFields},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, ErrMissingFields},
		{"short password", func(r *RegisterRequest) { r.Password, r.ConfirmPassword = "short", "short" }, ErrPasswordTooShort},
		{"mismatch", func(r *RegisterRequest) { r.ConfirmPassword = "different1" }, ErrPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			tt.mutate(&req)
			_, _, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t, func(doc *domain.Document) {
		doc.Users = append(doc.Users, &domain.User{ID: "u1", Role: domain.RoleCustomer, Email: "ADA@example.com"})
	})

	_, _, err := svc.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	svc, st := newTestService(t, nil)

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = svc.Register(context.Background(), validRegistration())
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, ErrEmailAlreadyExists)
		}
	}
	assert.Equal(t, 1, ok)

	doc, err := st.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Users, 1)
}

func TestLogin_ByEmailAndPhone(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "ADA@example.com", "longenough")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Ada Obi", user.Name)

	_, _, err = svc.Login(context.Background(), "08030000000", "longenough")
	require.NoError(t, err)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "longenough")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "", "longenough")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UpgradesLegacyHash(t *testing.T) {
	svc, st := newTestService(t, func(doc *domain.Document) {
		doc.Users = append(doc.Users, &domain.User{
			ID:           "u-legacy",
			Role:         domain.RoleHotelAdmin,
			Email:        "ops@lagoon.ng",
			PasswordHash: legacyHash,
			HotelIDs:     []string{"h1"},
		})
	})

	user, token, err := svc.Login(context.Background(), "ops@lagoon.ng", "sunshine-42")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.RoleHotelAdmin, user.Role)

	doc, err := st.Snapshot(context.Background())
	require.NoError(t, err)
	stored := doc.FindUser("u-legacy").PasswordHash
	assert.False(t, NeedsRehash(stored))
	assert.True(t, CheckPassword(stored, "sunshine-42"))
}
