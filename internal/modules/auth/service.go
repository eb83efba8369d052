package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"hut/internal/domain"
	"hut/internal/pkg/validator"
	"hut/internal/store"
)

const DefaultMinPasswordLength = 8

type tokenIssuer interface {
	GenerateToken(userID, role string) (string, error)
}

// Service registers customers and signs users in against the document store.
type Service struct {
	store             *store.Store
	tokens            tokenIssuer
	minPasswordLength int
	log               *slog.Logger
	now               func() time.Time
}

func NewService(st *store.Store, tokens tokenIssuer, minPasswordLength int, log *slog.Logger) *Service {
	if minPasswordLength <= 0 {
		minPasswordLength = DefaultMinPasswordLength
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:             st,
		tokens:            tokens,
		minPasswordLength: minPasswordLength,
		log:               log,
		now:               time.Now,
	}
}

func (s *Service) MinPasswordLength() int { return s.minPasswordLength }

// Register creates a customer account and returns it with an access token.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (domain.PublicUser, string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		return domain.PublicUser{}, "", ErrMissingFields
	}
	if errs := validator.Validate(req); errs != nil {
		return domain.PublicUser{}, "", fmt.Errorf("%w: %v", ErrMissingFields, errs)
	}
	if len(req.Password) < s.minPasswordLength {
		return domain.PublicUser{}, "", ErrPasswordTooShort
	}
	if req.Password != req.ConfirmPassword {
		return domain.PublicUser{}, "", ErrPasswordMismatch
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return domain.PublicUser{}, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := store.Update(ctx, s.store, func(_ context.Context, doc *domain.Document) (domain.PublicUser, error) {
		if FindByEmail(doc, req.Email) != nil {
			return domain.PublicUser{}, ErrEmailAlreadyExists
		}
		u := &domain.User{
			ID:           uuid.NewString(),
			Role:         domain.RoleCustomer,
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			HotelIDs:     []string{},
			PasswordHash: hash,
			CreatedAt:    s.now().UTC(),
		}
		doc.Users = append(doc.Users, u)
		return u.Public(), nil
	})
	if err != nil {
		return domain.PublicUser{}, "", err
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return domain.PublicUser{}, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Login accepts an email address or a phone number as identifier.
func (s *Service) Login(ctx context.Context, identifier, password string) (domain.PublicUser, string, error) {
	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return domain.PublicUser{}, "", err
	}

	user := FindByIdentifier(doc, identifier)
	if user == nil || !CheckPassword(user.PasswordHash, password) {
		return domain.PublicUser{}, "", ErrInvalidCredentials
	}

	if NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, user.ID, password)
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return domain.PublicUser{}, "", fmt.Errorf("generate token: %w", err)
	}
	return user.Public(), token, nil
}

// upgradeHash replaces a legacy scrypt hash with bcrypt. Failure leaves the
// legacy hash in place, which still verifies.
func (s *Service) upgradeHash(ctx context.Context, userID, password string) {
	hash, err := HashPassword(password)
	if err != nil {
		s.log.Warn("password rehash failed", "user_id", userID, "error", err)
		return
	}
	err = s.store.Do(ctx, func(_ context.Context, doc *domain.Document) error {
		if u := doc.FindUser(userID); u != nil && NeedsRehash(u.PasswordHash) {
			u.PasswordHash = hash
		}
		return nil
	})
	if err != nil {
		s.log.Warn("password rehash failed", "user_id", userID, "error", err)
	}
}

func FindByEmail(doc *domain.Document, email string) *domain.User {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range doc.Users {
		if strings.ToLower(u.Email) == email {
			return u
		}
	}
	return nil
}

func FindByPhone(doc *domain.Document, phone string) *domain.User {
	phone = strings.TrimSpace(phone)
	for _, u := range doc.Users {
		if u.Phone == phone {
			return u
		}
	}
	return nil
}

func FindByIdentifier(doc *domain.Document, identifier string) *domain.User {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil
	}
	if strings.Contains(identifier, "@") {
		return FindByEmail(doc, identifier)
	}
	return FindByPhone(doc, identifier)
}
