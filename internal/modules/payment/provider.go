// Package payment is the port to external payment providers. Booking
// orchestration only records what a provider reports; the provider wire
// formats live outside this module.
package payment

import (
	"context"
	"fmt"
	"time"
)

type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
)

type InitRequest struct {
	BookingID    string
	Amount       int64
	CustomerName string
	Email        string
	Phone        string
	CallbackURL  string
}

type InitResult struct {
	Provider   string
	Status     Status
	Reference  string
	PaymentURL string
}

type VerifyRequest struct {
	Reference string
	Query     map[string]string
}

type VerifyResult struct {
	Verified   bool
	ExternalID string
}

type Provider interface {
	Name() string
	Initialize(ctx context.Context, req InitRequest) (InitResult, error)
	Verify(ctx context.Context, req VerifyRequest) (VerifyResult, error)
}

// MockProvider settles every charge immediately. It must never be used in
// production; config.Load refuses that combination.
type MockProvider struct {
	now func() time.Time
}

func NewMockProvider() *MockProvider {
	return &MockProvider{now: time.Now}
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Initialize(_ context.Context, _ InitRequest) (InitResult, error) {
	return InitResult{
		Provider:  m.Name(),
		Status:    StatusPaid,
		Reference: fmt.Sprintf("HUT-MOCK-%d", m.now().UnixMilli()),
	}, nil
}

func (m *MockProvider) Verify(_ context.Context, req VerifyRequest) (VerifyResult, error) {
	return VerifyResult{Verified: true, ExternalID: req.Reference}, nil
}

// New returns the provider built into this binary for name.
func New(name string) (Provider, error) {
	switch name {
	case "", "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, name)
	}
}
