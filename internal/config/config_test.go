package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("NODE_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "file", cfg.StoreBackend)
	assert.Equal(t, "mock", cfg.PaymentProvider)
	assert.Equal(t, 15*time.Second, cfg.PaymentTimeout)
	assert.Equal(t, int64(2500), cfg.MinServiceFee)
	assert.Equal(t, 70, cfg.FraudBlockThreshold)
	assert.Equal(t, 40, cfg.FraudReviewThreshold)
	assert.Equal(t, time.Hour, cfg.FraudVelocityWindow)
	assert.Equal(t, 3, cfg.FraudVelocityMax)
	assert.Equal(t, int64(700000), cfg.FraudHighValue)
	assert.Equal(t, 8, cfg.MinPasswordLength)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_RejectsMockPaymentsInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("PAYMENT_PROVIDER", "mock")

	_, err := Load()
	assert.ErrorContains(t, err, "PAYMENT_PROVIDER")

	t.Setenv("PAYMENT_PROVIDER", "paystack")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_RejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "release")
	t.Setenv("PAYMENT_PROVIDER", "flutterwave")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_SQLBackendNeedsURL(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("STORE_BACKEND", "sql")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "file:hut.db")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	t.Setenv("PAYMENT_TIMEOUT", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "PAYMENT_TIMEOUT")
	t.Setenv("PAYMENT_TIMEOUT", "")

	t.Setenv("FRAUD_BLOCK_THRESHOLD", "30")
	_, err = Load()
	assert.ErrorContains(t, err, "FRAUD_BLOCK_THRESHOLD")
	t.Setenv("FRAUD_BLOCK_THRESHOLD", "")

	t.Setenv("STORE_BACKEND", "redis")
	_, err = Load()
	assert.ErrorContains(t, err, "STORE_BACKEND")
}
