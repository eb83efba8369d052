package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr          = ":8080"
	defaultDBFilePath        = "data/db.json"
	defaultStoreBackend      = "file"
	defaultJWTSecret         = "change-me-jwt-secret"
	defaultJWTTTL            = "24h"
	defaultMinPasswordLength = "8"
	defaultPaymentProvider   = "mock"
	defaultPaymentTimeout    = "15s"
	defaultBreakerThreshold  = "5"
	defaultMinServiceFee     = "2500"
	defaultFraudBlock        = "70"
	defaultFraudReview       = "40"
	defaultFraudWindow       = "60m"
	defaultFraudVelocityMax  = "3"
	defaultFraudHighValue    = "700000"
	defaultPlatformAccount   = "HUT-PLATFORM-0001"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	DBFilePath   string
	StoreBackend string
	DatabaseURL  string
	DocumentKey  string

	JWTSecret         string
	JWTTTL            time.Duration
	MinPasswordLength int

	PaymentProvider         string
	PaymentTimeout          time.Duration
	PaymentBreakerThreshold int64

	MinServiceFee int64

	FraudBlockThreshold  int
	FraudReviewThreshold int
	FraudVelocityWindow  time.Duration
	FraudVelocityMax     int
	FraudHighValue       int64

	PlatformBankAccount string
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("NODE_ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DBFilePath = strings.TrimSpace(getEnv("DB_FILE_PATH", defaultDBFilePath))
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(getEnv("STORE_BACKEND", defaultStoreBackend)))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.DocumentKey = strings.TrimSpace(getEnv("STORE_DOCUMENT_KEY", "primary"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.PaymentProvider = strings.ToLower(strings.TrimSpace(getEnv("PAYMENT_PROVIDER", defaultPaymentProvider)))
	cfg.PlatformBankAccount = strings.TrimSpace(getEnv("PLATFORM_BANK_ACCOUNT", defaultPlatformAccount))

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.PaymentTimeout, err = parseDurationEnv("PAYMENT_TIMEOUT", defaultPaymentTimeout); err != nil {
		return nil, err
	}
	if cfg.FraudVelocityWindow, err = parseDurationEnv("FRAUD_VELOCITY_WINDOW", defaultFraudWindow); err != nil {
		return nil, err
	}
	if cfg.MinPasswordLength, err = parseIntEnv("MIN_PASSWORD_LENGTH", defaultMinPasswordLength); err != nil {
		return nil, err
	}
	if cfg.FraudBlockThreshold, err = parseIntEnv("FRAUD_BLOCK_THRESHOLD", defaultFraudBlock); err != nil {
		return nil, err
	}
	if cfg.FraudReviewThreshold, err = parseIntEnv("FRAUD_REVIEW_THRESHOLD", defaultFraudReview); err != nil {
		return nil, err
	}
	if cfg.FraudVelocityMax, err = parseIntEnv("FRAUD_VELOCITY_MAX", defaultFraudVelocityMax); err != nil {
		return nil, err
	}
	if cfg.PaymentBreakerThreshold, err = parseInt64Env("PAYMENT_BREAKER_THRESHOLD", defaultBreakerThreshold); err != nil {
		return nil, err
	}
	if cfg.MinServiceFee, err = parseInt64Env("MIN_SERVICE_FEE", defaultMinServiceFee); err != nil {
		return nil, err
	}
	if cfg.FraudHighValue, err = parseInt64Env("FRAUD_HIGH_VALUE", defaultFraudHighValue); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool { return isProdLike(c.AppEnv) }

func validateConfig(cfg *Config) error {
	switch cfg.StoreBackend {
	case "file":
		if cfg.DBFilePath == "" {
			return fmt.Errorf("DB_FILE_PATH must not be empty")
		}
	case "sql":
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set when STORE_BACKEND=sql")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of: file, sql")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.PaymentTimeout <= 0 {
		return fmt.Errorf("PAYMENT_TIMEOUT must be > 0")
	}
	if cfg.PaymentBreakerThreshold <= 0 {
		return fmt.Errorf("PAYMENT_BREAKER_THRESHOLD must be > 0")
	}
	if cfg.MinPasswordLength < 1 {
		return fmt.Errorf("MIN_PASSWORD_LENGTH must be >= 1")
	}
	if cfg.MinServiceFee < 0 {
		return fmt.Errorf("MIN_SERVICE_FEE must be >= 0")
	}
	if cfg.FraudReviewThreshold <= 0 || cfg.FraudBlockThreshold <= cfg.FraudReviewThreshold {
		return fmt.Errorf("FRAUD_BLOCK_THRESHOLD must be greater than FRAUD_REVIEW_THRESHOLD")
	}
	if cfg.FraudVelocityWindow <= 0 || cfg.FraudVelocityMax <= 0 {
		return fmt.Errorf("FRAUD_VELOCITY_WINDOW and FRAUD_VELOCITY_MAX must be > 0")
	}
	switch cfg.PaymentProvider {
	case "mock", "paystack", "flutterwave":
	default:
		return fmt.Errorf("PAYMENT_PROVIDER must be one of: mock, paystack, flutterwave")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.PaymentProvider == "mock" {
			return fmt.Errorf("in prod/release PAYMENT_PROVIDER cannot be 'mock'")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseInt64Env(name, fallback string) (int64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
