// Package fraud scores booking attempts with additive heuristics. The scorer
// never fails; callers decide what to do with the verdict.
package fraud

import (
	"regexp"
	"strings"
	"time"

	"hut/internal/domain"
)

const (
	FlagVelocity   = "High booking velocity detected for same email/phone."
	FlagHighValue  = "High-value transaction threshold reached."
	FlagDisposable = "Disposable email domain detected."
	FlagPhone      = "Phone number does not match expected Nigerian mobile format."
	FlagShortLead  = "Same-day, short-notice booking."
)

const (
	velocityWeight   = 40
	highValueWeight  = 25
	disposableWeight = 25
	phoneWeight      = 15
	shortLeadWeight  = 20

	shortLeadWindow = 6 * time.Hour
)

var (
	nigerianMobile = regexp.MustCompile(`^(\+?234|0)[789][01]\d{8}$`)

	disposableDomains = map[string]struct{}{
		"mailinator.com":    {},
		"tempmail.com":      {},
		"10minutemail.com":  {},
		"guerrillamail.com": {},
	}
)

type Config struct {
	BlockThreshold   int
	ReviewThreshold  int
	VelocityWindow   time.Duration
	VelocityMaxCount int
	HighValue        int64
}

func DefaultConfig() Config {
	return Config{
		BlockThreshold:   70,
		ReviewThreshold:  40,
		VelocityWindow:   60 * time.Minute,
		VelocityMaxCount: 3,
		HighValue:        700000,
	}
}

type Attempt struct {
	Email   string
	Phone   string
	CheckIn time.Time
}

type Assessment struct {
	Score        int      `json:"score"`
	Flags        []string `json:"flags"`
	Blocked      bool     `json:"blocked"`
	ReviewNeeded bool     `json:"reviewNeeded"`
}

type Scorer struct {
	cfg Config
	now func() time.Time
}

func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg, now: time.Now}
}

// WithClock returns a copy of the scorer reading time from now.
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	cp := *s
	cp.now = now
	return &cp
}

func (s *Scorer) Assess(doc *domain.Document, a Attempt, amount int64) Assessment {
	now := s.now()
	res := Assessment{Flags: []string{}}

	if s.recentBookings(doc, a, now) >= s.cfg.VelocityMaxCount {
		res.add(velocityWeight, FlagVelocity)
	}
	if amount >= s.cfg.HighValue {
		res.add(highValueWeight, FlagHighValue)
	}
	if _, ok := disposableDomains[emailDomain(a.Email)]; ok {
		res.add(disposableWeight, FlagDisposable)
	}
	if !nigerianMobile.MatchString(a.Phone) {
		res.add(phoneWeight, FlagPhone)
	}
	if a.CheckIn.Sub(now) <= shortLeadWindow {
		res.add(shortLeadWeight, FlagShortLead)
	}

	res.Blocked = res.Score >= s.cfg.BlockThreshold
	res.ReviewNeeded = res.Score >= s.cfg.ReviewThreshold
	return res
}

func (a *Assessment) add(weight int, flag string) {
	a.Score += weight
	a.Flags = append(a.Flags, flag)
}

// recentBookings is a linear scan; the booking list is small enough that an
// index by email/phone has not been worth maintaining.
func (s *Scorer) recentBookings(doc *domain.Document, a Attempt, now time.Time) int {
	count := 0
	for _, b := range doc.Bookings {
		if b.CreatedAt.IsZero() || now.Sub(b.CreatedAt) > s.cfg.VelocityWindow {
			continue
		}
		if b.Email == a.Email || b.Phone == a.Phone {
			count++
		}
	}
	return count
}

func emailDomain(email string) string {
	_, domainPart, ok := strings.Cut(email, "@")
	if !ok {
		return ""
	}
	return strings.ToLower(domainPart)
}
