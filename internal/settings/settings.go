package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
)

const Levels = 3

type ExpiryPolicy string

const (
	// ExpiryLatest overwrites the bonus wallet expiry with the most recent credit's.
	ExpiryLatest ExpiryPolicy = "latest"
	// ExpiryMax keeps the later of the stored and the new expiry.
	ExpiryMax ExpiryPolicy = "max"
)

type Level struct {
	Enabled bool
	Percent decimal.Decimal
}

// Snapshot is an immutable view of the runtime business settings.
// Engines read it once per operation.
type Snapshot struct {
	CommissionEnabled bool
	Levels            [Levels]Level

	BonusEnabled   bool
	Rewards        [domain.StreakCycle]decimal.Decimal
	BonusLocation  *time.Location
	BonusResetHour int

	LimitLocation  *time.Location
	LimitResetHour int

	NewUserWindow time.Duration
	GTONTONRate   decimal.Decimal
	RatesMaxAge   time.Duration
	ExpiryPolicy  ExpiryPolicy
	WelcomeBonus  decimal.Decimal
	WelcomeTTL    time.Duration

	LoadedAt time.Time
}

// Reward returns the payout of a 1-based cycle day.
func (s *Snapshot) Reward(day int) decimal.Decimal {
	if day < 1 || day > len(s.Rewards) {
		return decimal.Zero
	}
	return s.Rewards[day-1]
}

// BonusDate is the streak calendar date of t.
func (s *Snapshot) BonusDate(t time.Time) time.Time {
	return domain.BusinessDate(t, s.BonusLocation, s.BonusResetHour)
}

// LimitPeriodStart is the start of the daily-limit window containing t.
func (s *Snapshot) LimitPeriodStart(t time.Time) time.Time {
	return domain.PeriodStart(t, s.LimitLocation, s.LimitResetHour)
}

// Base carries the process-level values the stored settings are layered on.
type Base struct {
	Timezone    string
	ResetHour   int
	RatesMaxAge time.Duration
}

func Defaults(base Base) Snapshot {
	loc, err := time.LoadLocation(base.Timezone)
	if err != nil || base.Timezone == "" {
		loc = time.UTC
	}
	s := Snapshot{
		CommissionEnabled: true,
		Levels: [Levels]Level{
			{Enabled: true, Percent: decimal.NewFromInt(10)},
			{Enabled: false, Percent: decimal.NewFromInt(5)},
			{Enabled: false, Percent: decimal.NewFromInt(2)},
		},
		BonusEnabled:   true,
		BonusLocation:  loc,
		BonusResetHour: base.ResetHour,
		LimitLocation:  loc,
		LimitResetHour: base.ResetHour,
		NewUserWindow:  24 * time.Hour,
		GTONTONRate:    decimal.RequireFromString("1.53"),
		RatesMaxAge:    base.RatesMaxAge,
		ExpiryPolicy:   ExpiryLatest,
		WelcomeBonus:   decimal.Zero,
		WelcomeTTL:     720 * time.Hour,
	}
	for i, v := range []string{"0.1", "0.2", "0.3", "0.5", "0.7", "1.0", "2.0"} {
		s.Rewards[i] = decimal.RequireFromString(v)
	}
	if s.RatesMaxAge <= 0 {
		s.RatesMaxAge = 30 * time.Minute
	}
	return s
}

// Parse layers stored key/value settings over def. Malformed values are
// logged and the default is kept.
func Parse(kv map[string]string, def Snapshot) Snapshot {
	s := def
	for key, raw := range kv {
		if err := apply(&s, key, strings.TrimSpace(raw)); err != nil {
			zap.L().Error("ignoring malformed setting", zap.String("key", key), zap.String("value", raw), zap.Error(err))
		}
	}
	return s
}

func apply(s *Snapshot, key, raw string) error {
	var err error
	switch key {
	case "referral.commission_enabled":
		s.CommissionEnabled, err = strconv.ParseBool(raw)
	case "referral.level1_enabled", "referral.level2_enabled", "referral.level3_enabled":
		i := int(key[len("referral.level")] - '1')
		s.Levels[i].Enabled, err = strconv.ParseBool(raw)
	case "referral.level1_percent", "referral.level2_percent", "referral.level3_percent":
		i := int(key[len("referral.level")] - '1')
		var p decimal.Decimal
		if p, err = parsePercent(raw); err == nil {
			s.Levels[i].Percent = p
		}
	case "daily_bonus.enabled":
		s.BonusEnabled, err = strconv.ParseBool(raw)
	case "daily_bonus.rewards":
		var r [domain.StreakCycle]decimal.Decimal
		if r, err = parseRewards(raw); err == nil {
			s.Rewards = r
		}
	case "daily_bonus.timezone":
		var loc *time.Location
		if loc, err = time.LoadLocation(raw); err == nil {
			s.BonusLocation = loc
		}
	case "daily_bonus.reset_hour":
		var h int
		if h, err = parseHour(raw); err == nil {
			s.BonusResetHour = h
		}
	case "wallet.limit_timezone":
		var loc *time.Location
		if loc, err = time.LoadLocation(raw); err == nil {
			s.LimitLocation = loc
		}
	case "wallet.limit_reset_hour":
		var h int
		if h, err = parseHour(raw); err == nil {
			s.LimitResetHour = h
		}
	case "promo.new_user_hours":
		var h int
		if h, err = strconv.Atoi(raw); err == nil {
			s.NewUserWindow = time.Duration(h) * time.Hour
		}
	case "payments.gton_ton_rate":
		var r decimal.Decimal
		if r, err = decimal.NewFromString(raw); err == nil {
			if !r.IsPositive() {
				return fmt.Errorf("rate must be positive")
			}
			s.GTONTONRate = r
		}
	case "payments.rates_max_age":
		var d time.Duration
		if d, err = time.ParseDuration(raw); err == nil {
			s.RatesMaxAge = d
		}
	case "bonus.expiry_policy":
		switch p := ExpiryPolicy(raw); p {
		case ExpiryLatest, ExpiryMax:
			s.ExpiryPolicy = p
		default:
			return fmt.Errorf("unknown policy %q", raw)
		}
	case "payments.welcome_bonus_gton":
		var v decimal.Decimal
		if v, err = decimal.NewFromString(raw); err == nil {
			if v.IsNegative() {
				return fmt.Errorf("welcome bonus must not be negative")
			}
			s.WelcomeBonus = domain.Round(v)
		}
	case "bonus.welcome_ttl_hours":
		var h int
		if h, err = strconv.Atoi(raw); err == nil {
			s.WelcomeTTL = time.Duration(h) * time.Hour
		}
	}
	return err
}

func parsePercent(raw string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, fmt.Errorf("percent %s out of range", raw)
	}
	return p, nil
}

func parseHour(raw string) (int, error) {
	h, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if h < 0 || h > 23 {
		return 0, fmt.Errorf("hour %d out of range", h)
	}
	return h, nil
}

func parseRewards(raw string) ([domain.StreakCycle]decimal.Decimal, error) {
	var out [domain.StreakCycle]decimal.Decimal
	parts := strings.Split(strings.Trim(raw, "[] "), ",")
	if len(parts) != domain.StreakCycle {
		return out, fmt.Errorf("want %d rewards, got %d", domain.StreakCycle, len(parts))
	}
	for i, p := range parts {
		v, err := decimal.NewFromString(strings.TrimSpace(p))
		if err != nil {
			return out, err
		}
		if err := domain.ValidateAmount(v); err != nil {
			return out, fmt.Errorf("reward %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}
