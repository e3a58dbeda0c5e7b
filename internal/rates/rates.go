package rates

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/config"
	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/metrics"
	"github.com/GlebRadaev/gtonledger/internal/settings"
	"github.com/GlebRadaev/gtonledger/pkg/clients"
)

//go:generate mockgen -source=rates.go -destination=mock_rates.go -package=rates

const (
	USD  = "USD"
	TON  = "TON"
	GTON = "GTON"

	// rateScale matches the NUMERIC(30,12) rate columns.
	rateScale = 12
)

var stablecoins = map[string]bool{"USDT": true, "USDC": true, "DAI": true, "BUSD": true, "TUSD": true}

type Repo interface {
	All(ctx context.Context) ([]domain.ExchangeRate, error)
	Save(ctx context.Context, rates []domain.ExchangeRate) error
}

type Settings interface {
	Snapshot() *settings.Snapshot
}

// Quote is a cached rate as served to callers.
type Quote struct {
	domain.ExchangeRate
	Stale bool `json:"stale"`
}

type pair struct {
	base, quote string
}

// Provider caches exchange rates for the source → USD → TON → GTON chain.
// Start is the only writer after Load.
type Provider struct {
	fiatURL    string
	cryptoURL  string
	currencies []string
	client     clients.HTTPClientI
	repo       Repo
	settings   Settings
	interval   time.Duration
	retryWait  time.Duration

	mu    sync.RWMutex
	cache map[pair]domain.ExchangeRate
	now   func() time.Time
}

func New(cfg *config.Config, repo Repo, settings Settings, client clients.HTTPClientI) *Provider {
	return &Provider{
		fiatURL:    cfg.FiatRatesURL,
		cryptoURL:  cfg.CryptoRatesURL,
		currencies: cfg.FiatCurrencies,
		client:     client,
		repo:       repo,
		settings:   settings,
		interval:   cfg.RatesRefreshInterval,
		retryWait:  retryInterval,
		cache:      make(map[pair]domain.ExchangeRate),
		now:        time.Now,
	}
}

// Load seeds the cache from persisted rates. Loaded values are still subject
// to the max age rule.
func (p *Provider) Load(ctx context.Context) error {
	rates, err := p.repo.All(ctx)
	if err != nil {
		return err
	}
	p.store(rates)
	p.observeAge()
	zap.L().Info("exchange rates loaded", zap.Int("count", len(rates)))
	return nil
}

func (p *Provider) Start(ctx context.Context) {
	zap.L().Info("rates refresher started", zap.Duration("interval", p.interval))
	if err := p.Refresh(ctx); err != nil {
		zap.L().Error("initial rates refresh failed", zap.Error(err))
	}
	if p.interval <= 0 {
		return
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("rates refresher stopped")
			return
		case <-ticker.C:
			if err := p.Refresh(ctx); err != nil {
				zap.L().Error("rates refresh failed", zap.Error(err))
			}
		}
	}
}

func (p *Provider) store(rates []domain.ExchangeRate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range rates {
		key := pair{r.Base, r.Quote}
		if old, ok := p.cache[key]; ok && old.UpdatedAt.After(r.UpdatedAt) {
			continue
		}
		p.cache[key] = r
	}
}

func (p *Provider) lookup(base, quote string) (domain.ExchangeRate, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	r, ok := p.cache[pair{base, quote}]
	return r, ok
}

func (p *Provider) observeAge() {
	if r, ok := p.lookup(TON, USD); ok {
		metrics.RatesAge.Set(p.now().Sub(r.UpdatedAt).Seconds())
	}
}

// Rates lists the cached rates plus the configured GTON/TON rate.
func (p *Provider) Rates() []Quote {
	snap := p.settings.Snapshot()
	now := p.now()

	p.mu.RLock()
	out := make([]Quote, 0, len(p.cache)+1)
	for _, r := range p.cache {
		out = append(out, Quote{ExchangeRate: r, Stale: now.Sub(r.UpdatedAt) > snap.RatesMaxAge})
	}
	p.mu.RUnlock()

	out = append(out, Quote{ExchangeRate: domain.ExchangeRate{
		Base:      GTON,
		Quote:     TON,
		Rate:      snap.GTONTONRate,
		Source:    "settings",
		UpdatedAt: snap.LoadedAt,
	}})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Base != out[j].Base {
			return out[i].Base < out[j].Base
		}
		return out[i].Quote < out[j].Quote
	})
	return out
}

// fresh returns base/quote if it is younger than maxAge.
func (p *Provider) fresh(base, quote string, now time.Time, maxAge time.Duration) (domain.ExchangeRate, error) {
	r, ok := p.lookup(base, quote)
	if !ok {
		if base == USD && !p.supported(quote) {
			return r, fmt.Errorf("%s: %w", quote, domain.ErrUnsupportedCurrency)
		}
		return r, fmt.Errorf("no %s/%s rate: %w", base, quote, domain.ErrRatesUnavailable)
	}
	if age := now.Sub(r.UpdatedAt); age > maxAge {
		return r, fmt.Errorf("%s/%s rate is %s old: %w", base, quote, age.Truncate(time.Second), domain.ErrRatesUnavailable)
	}
	return r, nil
}

func (p *Provider) supported(currency string) bool {
	for _, c := range p.currencies {
		if c == currency {
			return true
		}
	}
	return false
}

// Convert expresses amount of currency in GTON. Rate on the result is the
// price of one GTON in currency.
func (p *Provider) Convert(ctx context.Context, amount decimal.Decimal, currency string) (*domain.Conversion, error) {
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	rate, asOf, err := p.gtonPrice(cur)
	if err != nil {
		return nil, err
	}

	gton := domain.Round(amount.Div(rate))
	if !gton.IsPositive() {
		return nil, fmt.Errorf("%s %s is below the smallest GTON unit: %w", amount, cur, domain.ErrInvalidAmount)
	}
	return &domain.Conversion{
		Currency: cur,
		Amount:   amount,
		GTON:     gton,
		Rate:     rate.Round(rateScale),
		AsOf:     asOf,
	}, nil
}

// ConvertFromGTON expresses gton in currency under the same staleness rule as
// Convert. Amount on the result is in currency.
func (p *Provider) ConvertFromGTON(ctx context.Context, gton decimal.Decimal, currency string) (*domain.Conversion, error) {
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if !gton.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	rate, asOf, err := p.gtonPrice(cur)
	if err != nil {
		return nil, err
	}
	return &domain.Conversion{
		Currency: cur,
		Amount:   domain.Round(gton.Mul(rate)),
		GTON:     gton,
		Rate:     rate.Round(rateScale),
		AsOf:     asOf,
	}, nil
}

// gtonPrice is the price of one GTON in cur and the time of the oldest rate
// it was derived from.
func (p *Provider) gtonPrice(cur string) (decimal.Decimal, time.Time, error) {
	snap := p.settings.Snapshot()
	now := p.now()

	switch cur {
	case GTON:
		return decimal.NewFromInt(1), now, nil
	case TON:
		return snap.GTONTONRate, now, nil
	}

	tonUSD, err := p.fresh(TON, USD, now, snap.RatesMaxAge)
	if err != nil {
		return decimal.Zero, now, err
	}
	usdPerGTON := snap.GTONTONRate.Mul(tonUSD.Rate)

	switch {
	case cur == USD || stablecoins[cur]:
		return usdPerGTON, tonUSD.UpdatedAt, nil
	case coinIDs[cur] != "":
		r, err := p.fresh(cur, USD, now, snap.RatesMaxAge)
		if err != nil {
			return decimal.Zero, now, err
		}
		return usdPerGTON.Div(r.Rate), older(tonUSD.UpdatedAt, r.UpdatedAt), nil
	default:
		r, err := p.fresh(USD, cur, now, snap.RatesMaxAge)
		if err != nil {
			return decimal.Zero, now, err
		}
		return usdPerGTON.Mul(r.Rate), older(tonUSD.UpdatedAt, r.UpdatedAt), nil
	}
}

func older(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
