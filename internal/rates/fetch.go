package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/metrics"
	"github.com/GlebRadaev/gtonledger/pkg/retry"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1

	sourceFiat   = "exchangerate"
	sourceCrypto = "coingecko"
)

var coinIDs = map[string]string{
	"TON": "the-open-network",
	"BTC": "bitcoin",
	"ETH": "ethereum",
}

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")

	errRejected = errors.New("request rejected")
)

type fiatResponse struct {
	Result string                     `json:"result"`
	Rates  map[string]decimal.Decimal `json:"rates"`
}

type cryptoResponse map[string]map[string]decimal.Decimal

// Refresh fetches fiat and crypto rates in parallel. Whatever arrived is
// cached and persisted even when the other source failed.
func (p *Provider) Refresh(ctx context.Context) error {
	var fiat, crypto []domain.ExchangeRate
	var g errgroup.Group
	g.Go(func() error {
		r, err := p.fetchFiat(ctx)
		if err != nil {
			metrics.RatesFetchErrors.WithLabelValues(sourceFiat).Inc()
			return fmt.Errorf("fiat rates: %w", err)
		}
		fiat = r
		return nil
	})
	g.Go(func() error {
		r, err := p.fetchCrypto(ctx)
		if err != nil {
			metrics.RatesFetchErrors.WithLabelValues(sourceCrypto).Inc()
			return fmt.Errorf("crypto rates: %w", err)
		}
		crypto = r
		return nil
	})
	err := g.Wait()

	fetched := append(fiat, crypto...)
	if len(fetched) > 0 {
		p.store(fetched)
		if saveErr := p.repo.Save(ctx, fetched); saveErr != nil {
			zap.L().Error("failed to persist exchange rates", zap.Error(saveErr))
		}
	}
	p.observeAge()
	zap.L().Debug("exchange rates refreshed", zap.Int("fiat", len(fiat)), zap.Int("crypto", len(crypto)))
	return err
}

func (p *Provider) fetchFiat(ctx context.Context) ([]domain.ExchangeRate, error) {
	body, err := p.get(ctx, p.fiatURL+"/"+USD)
	if err != nil {
		return nil, err
	}
	var resp fiatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response body: %w", err)
	}
	if resp.Result != "success" {
		return nil, fmt.Errorf("rate source answered %q", resp.Result)
	}

	now := p.now()
	out := make([]domain.ExchangeRate, 0, len(p.currencies))
	for _, cur := range p.currencies {
		rate, ok := resp.Rates[cur]
		if !ok || !rate.IsPositive() {
			zap.L().Warn("fiat rate missing", zap.String("currency", cur))
			continue
		}
		out = append(out, domain.ExchangeRate{Base: USD, Quote: cur, Rate: rate.Round(rateScale), Source: sourceFiat, UpdatedAt: now})
	}
	return out, nil
}

func (p *Provider) fetchCrypto(ctx context.Context) ([]domain.ExchangeRate, error) {
	symbols := make([]string, 0, len(coinIDs))
	ids := make([]string, 0, len(coinIDs))
	for sym, id := range coinIDs {
		symbols = append(symbols, sym)
		ids = append(ids, id)
	}
	sort.Strings(symbols)
	sort.Strings(ids)

	q := url.Values{"ids": {strings.Join(ids, ",")}, "vs_currencies": {strings.ToLower(USD)}}
	body, err := p.get(ctx, p.cryptoURL+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	var resp cryptoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response body: %w", err)
	}

	now := p.now()
	var out []domain.ExchangeRate
	for _, sym := range symbols {
		rate, ok := resp[coinIDs[sym]][strings.ToLower(USD)]
		if !ok || !rate.IsPositive() {
			zap.L().Warn("crypto rate missing", zap.String("currency", sym))
			continue
		}
		out = append(out, domain.ExchangeRate{Base: sym, Quote: USD, Rate: rate.Round(rateScale), Source: sourceCrypto, UpdatedAt: now})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no crypto rates in response")
	}
	return out, nil
}

// get retries transport errors and 5xx with a growing pause and honours
// Retry-After on 429.
func (p *Provider) get(ctx context.Context, u string) ([]byte, error) {
	var body []byte
	policy := retry.Policy{Attempts: maxRetries, Base: p.retryWait}
	err := retry.Do(ctx, policy, retryableFetch, func(ctx context.Context) error {
		status, b, headers, err := p.client.Get(ctx, u, nil)
		switch {
		case err != nil:
			return err
		case status == http.StatusOK:
			body = b
			return nil
		case status == http.StatusTooManyRequests:
			err := fmt.Errorf("rate limited: %w", ErrUnexpectedStatus)
			s, convErr := strconv.Atoi(headers.Get("Retry-After"))
			if convErr != nil {
				return err
			}
			wait := time.Duration(s) * time.Second
			zap.L().Warn("rate limit detected, retrying", zap.String("url", u), zap.Duration("retryAfter", wait))
			return retry.After(err, wait)
		case status >= http.StatusInternalServerError:
			return fmt.Errorf("status %d: %w", status, ErrUnexpectedStatus)
		default:
			return fmt.Errorf("status %d: %w: %w", status, ErrUnexpectedStatus, errRejected)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", u, err)
	}
	return body, nil
}

func retryableFetch(err error) bool {
	return !errors.Is(err, errRejected)
}
