package rates

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/gtonledger/internal/config"
	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/settings"
	"github.com/GlebRadaev/gtonledger/pkg/clients"
)

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func snapshot() settings.Snapshot {
	s := settings.Defaults(settings.Base{RatesMaxAge: 30 * time.Minute})
	s.GTONTONRate = d("2")
	s.LoadedAt = now
	return s
}

func NewMock(t *testing.T) (*Provider, *MockRepo, *clients.MockHTTPClientI) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	client := clients.NewMockHTTPClientI(ctrl)
	cfg := &config.Config{
		FiatRatesURL:   "http://fiat",
		CryptoRatesURL: "http://crypto",
		FiatCurrencies: []string{"RUB", "EUR"},
	}
	p := New(cfg, repo, settings.Fixed(snapshot()), client)
	p.now = func() time.Time { return now }
	p.retryWait = 0
	return p, repo, client
}

func rate(base, quote, value string, at time.Time) domain.ExchangeRate {
	return domain.ExchangeRate{Base: base, Quote: quote, Rate: d(value), Source: "test", UpdatedAt: at}
}

func TestProvider_Convert(t *testing.T) {
	fresh := now.Add(-time.Minute)
	tests := []struct {
		name       string
		cached     []domain.ExchangeRate
		amount     string
		currency   string
		expectErr  error
		expectGTON string
		expectRate string
		expectAsOf time.Time
	}{
		{
			name:       "Fiat through USD and TON",
			cached:     []domain.ExchangeRate{rate(TON, USD, "5", fresh), rate(USD, "RUB", "100", now.Add(-2*time.Minute))},
			amount:     "1000",
			currency:   "rub",
			expectGTON: "1",
			expectRate: "1000",
			expectAsOf: now.Add(-2 * time.Minute),
		},
		{
			name:       "USD",
			cached:     []domain.ExchangeRate{rate(TON, USD, "5", fresh)},
			amount:     "25",
			currency:   "USD",
			expectGTON: "2.5",
			expectRate: "10",
			expectAsOf: fresh,
		},
		{
			name:       "Stablecoin is pegged to USD",
			cached:     []domain.ExchangeRate{rate(TON, USD, "5", fresh)},
			amount:     "10",
			currency:   "USDT",
			expectGTON: "1",
			expectRate: "10",
			expectAsOf: fresh,
		},
		{
			name:       "TON needs no cached rate",
			amount:     "4",
			currency:   "TON",
			expectGTON: "2",
			expectRate: "2",
			expectAsOf: now,
		},
		{
			name:       "GTON rounds half even",
			amount:     "1.2345675",
			currency:   "gton",
			expectGTON: "1.234568",
			expectRate: "1",
			expectAsOf: now,
		},
		{
			name:       "Crypto asset",
			cached:     []domain.ExchangeRate{rate(TON, USD, "5", fresh), rate("BTC", USD, "50000", fresh)},
			amount:     "0.001",
			currency:   "BTC",
			expectGTON: "5",
			expectRate: "0.0002",
			expectAsOf: fresh,
		},
		{
			name:      "Configured currency without a rate",
			cached:    []domain.ExchangeRate{rate(TON, USD, "5", fresh)},
			amount:    "10",
			currency:  "EUR",
			expectErr: domain.ErrRatesUnavailable,
		},
		{
			name:      "Unknown currency",
			cached:    []domain.ExchangeRate{rate(TON, USD, "5", fresh)},
			amount:    "10",
			currency:  "XYZ",
			expectErr: domain.ErrUnsupportedCurrency,
		},
		{
			name:      "Stale TON rate",
			cached:    []domain.ExchangeRate{rate(TON, USD, "5", now.Add(-31*time.Minute)), rate(USD, "RUB", "100", fresh)},
			amount:    "10",
			currency:  "RUB",
			expectErr: domain.ErrRatesUnavailable,
		},
		{
			name:      "Stale fiat rate",
			cached:    []domain.ExchangeRate{rate(TON, USD, "5", fresh), rate(USD, "RUB", "100", now.Add(-time.Hour))},
			amount:    "10",
			currency:  "RUB",
			expectErr: domain.ErrRatesUnavailable,
		},
		{
			name:      "Non-positive amount",
			amount:    "0",
			currency:  "TON",
			expectErr: domain.ErrInvalidAmount,
		},
		{
			name:      "Below one micro GTON",
			cached:    []domain.ExchangeRate{rate(TON, USD, "5", fresh), rate(USD, "RUB", "100", fresh)},
			amount:    "0.0001",
			currency:  "RUB",
			expectErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, _ := NewMock(t)
			p.store(tt.cached)

			conv, err := p.Convert(context.Background(), d(tt.amount), tt.currency)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, conv)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.ToUpper(tt.currency), conv.Currency)
			assert.True(t, d(tt.expectGTON).Equal(conv.GTON), "gton %s", conv.GTON)
			assert.True(t, d(tt.expectRate).Equal(conv.Rate), "rate %s", conv.Rate)
			assert.True(t, tt.expectAsOf.Equal(conv.AsOf))
		})
	}
}

func TestProvider_ConvertFromGTON(t *testing.T) {
	fresh := now.Add(-time.Minute)
	tests := []struct {
		name         string
		cached       []domain.ExchangeRate
		gton         string
		currency     string
		expectErr    error
		expectAmount string
		expectRate   string
		expectAsOf   time.Time
	}{
		{
			name:         "Fiat through TON and USD",
			cached:       []domain.ExchangeRate{rate(TON, USD, "5", fresh), rate(USD, "RUB", "100", now.Add(-2*time.Minute))},
			gton:         "1.5",
			currency:     "rub",
			expectAmount: "1500",
			expectRate:   "1000",
			expectAsOf:   now.Add(-2 * time.Minute),
		},
		{
			name:         "Stablecoin is pegged to USD",
			cached:       []domain.ExchangeRate{rate(TON, USD, "5", fresh)},
			gton:         "3",
			currency:     "USDC",
			expectAmount: "30",
			expectRate:   "10",
			expectAsOf:   fresh,
		},
		{
			name:         "Crypto asset",
			cached:       []domain.ExchangeRate{rate(TON, USD, "5", fresh), rate("BTC", USD, "50000", fresh)},
			gton:         "5",
			currency:     "BTC",
			expectAmount: "0.001",
			expectRate:   "0.0002",
			expectAsOf:   fresh,
		},
		{
			name:         "Crypto result rounds to six places",
			cached:       []domain.ExchangeRate{rate(TON, USD, "5", fresh), rate("BTC", USD, "30000", fresh)},
			gton:         "1",
			currency:     "BTC",
			expectAmount: "0.000333",
			expectRate:   "0.000333333333",
			expectAsOf:   fresh,
		},
		{
			name:         "TON needs no cached rate",
			gton:         "4",
			currency:     "TON",
			expectAmount: "8",
			expectRate:   "2",
			expectAsOf:   now,
		},
		{
			name:      "Stale TON rate",
			cached:    []domain.ExchangeRate{rate(TON, USD, "5", now.Add(-31*time.Minute)), rate(USD, "RUB", "100", fresh)},
			gton:      "1",
			currency:  "RUB",
			expectErr: domain.ErrRatesUnavailable,
		},
		{
			name:      "Stale fiat rate",
			cached:    []domain.ExchangeRate{rate(TON, USD, "5", fresh), rate(USD, "RUB", "100", now.Add(-time.Hour))},
			gton:      "1",
			currency:  "RUB",
			expectErr: domain.ErrRatesUnavailable,
		},
		{
			name:      "Unknown currency",
			cached:    []domain.ExchangeRate{rate(TON, USD, "5", fresh)},
			gton:      "1",
			currency:  "XYZ",
			expectErr: domain.ErrUnsupportedCurrency,
		},
		{
			name:      "Non-positive amount",
			gton:      "-1",
			currency:  "TON",
			expectErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, _ := NewMock(t)
			p.store(tt.cached)

			conv, err := p.ConvertFromGTON(context.Background(), d(tt.gton), tt.currency)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, conv)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.ToUpper(tt.currency), conv.Currency)
			assert.True(t, d(tt.gton).Equal(conv.GTON))
			assert.True(t, d(tt.expectAmount).Equal(conv.Amount), "amount %s", conv.Amount)
			assert.True(t, d(tt.expectRate).Equal(conv.Rate), "rate %s", conv.Rate)
			assert.True(t, tt.expectAsOf.Equal(conv.AsOf))
		})
	}
}

const (
	fiatBody   = `{"result":"success","base_code":"USD","rates":{"USD":1,"RUB":103.5,"EUR":0.92,"GBP":0.79}}`
	cryptoBody = `{"the-open-network":{"usd":6.85},"bitcoin":{"usd":100000},"ethereum":{"usd":3500}}`
)

func TestProvider_Refresh(t *testing.T) {
	p, repo, client := NewMock(t)

	client.EXPECT().Get(gomock.Any(), "http://fiat/USD", gomock.Nil()).Return(http.StatusOK, []byte(fiatBody), nil, nil)
	client.EXPECT().Get(gomock.Any(), "http://crypto?ids=bitcoin%2Cethereum%2Cthe-open-network&vs_currencies=usd", gomock.Nil()).
		Return(http.StatusOK, []byte(cryptoBody), nil, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Len(5)).Return(nil)

	require.NoError(t, p.Refresh(context.Background()))

	conv, err := p.Convert(context.Background(), d("1000"), "RUB")
	require.NoError(t, err)
	// 1000 / 103.5 / 6.85 / 2
	assert.Equal(t, "0.705243", conv.GTON.StringFixed(6))

	quotes := p.Rates()
	require.Len(t, quotes, 6)
	assert.Equal(t, "BTC", quotes[0].Base)
	assert.Equal(t, GTON, quotes[2].Base)
	assert.Equal(t, "settings", quotes[2].Source)
	for _, q := range quotes {
		assert.False(t, q.Stale)
	}
}

func TestProvider_RefreshPartialFailure(t *testing.T) {
	p, repo, client := NewMock(t)

	client.EXPECT().Get(gomock.Any(), "http://fiat/USD", gomock.Any()).Return(http.StatusOK, []byte(fiatBody), nil, nil)
	client.EXPECT().Get(gomock.Any(), gomock.Not("http://fiat/USD"), gomock.Any()).
		Return(http.StatusBadGateway, nil, nil, nil).Times(maxRetries)
	repo.EXPECT().Save(gomock.Any(), gomock.Len(2)).Return(nil)

	err := p.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	_, ok := p.lookup(USD, "RUB")
	assert.True(t, ok)
	_, err = p.Convert(context.Background(), d("1000"), "RUB")
	assert.ErrorIs(t, err, domain.ErrRatesUnavailable)
}

func TestProvider_Get(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(c *clients.MockHTTPClientI)
		expectErr   error
	}{
		{
			name: "Rate limited then ok",
			prepareMock: func(c *clients.MockHTTPClientI) {
				gomock.InOrder(
					c.EXPECT().Get(gomock.Any(), "http://x", gomock.Nil()).Return(http.StatusTooManyRequests, nil, http.Header{"Retry-After": {"0"}}, nil),
					c.EXPECT().Get(gomock.Any(), "http://x", gomock.Nil()).Return(http.StatusOK, []byte(`{}`), nil, nil),
				)
			},
		},
		{
			name: "Transport error then ok",
			prepareMock: func(c *clients.MockHTTPClientI) {
				gomock.InOrder(
					c.EXPECT().Get(gomock.Any(), "http://x", gomock.Nil()).Return(0, nil, nil, context.DeadlineExceeded),
					c.EXPECT().Get(gomock.Any(), "http://x", gomock.Nil()).Return(http.StatusOK, []byte(`{}`), nil, nil),
				)
			},
		},
		{
			name: "Server error then ok",
			prepareMock: func(c *clients.MockHTTPClientI) {
				gomock.InOrder(
					c.EXPECT().Get(gomock.Any(), "http://x", gomock.Nil()).Return(http.StatusServiceUnavailable, nil, nil, nil),
					c.EXPECT().Get(gomock.Any(), "http://x", gomock.Nil()).Return(http.StatusOK, []byte(`{}`), nil, nil),
				)
			},
		},
		{
			name: "Client error is not retried",
			prepareMock: func(c *clients.MockHTTPClientI) {
				c.EXPECT().Get(gomock.Any(), "http://x", gomock.Nil()).Return(http.StatusNotFound, nil, nil, nil)
			},
			expectErr: ErrUnexpectedStatus,
		},
		{
			name: "Retries exhausted",
			prepareMock: func(c *clients.MockHTTPClientI) {
				c.EXPECT().Get(gomock.Any(), "http://x", gomock.Nil()).Return(0, nil, nil, context.DeadlineExceeded).Times(maxRetries)
			},
			expectErr: context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, client := NewMock(t)
			tt.prepareMock(client)

			body, err := p.get(context.Background(), "http://x")
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []byte(`{}`), body)
		})
	}
}

func TestProvider_GetHonoursRetryAfter(t *testing.T) {
	p, _, client := NewMock(t)
	p.retryWait = time.Hour
	gomock.InOrder(
		client.EXPECT().Get(gomock.Any(), "http://x", gomock.Nil()).Return(http.StatusTooManyRequests, nil, http.Header{"Retry-After": {"0"}}, nil),
		client.EXPECT().Get(gomock.Any(), "http://x", gomock.Nil()).Return(http.StatusOK, []byte(`{}`), nil, nil),
	)

	start := time.Now()
	body, err := p.get(context.Background(), "http://x")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), body)
	assert.Less(t, time.Since(start), time.Second)
}

func TestProvider_Load(t *testing.T) {
	p, repo, _ := NewMock(t)
	repo.EXPECT().All(gomock.Any()).Return([]domain.ExchangeRate{
		rate(TON, USD, "5", now.Add(-time.Hour)),
		rate(USD, "RUB", "100", now.Add(-time.Minute)),
	}, nil)

	require.NoError(t, p.Load(context.Background()))

	_, err := p.Convert(context.Background(), d("100"), "RUB")
	assert.ErrorIs(t, err, domain.ErrRatesUnavailable)

	quotes := p.Rates()
	require.Len(t, quotes, 3)
	assert.Equal(t, GTON, quotes[0].Base)
	assert.True(t, quotes[1].Stale)
	assert.False(t, quotes[2].Stale)
}

func TestProvider_StoreKeepsNewest(t *testing.T) {
	p, _, _ := NewMock(t)
	p.store([]domain.ExchangeRate{rate(TON, USD, "6", now)})
	p.store([]domain.ExchangeRate{rate(TON, USD, "5", now.Add(-time.Hour))})

	r, ok := p.lookup(TON, USD)
	require.True(t, ok)
	assert.Equal(t, "6", r.Rate.String())
}
