package service

import (
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/gtonledger/internal/config"
	"github.com/GlebRadaev/gtonledger/internal/events"
	"github.com/GlebRadaev/gtonledger/internal/pg"
	"github.com/GlebRadaev/gtonledger/internal/rates"
	"github.com/GlebRadaev/gtonledger/internal/repo"
	"github.com/GlebRadaev/gtonledger/internal/settings"
	"github.com/GlebRadaev/gtonledger/pkg/auth"
	"github.com/GlebRadaev/gtonledger/pkg/clients"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)

	cfg := &config.Config{TokenTTL: 15 * time.Minute, ExpiryWorkers: 1, RatesMaxAge: time.Hour}
	txManager := pg.NewMockTXManager(ctrl)
	repos := repo.New(mockDB, txManager)
	snap := settings.Defaults(settings.Base{Timezone: "UTC"})
	provider := settings.Fixed(snap)

	services := New(cfg, repos, Deps{
		TxManager: txManager,
		Rates:     rates.New(cfg, repos.RateRepo, provider, clients.NewHTTPClient()),
		Settings:  provider,
		Publisher: events.Nop{},
		JWT:       auth.NewJWTService("secret"),
	})

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.UserService)
	assert.NotNil(t, services.BalanceService)
	assert.NotNil(t, services.PromoService)
	assert.NotNil(t, services.BonusService)
	assert.NotNil(t, services.RatesService)
	assert.NotNil(t, services.AuditService)
	assert.NotNil(t, services.Sweeper)
	assert.Equal(t, 15*time.Minute, services.AuthService.TokenTTL())
}
