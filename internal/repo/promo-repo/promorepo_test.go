package promorepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/gtonledger/internal/domain"
)

var columns = []string{"id", "code", "name", "reward_type", "reward_value", "subscription_service_id",
	"subscription_plan", "max_activations", "max_per_user", "current_activations", "min_deposit",
	"only_new_users", "only_first_deposit", "bound_user_id", "partner_id", "starts_at", "expires_at", "is_active"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func welcome() domain.PromoCode {
	return domain.PromoCode{
		ID:           1,
		Code:         "WELCOME100",
		Name:         "welcome",
		RewardType:   domain.RewardCurrency,
		RewardValue:  decimal.NewFromInt(100),
		MaxPerUser:   1,
		OnlyNewUsers: true,
		IsActive:     true,
	}
}

func promoRow(p domain.PromoCode) *pgxmock.Rows {
	return pgxmock.NewRows(columns).AddRow(p.ID, p.Code, p.Name, p.RewardType, p.RewardValue, p.SubscriptionSvc,
		p.SubscriptionPlan, p.MaxActivations, p.MaxPerUser, p.CurrentActivations, p.MinDeposit, p.OnlyNewUsers,
		p.OnlyFirstDeposit, p.BoundUserID, p.PartnerID, p.StartsAt, p.ExpiresAt, p.IsActive)
}

func TestRepository_FindByCode(t *testing.T) {
	repo, mock := NewMock(t)
	p := welcome()

	tests := []struct {
		name      string
		lock      bool
		mockSetup func()
		expectErr bool
		result    *domain.PromoCode
	}{
		{
			name: "Found",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM promocodes WHERE UPPER(code) = $1`)).
					WithArgs("WELCOME100").
					WillReturnRows(promoRow(p))
			},
			result: &p,
		},
		{
			name: "Found and locked",
			lock: true,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM promocodes WHERE UPPER(code) = $1 FOR UPDATE`)).
					WithArgs("WELCOME100").
					WillReturnRows(promoRow(p))
			},
			result: &p,
		},
		{
			name: "Missing",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM promocodes`)).
					WithArgs("WELCOME100").
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM promocodes`)).
					WithArgs("WELCOME100").
					WillReturnError(errors.New("db error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			var (
				result *domain.PromoCode
				err    error
			)
			if tt.lock {
				result, err = repo.FindByCodeForUpdate(context.Background(), "WELCOME100")
			} else {
				result, err = repo.FindByCode(context.Background(), "WELCOME100")
			}
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_TryIncrement(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`UPDATE promocodes SET current_activations = current_activations + 1 WHERE id = $1 AND (max_activations IS NULL OR current_activations < max_activations)`)

	tests := []struct {
		name      string
		mockSetup func()
		want      bool
		expectErr bool
	}{
		{
			name: "Capacity left",
			mockSetup: func() {
				mock.ExpectExec(query).WithArgs(int64(1)).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			want: true,
		},
		{
			name: "Cap reached",
			mockSetup: func() {
				mock.ExpectExec(query).WithArgs(int64(1)).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			want: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(query).WithArgs(int64(1)).WillReturnError(errors.New("db error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			ok, err := repo.TryIncrement(context.Background(), 1)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestRepository_CountUserActivations(t *testing.T) {
	repo, mock := NewMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM promocode_activations WHERE promocode_id = $1 AND user_id = $2`)).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	n, err := repo.CountUserActivations(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRepository_CreateActivation(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	txID := int64(77)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO promocode_activations`)).
		WithArgs(int64(1), int64(2), domain.RewardCurrency, pgxmock.AnyArg(), &txID, (*int64)(nil), (*int64)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "activated_at"}).AddRow(int64(3), now))

	a, err := repo.CreateActivation(context.Background(), &domain.PromoActivation{
		PromoCodeID: 1, UserID: 2, RewardType: domain.RewardCurrency, RewardValue: decimal.NewFromInt(100), TransactionID: &txID,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), a.ID)
	assert.Equal(t, now, a.ActivatedAt)
}

func TestRepository_ExtendSubscription(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	until := now.AddDate(0, 0, 30)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO subscriptions (user_id, service_id, plan, starts_at, expires_at)`)).
		WithArgs(int64(2), "vpn", "pro", now, 30).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "service_id", "plan", "starts_at", "expires_at"}).
			AddRow(int64(4), int64(2), "vpn", "pro", now, until))

	s, err := repo.ExtendSubscription(context.Background(), 2, "vpn", "pro", 30, now)
	assert.NoError(t, err)
	assert.Equal(t, &domain.Subscription{ID: 4, UserID: 2, ServiceID: "vpn", Plan: "pro", StartsAt: now, ExpiresAt: until}, s)
}

func TestRepository_CreateDiscount(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO user_discounts (user_id, promocode_id, percent, min_deposit)`)).
		WillReturnError(errors.New("db error"))

	d, err := repo.CreateDiscount(context.Background(), &domain.Discount{UserID: 2, PromoCodeID: 1, Percent: decimal.NewFromInt(15), CreatedAt: now})
	assert.Error(t, err)
	assert.Nil(t, d)
}
