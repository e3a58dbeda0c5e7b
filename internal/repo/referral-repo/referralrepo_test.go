package referralrepo

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

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	query := regexp.QuoteMeta(`INSERT INTO referrals (referrer_id, referred_id, level) VALUES ($1, $2, $3) ON CONFLICT (referrer_id, referred_id) DO NOTHING`)

	tests := []struct {
		name        string
		mockSetup   func()
		wantCreated bool
		expectErr   bool
	}{
		{
			name: "New edge",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(1), int64(2), 1).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now))
			},
			wantCreated: true,
		},
		{
			name: "Edge already exists",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(1), int64(2), 1).WillReturnError(pgx.ErrNoRows)
			},
			wantCreated: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(1), int64(2), 1).WillReturnError(errors.New("db error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			created, err := repo.Create(context.Background(), &domain.Referral{ReferrerID: 1, ReferredID: 2, Level: 1})
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCreated, created)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Parent(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	cols := []string{"id", "referrer_id", "referred_id", "level", "total_payments", "total_commission", "is_active", "created_at"}
	query := regexp.QuoteMeta(`FROM referrals WHERE referred_id = $1 AND level = 1 AND is_active`)

	mock.ExpectQuery(query).WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(5), int64(1), int64(2), 1, decimal.Zero, decimal.Zero, true, now))
	ref, err := repo.Parent(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, &domain.Referral{ID: 5, ReferrerID: 1, ReferredID: 2, Level: 1, TotalPayments: decimal.Zero,
		TotalCommission: decimal.Zero, IsActive: true, CreatedAt: now}, ref)

	mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnError(pgx.ErrNoRows)
	ref, err = repo.Parent(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, ref)
}

func TestRepository_AddTotals(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`UPDATE referrals SET total_payments = total_payments + $1, total_commission = total_commission + $2 WHERE id = $3`)

	mock.ExpectExec(query).WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.AddTotals(context.Background(), 5, decimal.NewFromInt(100), decimal.NewFromInt(20)))

	mock.ExpectExec(query).WillReturnError(errors.New("db error"))
	assert.Error(t, repo.AddTotals(context.Background(), 5, decimal.NewFromInt(100), decimal.NewFromInt(20)))
}

func TestRepository_ApprovedPartner(t *testing.T) {
	repo, mock := NewMock(t)
	cols := []string{"id", "user_id", "level1_percent", "level2_percent", "level3_percent", "status"}
	query := regexp.QuoteMeta(`FROM partners WHERE user_id = $1 AND status = 'approved'`)

	mock.ExpectQuery(query).WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(9), int64(1), decimal.NewNullDecimal(decimal.NewFromInt(30)),
			decimal.NewNullDecimal(decimal.NewFromInt(10)), decimal.NullDecimal{}, domain.PartnerApproved))
	p, err := repo.ApprovedPartner(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(9), p.ID)
	assert.True(t, p.Percents[0].Valid)
	assert.True(t, p.Percents[0].Decimal.Equal(decimal.NewFromInt(30)))
	assert.False(t, p.Percents[2].Valid)
	assert.Equal(t, domain.PartnerApproved, p.Status)

	mock.ExpectQuery(query).WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	p, err = repo.ApprovedPartner(context.Background(), 2)
	assert.NoError(t, err)
	assert.Nil(t, p)
}
