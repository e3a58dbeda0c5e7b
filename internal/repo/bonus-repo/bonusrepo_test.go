package bonusrepo

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

var columns = []string{"id", "user_id", "current_streak", "max_streak", "last_claim_date", "total_claims", "total_rewarded"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func TestRepository_GetByUser(t *testing.T) {
	repo, mock := NewMock(t)
	day := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(`FROM daily_bonuses WHERE user_id = $1`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.DailyBonus
	}{
		{
			name: "Record exists",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(1)).
					WillReturnRows(pgxmock.NewRows(columns).AddRow(int64(3), int64(1), 2, 5, &day, 9, decimal.NewFromInt(4)))
			},
			result: &domain.DailyBonus{ID: 3, UserID: 1, CurrentStreak: 2, MaxStreak: 5, LastClaimDate: &day,
				TotalClaims: 9, TotalRewarded: decimal.NewFromInt(4)},
		},
		{
			name: "Never claimed",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnError(errors.New("db error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByUser(context.Background(), 1)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_LockOrCreate(t *testing.T) {
	repo, mock := NewMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO daily_bonuses (user_id) VALUES ($1) ON CONFLICT (user_id) DO UPDATE`)).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(columns).AddRow(int64(3), int64(1), 0, 0, (*time.Time)(nil), 0, decimal.Zero))

	b, err := repo.LockOrCreate(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), b.ID)
	assert.Nil(t, b.LastClaimDate)
}

func TestRepository_Update(t *testing.T) {
	repo, mock := NewMock(t)
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	b := &domain.DailyBonus{ID: 3, UserID: 1, CurrentStreak: 3, MaxStreak: 5, LastClaimDate: &day, TotalClaims: 10,
		TotalRewarded: decimal.NewFromInt(5)}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE daily_bonuses SET current_streak = $1`)).
		WithArgs(3, 5, &day, 10, pgxmock.AnyArg(), int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.Update(context.Background(), b))
}

func TestRepository_AddClaim(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO daily_bonus_history`)).
		WithArgs(int64(1), int64(3), 3, pgxmock.AnyArg(), 3, day, int64(50)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "claimed_at"}).AddRow(int64(8), now))

	c, err := repo.AddClaim(context.Background(), &domain.DailyBonusClaim{UserID: 1, DailyBonusID: 3, DayNumber: 3,
		Reward: decimal.RequireFromString("0.3"), Streak: 3, ClaimDate: day, TransactionID: 50})
	assert.NoError(t, err)
	assert.Equal(t, int64(8), c.ID)
}

func TestRepository_ClaimsAfter(t *testing.T) {
	repo, mock := NewMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM daily_bonus_history WHERE id > $1 ORDER BY id LIMIT $2`)).
		WithArgs(int64(0), 10).
		WillReturnError(errors.New("db error"))

	out, err := repo.ClaimsAfter(context.Background(), 0, 10)
	assert.Error(t, err)
	assert.Nil(t, out)
}
