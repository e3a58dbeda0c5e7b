package bonusrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/pg"
)

const bonusColumns = `id, user_id, current_streak, max_streak, last_claim_date, total_claims, total_rewarded`

const claimColumns = `id, user_id, daily_bonus_id, day_number, reward, streak, claim_date, transaction_id, claimed_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanBonus(row pgx.Row, b *domain.DailyBonus) error {
	return row.Scan(&b.ID, &b.UserID, &b.CurrentStreak, &b.MaxStreak, &b.LastClaimDate, &b.TotalClaims, &b.TotalRewarded)
}

func (r *Repository) GetByUser(ctx context.Context, userID int64) (*domain.DailyBonus, error) {
	query := `
        SELECT ` + bonusColumns + `
        FROM daily_bonuses
        WHERE user_id = $1
    `
	var b domain.DailyBonus
	if err := scanBonus(r.db.QueryRow(ctx, query, userID), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't get daily bonus", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &b, nil
}

// LockOrCreate returns the user's bonus record, creating an empty one, with its row locked.
func (r *Repository) LockOrCreate(ctx context.Context, userID int64) (*domain.DailyBonus, error) {
	query := `
        INSERT INTO daily_bonuses (user_id)
        VALUES ($1)
        ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
        RETURNING ` + bonusColumns
	var b domain.DailyBonus
	if err := scanBonus(r.db.QueryRow(ctx, query, userID), &b); err != nil {
		zap.L().Error("can't lock daily bonus", zap.Int64("user_id", userID), zap.Error(err))
		return nil, pg.MapError(err)
	}
	return &b, nil
}

func (r *Repository) Update(ctx context.Context, b *domain.DailyBonus) error {
	query := `
        UPDATE daily_bonuses
        SET current_streak = $1, max_streak = $2, last_claim_date = $3, total_claims = $4, total_rewarded = $5
        WHERE id = $6
    `
	_, err := r.db.Exec(ctx, query, b.CurrentStreak, b.MaxStreak, b.LastClaimDate, b.TotalClaims, b.TotalRewarded, b.ID)
	if err != nil {
		zap.L().Error("can't update daily bonus", zap.Int64("user_id", b.UserID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) AddClaim(ctx context.Context, c *domain.DailyBonusClaim) (*domain.DailyBonusClaim, error) {
	query := `
        INSERT INTO daily_bonus_history (user_id, daily_bonus_id, day_number, reward, streak, claim_date, transaction_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, claimed_at
    `
	err := r.db.QueryRow(ctx, query, c.UserID, c.DailyBonusID, c.DayNumber, c.Reward, c.Streak, c.ClaimDate, c.TransactionID).
		Scan(&c.ID, &c.ClaimedAt)
	if err != nil {
		zap.L().Error("can't save daily bonus claim", zap.Int64("user_id", c.UserID), zap.Error(err))
		return nil, pg.MapError(err)
	}
	return c, nil
}

func (r *Repository) ClaimsAfter(ctx context.Context, afterID int64, limit int) ([]domain.DailyBonusClaim, error) {
	query := `
        SELECT ` + claimColumns + `
        FROM daily_bonus_history
        WHERE id > $1
        ORDER BY id
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, afterID, limit)
	if err != nil {
		zap.L().Error("failed to fetch claim feed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []domain.DailyBonusClaim
	for rows.Next() {
		var c domain.DailyBonusClaim
		err := rows.Scan(&c.ID, &c.UserID, &c.DailyBonusID, &c.DayNumber, &c.Reward, &c.Streak, &c.ClaimDate,
			&c.TransactionID, &c.ClaimedAt)
		if err != nil {
			zap.L().Error("failed to scan claim row", zap.Error(err))
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
