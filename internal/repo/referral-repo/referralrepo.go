package referralrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/pg"
)

const referralColumns = `id, referrer_id, referred_id, level, total_payments, total_commission, is_active, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanReferral(row pgx.Row, r *domain.Referral) error {
	return row.Scan(&r.ID, &r.ReferrerID, &r.ReferredID, &r.Level, &r.TotalPayments, &r.TotalCommission,
		&r.IsActive, &r.CreatedAt)
}

// Create inserts an edge. An existing edge for the same pair is left untouched and
// reported with created=false.
func (r *Repository) Create(ctx context.Context, ref *domain.Referral) (bool, error) {
	query := `
        INSERT INTO referrals (referrer_id, referred_id, level)
        VALUES ($1, $2, $3)
        ON CONFLICT (referrer_id, referred_id) DO NOTHING
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, ref.ReferrerID, ref.ReferredID, ref.Level).Scan(&ref.ID, &ref.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		zap.L().Error("can't save referral", zap.Int64("referred_id", ref.ReferredID), zap.Error(err))
		return false, pg.MapError(err)
	}
	return true, nil
}

// Parent returns the active level-1 edge pointing at referredID, or nil.
func (r *Repository) Parent(ctx context.Context, referredID int64) (*domain.Referral, error) {
	query := `
        SELECT ` + referralColumns + `
        FROM referrals
        WHERE referred_id = $1 AND level = 1 AND is_active
    `
	var ref domain.Referral
	if err := scanReferral(r.db.QueryRow(ctx, query, referredID), &ref); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find referral parent", zap.Int64("referred_id", referredID), zap.Error(err))
		return nil, err
	}
	return &ref, nil
}

func (r *Repository) Find(ctx context.Context, referrerID, referredID int64) (*domain.Referral, error) {
	query := `
        SELECT ` + referralColumns + `
        FROM referrals
        WHERE referrer_id = $1 AND referred_id = $2
    `
	var ref domain.Referral
	if err := scanReferral(r.db.QueryRow(ctx, query, referrerID, referredID), &ref); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find referral", zap.Int64("referrer_id", referrerID), zap.Error(err))
		return nil, err
	}
	return &ref, nil
}

func (r *Repository) AddTotals(ctx context.Context, id int64, payment, commission decimal.Decimal) error {
	query := `
        UPDATE referrals
        SET total_payments = total_payments + $1, total_commission = total_commission + $2
        WHERE id = $3
    `
	if _, err := r.db.Exec(ctx, query, payment, commission, id); err != nil {
		zap.L().Error("can't update referral totals", zap.Int64("referral_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ApprovedPartner returns the approved partner profile of userID, or nil.
func (r *Repository) ApprovedPartner(ctx context.Context, userID int64) (*domain.Partner, error) {
	query := `
        SELECT id, user_id, level1_percent, level2_percent, level3_percent, status
        FROM partners
        WHERE user_id = $1 AND status = 'approved'
    `
	var p domain.Partner
	err := r.db.QueryRow(ctx, query, userID).
		Scan(&p.ID, &p.UserID, &p.Percents[0], &p.Percents[1], &p.Percents[2], &p.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find partner", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *Repository) PartnerByID(ctx context.Context, id int64) (*domain.Partner, error) {
	query := `
        SELECT id, user_id, level1_percent, level2_percent, level3_percent, status
        FROM partners
        WHERE id = $1
    `
	var p domain.Partner
	err := r.db.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.UserID, &p.Percents[0], &p.Percents[1], &p.Percents[2], &p.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find partner", zap.Int64("partner_id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}
