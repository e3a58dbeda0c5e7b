package commissionrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, c *domain.Commission) (*domain.Commission, error) {
	query := `
        INSERT INTO commissions (referrer_id, referred_id, referral_id, source_amount, commission_amount,
            commission_percent, level, is_partner, service_id, action, source_transaction_id, commission_transaction_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, c.ReferrerID, c.ReferredID, c.ReferralID, c.SourceAmount, c.CommissionAmount,
		c.CommissionPercent, c.Level, c.IsPartner, c.ServiceID, c.Action, c.SourceTransactionID,
		c.CommissionTransactionID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		zap.L().Error("can't save commission", zap.Int64("source_tx", c.SourceTransactionID), zap.Error(err))
		return nil, pg.MapError(err)
	}
	return c, nil
}

// ExistsForSource reports whether any commission was already posted for the debit.
func (r *Repository) ExistsForSource(ctx context.Context, sourceTxID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM commissions WHERE source_transaction_id = $1)`, sourceTxID).
		Scan(&exists)
	if err != nil {
		zap.L().Error("can't check commissions", zap.Int64("source_tx", sourceTxID), zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) After(ctx context.Context, afterID int64, limit int) ([]domain.Commission, error) {
	query := `
        SELECT id, referrer_id, referred_id, referral_id, source_amount, commission_amount, commission_percent,
            level, is_partner, service_id, action, source_transaction_id, commission_transaction_id, created_at
        FROM commissions
        WHERE id > $1
        ORDER BY id
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, afterID, limit)
	if err != nil {
		zap.L().Error("failed to fetch commission feed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []domain.Commission
	for rows.Next() {
		var c domain.Commission
		err := rows.Scan(&c.ID, &c.ReferrerID, &c.ReferredID, &c.ReferralID, &c.SourceAmount, &c.CommissionAmount,
			&c.CommissionPercent, &c.Level, &c.IsPartner, &c.ServiceID, &c.Action, &c.SourceTransactionID,
			&c.CommissionTransactionID, &c.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan commission row", zap.Error(err))
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
