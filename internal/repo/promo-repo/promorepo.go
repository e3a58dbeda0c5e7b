package promorepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/pg"
)

const promoColumns = `id, code, name, reward_type, reward_value, subscription_service_id, subscription_plan,
        max_activations, max_per_user, current_activations, min_deposit, only_new_users, only_first_deposit,
        bound_user_id, partner_id, starts_at, expires_at, is_active`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanPromo(row pgx.Row, p *domain.PromoCode) error {
	return row.Scan(&p.ID, &p.Code, &p.Name, &p.RewardType, &p.RewardValue, &p.SubscriptionSvc, &p.SubscriptionPlan,
		&p.MaxActivations, &p.MaxPerUser, &p.CurrentActivations, &p.MinDeposit, &p.OnlyNewUsers, &p.OnlyFirstDeposit,
		&p.BoundUserID, &p.PartnerID, &p.StartsAt, &p.ExpiresAt, &p.IsActive)
}

func (r *Repository) findByCode(ctx context.Context, code string, lock bool) (*domain.PromoCode, error) {
	query := `
        SELECT ` + promoColumns + `
        FROM promocodes
        WHERE UPPER(code) = $1
    `
	if lock {
		query += " FOR UPDATE"
	}
	var p domain.PromoCode
	if err := scanPromo(r.db.QueryRow(ctx, query, code), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find promocode", zap.String("code", code), zap.Error(err))
		return nil, pg.MapError(err)
	}
	return &p, nil
}

// FindByCode looks a code up by its upper-cased form.
func (r *Repository) FindByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	return r.findByCode(ctx, code, false)
}

// FindByCodeForUpdate is FindByCode holding the row lock until the transaction ends.
func (r *Repository) FindByCodeForUpdate(ctx context.Context, code string) (*domain.PromoCode, error) {
	return r.findByCode(ctx, code, true)
}

// TryIncrement bumps current_activations unless the cap is already reached.
func (r *Repository) TryIncrement(ctx context.Context, id int64) (bool, error) {
	query := `
        UPDATE promocodes
        SET current_activations = current_activations + 1
        WHERE id = $1 AND (max_activations IS NULL OR current_activations < max_activations)
    `
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("can't increment promocode activations", zap.Int64("promo_id", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) CountUserActivations(ctx context.Context, promoID, userID int64) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM promocode_activations
        WHERE promocode_id = $1 AND user_id = $2
    `
	var n int
	if err := r.db.QueryRow(ctx, query, promoID, userID).Scan(&n); err != nil {
		zap.L().Error("can't count promocode activations", zap.Int64("promo_id", promoID), zap.Error(err))
		return 0, err
	}
	return n, nil
}

func (r *Repository) CreateActivation(ctx context.Context, a *domain.PromoActivation) (*domain.PromoActivation, error) {
	query := `
        INSERT INTO promocode_activations (promocode_id, user_id, reward_type, reward_value, transaction_id,
            subscription_id, discount_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, activated_at
    `
	err := r.db.QueryRow(ctx, query, a.PromoCodeID, a.UserID, a.RewardType, a.RewardValue, a.TransactionID,
		a.SubscriptionID, a.DiscountID).Scan(&a.ID, &a.ActivatedAt)
	if err != nil {
		zap.L().Error("can't save promocode activation", zap.Int64("promo_id", a.PromoCodeID), zap.Error(err))
		return nil, pg.MapError(err)
	}
	return a, nil
}

func (r *Repository) ActivationsAfter(ctx context.Context, afterID int64, limit int) ([]domain.PromoActivation, error) {
	query := `
        SELECT id, promocode_id, user_id, reward_type, reward_value, transaction_id, subscription_id, discount_id,
            activated_at
        FROM promocode_activations
        WHERE id > $1
        ORDER BY id
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, afterID, limit)
	if err != nil {
		zap.L().Error("failed to fetch activation feed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []domain.PromoActivation
	for rows.Next() {
		var a domain.PromoActivation
		err := rows.Scan(&a.ID, &a.PromoCodeID, &a.UserID, &a.RewardType, &a.RewardValue, &a.TransactionID,
			&a.SubscriptionID, &a.DiscountID, &a.ActivatedAt)
		if err != nil {
			zap.L().Error("failed to scan activation row", zap.Error(err))
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ExtendSubscription adds days to the user's subscription of a service, starting
// from now if it has lapsed.
func (r *Repository) ExtendSubscription(ctx context.Context, userID int64, serviceID, plan string, days int, now time.Time) (*domain.Subscription, error) {
	query := `
        INSERT INTO subscriptions (user_id, service_id, plan, starts_at, expires_at)
        VALUES ($1, $2, $3, $4, $4 + make_interval(days => $5))
        ON CONFLICT (user_id, service_id) DO UPDATE
        SET plan = EXCLUDED.plan,
            expires_at = GREATEST(subscriptions.expires_at, EXCLUDED.starts_at) + make_interval(days => $5)
        RETURNING id, user_id, service_id, plan, starts_at, expires_at
    `
	var s domain.Subscription
	err := r.db.QueryRow(ctx, query, userID, serviceID, plan, now, days).
		Scan(&s.ID, &s.UserID, &s.ServiceID, &s.Plan, &s.StartsAt, &s.ExpiresAt)
	if err != nil {
		zap.L().Error("can't extend subscription", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *Repository) CreateDiscount(ctx context.Context, d *domain.Discount) (*domain.Discount, error) {
	query := `
        INSERT INTO user_discounts (user_id, promocode_id, percent, min_deposit)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, d.UserID, d.PromoCodeID, d.Percent, d.MinDeposit).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		zap.L().Error("can't save discount", zap.Int64("user_id", d.UserID), zap.Error(err))
		return nil, err
	}
	return d, nil
}
