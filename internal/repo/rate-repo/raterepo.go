package raterepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) All(ctx context.Context) ([]domain.ExchangeRate, error) {
	rows, err := r.db.Query(ctx, `SELECT base, quote, rate, source, updated_at FROM exchange_rates`)
	if err != nil {
		zap.L().Error("can't load exchange rates", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var rate domain.ExchangeRate
		if err := rows.Scan(&rate.Base, &rate.Quote, &rate.Rate, &rate.Source, &rate.UpdatedAt); err != nil {
			zap.L().Error("can't scan exchange rate row", zap.Error(err))
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}

func (r *Repository) Save(ctx context.Context, rates []domain.ExchangeRate) error {
	query := `
        INSERT INTO exchange_rates (base, quote, rate, source, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (base, quote) DO UPDATE
        SET rate = EXCLUDED.rate, source = EXCLUDED.source, updated_at = EXCLUDED.updated_at
        WHERE exchange_rates.updated_at < EXCLUDED.updated_at
    `
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		for _, rate := range rates {
			if _, err := r.db.Exec(ctx, query, rate.Base, rate.Quote, rate.Rate, rate.Source, rate.UpdatedAt); err != nil {
				zap.L().Error("can't save exchange rate", zap.String("base", rate.Base), zap.Error(err))
				return err
			}
		}
		return nil
	})
}
