package settingsrepo

import (
	"context"

	"go.uber.org/zap"

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

func (r *Repository) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		zap.L().Error("can't load settings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	kv := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			zap.L().Error("can't scan setting row", zap.Error(err))
			return nil, err
		}
		kv[key] = value
	}
	return kv, rows.Err()
}
