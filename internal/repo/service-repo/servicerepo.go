package servicerepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
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

func (repo *Repository) FindByID(ctx context.Context, id string) (*domain.PluginService, error) {
	var s domain.PluginService
	err := repo.db.QueryRow(ctx, "SELECT id, name, api_key_hash, is_active FROM services WHERE id = $1", id).
		Scan(&s.ID, &s.Name, &s.APIKeyHash, &s.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find service", zap.String("service_id", id), zap.Error(err))
		return nil, err
	}
	return &s, nil
}

func (repo *Repository) Create(ctx context.Context, s *domain.PluginService) error {
	query := `
		INSERT INTO services (id, name, api_key_hash, is_active)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := repo.db.Exec(ctx, query, s.ID, s.Name, s.APIKeyHash, s.IsActive); err != nil {
		zap.L().Error("can't save service", zap.String("service_id", s.ID), zap.Error(err))
		return pg.MapError(err)
	}
	return nil
}
