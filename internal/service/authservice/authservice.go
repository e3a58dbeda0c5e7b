package authservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/pkg/auth"
)

//go:generate mockgen -source=authservice.go -destination=mock_authservice.go -package=authservice

var ErrInvalidCredentials = errors.New("invalid credentials")

const DefaultTokenTTL = 15 * time.Minute

type Repo interface {
	FindByID(ctx context.Context, id string) (*domain.PluginService, error)
	Create(ctx context.Context, s *domain.PluginService) error
}

type Service struct {
	serviceRepo Repo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	tokenTTL    time.Duration
}

func New(repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &Service{
		serviceRepo: repo,
		hashService: hashService,
		jwtService:  jwtService,
		tokenTTL:    tokenTTL,
	}
}

// Register stores a plugin service with the bcrypt hash of its API key.
func (s *Service) Register(ctx context.Context, id, name, apiKey string) (*domain.PluginService, error) {
	existing, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("can't find service: ", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		zap.L().Info("service already registered", zap.String("service_id", id))
		return nil, domain.ErrConflict
	}
	hashedKey, err := s.hashService.HashKey(apiKey)
	if err != nil {
		zap.L().Error("can't hash api key: ", zap.Error(err))
		return nil, err
	}
	svc := &domain.PluginService{
		ID:         id,
		Name:       name,
		APIKeyHash: hashedKey,
		IsActive:   true,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		zap.L().Error("can't create service: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("service successfully registered", zap.String("service_id", id))
	return svc, nil
}

func (s *Service) Authenticate(ctx context.Context, id, apiKey string) (*domain.PluginService, error) {
	svc, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil || svc == nil || !svc.IsActive {
		zap.L().Error("invalid credentials", zap.String("service_id", id), zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.CompareKey(svc.APIKeyHash, apiKey); !ok {
		zap.L().Error("invalid credentials", zap.String("service_id", id))
		return nil, ErrInvalidCredentials
	}
	zap.L().Info("service successfully authenticated", zap.String("service_id", id))
	return svc, nil
}

func (s *Service) GenerateToken(serviceID string) (string, error) {
	expirationTime := time.Now().Add(s.tokenTTL)

	token, err := s.jwtService.GenerateJWT(serviceID, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}

func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}
