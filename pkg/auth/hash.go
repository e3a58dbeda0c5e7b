package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=hash.go -destination=mock_hash.go -package=auth

type HashServiceInterface interface {
	HashKey(key string) (string, error)
	CompareKey(hashedKey string, key string) bool
}

// HashService stores plugin-service API keys as bcrypt hashes.
type HashService struct{}

func (b *HashService) HashKey(key string) (string, error) {
	if key == "" {
		return "", errors.New("api key cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (b *HashService) CompareKey(hashedKey, key string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedKey), []byte(key))
	return err == nil
}
