package repository

import (
	"path/filepath"
	"time"

	"villagehub-backend/internal/device/domain"
	"villagehub-backend/pkg/storage"
)

// TokenRepository defines the interface for push token operations
type TokenRepository interface {
	SaveToken(token, userID, provider string) (domain.Token, error)
	GetAll() ([]domain.Token, error)
	GetTokensByUserID(userID string) ([]domain.Token, error)
	DeleteToken(token string) error
}

// tokenRepository implements TokenRepository on the shared file-backed
// collection
type tokenRepository struct {
	coll *storage.Collection[domain.Token]
}

// NewTokenRepository creates a new instance of tokenRepository
func NewTokenRepository(dataDir string) TokenRepository {
	return &tokenRepository{
		coll: storage.NewCollection[domain.Token](filepath.Join(dataDir, "push_tokens.json")),
	}
}

// SaveToken saves or refreshes a push token (upsert keyed by token value)
func (r *tokenRepository) SaveToken(token, userID, provider string) (domain.Token, error) {
	now := time.Now()
	record := domain.Token{
		Token:     token,
		UserID:    userID,
		Provider:  provider,
		CreatedAt: now,
		UpdatedAt: now,
	}

	existing, err := r.coll.All()
	if err != nil {
		return record, err
	}
	for _, t := range existing {
		if t.Token == token {
			record.CreatedAt = t.CreatedAt
			break
		}
	}

	_, err = r.coll.Upsert(func(t domain.Token) bool { return t.Token == token }, record)
	return record, err
}

func (r *tokenRepository) GetAll() ([]domain.Token, error) {
	return r.coll.All()
}

// GetTokensByUserID returns all registered tokens for a user
func (r *tokenRepository) GetTokensByUserID(userID string) ([]domain.Token, error) {
	all, err := r.coll.All()
	if err != nil {
		return nil, err
	}
	var tokens []domain.Token
	for _, t := range all {
		if t.UserID == userID {
			tokens = append(tokens, t)
		}
	}
	return tokens, nil
}

// DeleteToken removes a specific push token
func (r *tokenRepository) DeleteToken(token string) error {
	return r.coll.Delete(func(t domain.Token) bool { return t.Token == token })
}
