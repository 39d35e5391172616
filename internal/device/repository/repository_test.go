package repository

import (
	"testing"
	"time"

	"villagehub-backend/internal/device/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTokenUpsertIsIdempotent(t *testing.T) {
	repo := NewTokenRepository(t.TempDir())

	first, err := repo.SaveToken("tok-abc", "villager-1", domain.ProviderFCM)
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	second, err := repo.SaveToken("tok-abc", "villager-1", domain.ProviderFCM)
	require.NoError(t, err)

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1, "re-registering the same token must not duplicate it")

	assert.Equal(t, first.CreatedAt.UnixNano(), all[0].CreatedAt.UnixNano(), "CreatedAt survives re-registration")
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt), "UpdatedAt must be refreshed")
}

func TestGetTokensByUserID(t *testing.T) {
	repo := NewTokenRepository(t.TempDir())

	_, err := repo.SaveToken("tok-1", "villager-1", domain.ProviderFCM)
	require.NoError(t, err)
	_, err = repo.SaveToken("tok-2", "villager-1", domain.ProviderExpo)
	require.NoError(t, err)
	_, err = repo.SaveToken("tok-3", "villager-2", domain.ProviderFCM)
	require.NoError(t, err)

	tokens, err := repo.GetTokensByUserID("villager-1")
	require.NoError(t, err)
	assert.Len(t, tokens, 2)
}

func TestDeleteToken(t *testing.T) {
	repo := NewTokenRepository(t.TempDir())

	_, err := repo.SaveToken("tok-1", "villager-1", domain.ProviderFCM)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteToken("tok-1"))

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}
