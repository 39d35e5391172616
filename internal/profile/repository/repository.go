package repository

import (
	"path/filepath"
	"strings"

	"villagehub-backend/internal/profile/domain"
	"villagehub-backend/pkg/storage"
)

// ProfileRepository defines the interface for user profile persistence
type ProfileRepository interface {
	GetAll() ([]domain.Profile, error)
	FindByEmail(email string) (*domain.Profile, error)
	Upsert(p domain.Profile) (updated bool, err error)
}

type profileRepository struct {
	coll *storage.Collection[domain.Profile]
}

// NewProfileRepository creates a new instance of profileRepository
func NewProfileRepository(dataDir string) ProfileRepository {
	return &profileRepository{
		coll: storage.NewCollection[domain.Profile](filepath.Join(dataDir, "profiles.json")),
	}
}

func (r *profileRepository) GetAll() ([]domain.Profile, error) {
	return r.coll.All()
}

func (r *profileRepository) FindByEmail(email string) (*domain.Profile, error) {
	id := strings.ToLower(email)
	items, err := r.coll.All()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *profileRepository) Upsert(p domain.Profile) (bool, error) {
	return r.coll.Upsert(func(existing domain.Profile) bool { return existing.ID == p.ID }, p)
}
