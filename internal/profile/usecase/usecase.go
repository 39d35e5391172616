package usecase

import (
	"strings"
	"time"

	"villagehub-backend/internal/profile/domain"
	"villagehub-backend/internal/profile/repository"
)

// ProfileUsecase defines user profile business operations
type ProfileUsecase interface {
	List() ([]domain.Profile, error)
	Upsert(name, surname, email string) (*domain.Profile, error)
}

type profileUsecase struct {
	repo repository.ProfileRepository
}

func NewProfileUsecase(repo repository.ProfileRepository) ProfileUsecase {
	return &profileUsecase{repo: repo}
}

func (u *profileUsecase) List() ([]domain.Profile, error) {
	return u.repo.GetAll()
}

// Upsert inserts or refreshes a profile keyed by lowercased email.
// JoinedAt is preserved across updates.
func (u *profileUsecase) Upsert(name, surname, email string) (*domain.Profile, error) {
	now := time.Now()
	p := domain.Profile{
		ID:        strings.ToLower(email),
		Name:      name,
		Surname:   surname,
		Email:     email,
		JoinedAt:  now,
		UpdatedAt: now,
	}

	existing, err := u.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		p.JoinedAt = existing.JoinedAt
	}

	if _, err := u.repo.Upsert(p); err != nil {
		return nil, err
	}
	return &p, nil
}
