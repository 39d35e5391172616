package usecase

import (
	"errors"
	"sort"
	"time"

	"villagehub-backend/internal/gallery/domain"
	"villagehub-backend/internal/gallery/repository"
	"villagehub-backend/pkg/ident"
	"villagehub-backend/pkg/sse"
	"villagehub-backend/pkg/storage"
)

// Topic is the SSE topic gallery changes are broadcast on.
const Topic = "gallery"

var (
	ErrNotFound = errors.New("image not found")
	ErrTooLarge = errors.New("image payload too large")
)

// GalleryUsecase defines gallery business operations
type GalleryUsecase interface {
	List() ([]domain.Image, error)
	Create(src, alt, caption, hint string) (*domain.Image, error)
	Delete(id string) error
}

type galleryUsecase struct {
	repo     repository.GalleryRepository
	broker   *sse.Broker
	maxBytes int64
}

func NewGalleryUsecase(repo repository.GalleryRepository, broker *sse.Broker, maxBytes int64) GalleryUsecase {
	u := &galleryUsecase{repo: repo, broker: broker, maxBytes: maxBytes}
	repo.OnChange(func(items []domain.Image) {
		sortSeedFirst(items)
		broker.Publish(Topic, items)
	})
	return u
}

// sortSeedFirst keeps seed-origin entries ahead of uploads, newest upload
// first within each group.
func sortSeedFirst(items []domain.Image) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Seed != items[j].Seed {
			return items[i].Seed
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func (u *galleryUsecase) List() ([]domain.Image, error) {
	items, err := u.repo.GetAll()
	if err != nil {
		return nil, err
	}
	sortSeedFirst(items)
	return items, nil
}

func (u *galleryUsecase) Create(src, alt, caption, hint string) (*domain.Image, error) {
	if int64(len(src)) > u.maxBytes {
		return nil, ErrTooLarge
	}

	img := domain.Image{
		ID:        ident.New("img"),
		Src:       src,
		Alt:       alt,
		Caption:   caption,
		Hint:      hint,
		CreatedAt: time.Now(),
	}
	if err := u.repo.Create(img); err != nil {
		return nil, err
	}
	return &img, nil
}

func (u *galleryUsecase) Delete(id string) error {
	if err := u.repo.Delete(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
