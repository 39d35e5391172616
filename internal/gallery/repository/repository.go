package repository

import (
	"path/filepath"

	"villagehub-backend/internal/gallery/domain"
	"villagehub-backend/pkg/storage"
)

// GalleryRepository defines the interface for gallery persistence
type GalleryRepository interface {
	GetAll() ([]domain.Image, error)
	Create(img domain.Image) error
	Delete(id string) error
	OnChange(fn func([]domain.Image))
}

type galleryRepository struct {
	coll *storage.Collection[domain.Image]
}

// NewGalleryRepository creates a new instance of galleryRepository
func NewGalleryRepository(dataDir string) GalleryRepository {
	return &galleryRepository{
		coll: storage.NewCollection[domain.Image](filepath.Join(dataDir, "gallery.json")),
	}
}

func (r *galleryRepository) GetAll() ([]domain.Image, error) {
	return r.coll.All()
}

func (r *galleryRepository) Create(img domain.Image) error {
	return r.coll.Insert(img)
}

func (r *galleryRepository) Delete(id string) error {
	return r.coll.Delete(func(img domain.Image) bool { return img.ID == id })
}

func (r *galleryRepository) OnChange(fn func([]domain.Image)) {
	r.coll.OnChange(fn)
}
