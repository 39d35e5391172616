package repository

import (
	"path/filepath"

	"villagehub-backend/internal/announcement/domain"
	"villagehub-backend/pkg/storage"
)

// AnnouncementRepository defines the interface for announcement persistence
type AnnouncementRepository interface {
	GetAll() ([]domain.Announcement, error)
	Create(a domain.Announcement) error
	Delete(id string) error
	Mutate(id string, fn func(*domain.Announcement) error) error
	OnChange(fn func([]domain.Announcement))
}

// announcementRepository implements AnnouncementRepository on the shared
// file-backed collection
type announcementRepository struct {
	coll *storage.Collection[domain.Announcement]
}

// NewAnnouncementRepository creates a new instance of announcementRepository
func NewAnnouncementRepository(dataDir string) AnnouncementRepository {
	return &announcementRepository{
		coll: storage.NewCollection[domain.Announcement](filepath.Join(dataDir, "announcements.json")),
	}
}

func (r *announcementRepository) GetAll() ([]domain.Announcement, error) {
	return r.coll.All()
}

func (r *announcementRepository) Create(a domain.Announcement) error {
	return r.coll.Insert(a)
}

func (r *announcementRepository) Delete(id string) error {
	return r.coll.Delete(func(a domain.Announcement) bool { return a.ID == id })
}

func (r *announcementRepository) Mutate(id string, fn func(*domain.Announcement) error) error {
	return r.coll.Update(func(a domain.Announcement) bool { return a.ID == id }, fn)
}

func (r *announcementRepository) OnChange(fn func([]domain.Announcement)) {
	r.coll.OnChange(fn)
}
