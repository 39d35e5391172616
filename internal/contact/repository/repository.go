package repository

import (
	"path/filepath"

	"villagehub-backend/internal/contact/domain"
	"villagehub-backend/pkg/storage"
)

// ContactRepository defines the interface for contact message persistence
type ContactRepository interface {
	GetAll() ([]domain.Message, error)
	Create(m domain.Message) error
	OnChange(fn func([]domain.Message))
}

type contactRepository struct {
	coll *storage.Collection[domain.Message]
}

// NewContactRepository creates a new instance of contactRepository
func NewContactRepository(dataDir string) ContactRepository {
	return &contactRepository{
		coll: storage.NewCollection[domain.Message](filepath.Join(dataDir, "contact_messages.json")),
	}
}

func (r *contactRepository) GetAll() ([]domain.Message, error) {
	return r.coll.All()
}

func (r *contactRepository) Create(m domain.Message) error {
	return r.coll.Insert(m)
}

func (r *contactRepository) OnChange(fn func([]domain.Message)) {
	r.coll.OnChange(fn)
}
