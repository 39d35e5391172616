package repository

import (
	"path/filepath"

	"villagehub-backend/internal/notification/domain"
	"villagehub-backend/pkg/storage"
)

// NotificationRepository defines the interface for app notification persistence
type NotificationRepository interface {
	GetAll() ([]domain.AppNotification, error)
	Create(n domain.AppNotification) error
	MarkRead(id string) error
	OnChange(fn func([]domain.AppNotification))
}

type notificationRepository struct {
	coll *storage.Collection[domain.AppNotification]
}

// NewNotificationRepository creates a new instance of notificationRepository
func NewNotificationRepository(dataDir string) NotificationRepository {
	return &notificationRepository{
		coll: storage.NewCollection[domain.AppNotification](filepath.Join(dataDir, "notifications.json")),
	}
}

func (r *notificationRepository) GetAll() ([]domain.AppNotification, error) {
	return r.coll.All()
}

func (r *notificationRepository) Create(n domain.AppNotification) error {
	return r.coll.Insert(n)
}

func (r *notificationRepository) MarkRead(id string) error {
	return r.coll.Update(
		func(n domain.AppNotification) bool { return n.ID == id },
		func(n *domain.AppNotification) error { n.Read = true; return nil },
	)
}

func (r *notificationRepository) OnChange(fn func([]domain.AppNotification)) {
	r.coll.OnChange(fn)
}
