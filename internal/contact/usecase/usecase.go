package usecase

import (
	"sort"
	"time"

	"villagehub-backend/internal/contact/domain"
	"villagehub-backend/internal/contact/repository"
	"villagehub-backend/pkg/ident"
	"villagehub-backend/pkg/sse"
)

// Topic is the SSE topic contact messages are broadcast on.
const Topic = "contact"

// ContactUsecase defines contact-form business operations
type ContactUsecase interface {
	List() ([]domain.Message, error)
	Create(name, email, subject, body string) (*domain.Message, error)
}

type contactUsecase struct {
	repo   repository.ContactRepository
	broker *sse.Broker
}

func NewContactUsecase(repo repository.ContactRepository, broker *sse.Broker) ContactUsecase {
	u := &contactUsecase{repo: repo, broker: broker}
	repo.OnChange(func(items []domain.Message) {
		sortNewestFirst(items)
		broker.Publish(Topic, items)
	})
	return u
}

func sortNewestFirst(items []domain.Message) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func (u *contactUsecase) List() ([]domain.Message, error) {
	items, err := u.repo.GetAll()
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

func (u *contactUsecase) Create(name, email, subject, body string) (*domain.Message, error) {
	m := domain.Message{
		ID:        ident.New("msg"),
		Name:      name,
		Email:     email,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := u.repo.Create(m); err != nil {
		return nil, err
	}
	return &m, nil
}
