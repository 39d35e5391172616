package usecase

import (
	"errors"
	"sort"
	"time"

	"villagehub-backend/internal/announcement/domain"
	"villagehub-backend/internal/announcement/repository"
	"villagehub-backend/pkg/ident"
	"villagehub-backend/pkg/sse"
	"villagehub-backend/pkg/storage"
)

// Topic is the SSE topic announcements are broadcast on.
const Topic = "announcements"

var (
	ErrNotFound        = errors.New("announcement not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrReplyNotFound   = errors.New("reply not found")
)

// ReplyNotifier is invoked after a reply is stored so the notification
// module can record it and push to the comment author's devices.
type ReplyNotifier interface {
	NotifyReply(recipientID, senderName, announcementID, commentID, replyID string)
}

// AnnouncementUsecase defines announcement business operations
type AnnouncementUsecase interface {
	List() ([]domain.Announcement, error)
	Create(title, content, mediaURL, mediaType, authorID, authorName string) (*domain.Announcement, error)
	Delete(id string) error
	ToggleLike(id, userID string) (*domain.Announcement, error)
	AddComment(id, authorID, authorName, text string) (*domain.Announcement, error)
	AddReply(id, commentID, authorID, authorName, text string) (*domain.Announcement, error)
	DeleteReply(id, commentID, replyID string) error
	SetReplyNotifier(n ReplyNotifier)
}

type announcementUsecase struct {
	repo     repository.AnnouncementRepository
	broker   *sse.Broker
	notifier ReplyNotifier
}

func NewAnnouncementUsecase(repo repository.AnnouncementRepository, broker *sse.Broker) AnnouncementUsecase {
	u := &announcementUsecase{repo: repo, broker: broker}
	repo.OnChange(func(items []domain.Announcement) {
		sortNewestFirst(items)
		broker.Publish(Topic, items)
	})
	return u
}

func (u *announcementUsecase) SetReplyNotifier(n ReplyNotifier) {
	u.notifier = n
}

func sortNewestFirst(items []domain.Announcement) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func (u *announcementUsecase) List() ([]domain.Announcement, error) {
	items, err := u.repo.GetAll()
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

func (u *announcementUsecase) Create(title, content, mediaURL, mediaType, authorID, authorName string) (*domain.Announcement, error) {
	a := domain.Announcement{
		ID:         ident.New("ann"),
		Title:      title,
		Content:    content,
		MediaURL:   mediaURL,
		MediaType:  mediaType,
		AuthorID:   authorID,
		AuthorName: authorName,
		Likes:      []string{},
		Comments:   []domain.Comment{},
		CreatedAt:  time.Now(),
	}
	if err := u.repo.Create(a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (u *announcementUsecase) Delete(id string) error {
	// No cascade: notification records referencing this announcement are
	// left in place.
	if err := u.repo.Delete(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (u *announcementUsecase) ToggleLike(id, userID string) (*domain.Announcement, error) {
	return u.mutate(id, func(a *domain.Announcement) error {
		for i, like := range a.Likes {
			if like == userID {
				a.Likes = append(a.Likes[:i], a.Likes[i+1:]...)
				return nil
			}
		}
		a.Likes = append(a.Likes, userID)
		return nil
	})
}

func (u *announcementUsecase) AddComment(id, authorID, authorName, text string) (*domain.Announcement, error) {
	comment := domain.Comment{
		ID:         ident.New("cmt"),
		AuthorID:   authorID,
		AuthorName: authorName,
		Text:       text,
		Replies:    []domain.Reply{},
		CreatedAt:  time.Now(),
	}
	return u.mutate(id, func(a *domain.Announcement) error {
		a.Comments = append(a.Comments, comment)
		return nil
	})
}

func (u *announcementUsecase) AddReply(id, commentID, authorID, authorName, text string) (*domain.Announcement, error) {
	reply := domain.Reply{
		ID:         ident.New("rpl"),
		AuthorID:   authorID,
		AuthorName: authorName,
		Text:       text,
		CreatedAt:  time.Now(),
	}

	// Unknown comment ids abort inside the mutation so nothing is written
	// or broadcast for the failed request.
	var recipientID string
	updated, err := u.mutate(id, func(a *domain.Announcement) error {
		for i := range a.Comments {
			if a.Comments[i].ID == commentID {
				a.Comments[i].Replies = append(a.Comments[i].Replies, reply)
				recipientID = a.Comments[i].AuthorID
				return nil
			}
		}
		return ErrCommentNotFound
	})
	if err != nil {
		return nil, err
	}

	// Best-effort reply notification; replying to your own comment stays
	// silent.
	if u.notifier != nil && recipientID != "" && recipientID != authorID {
		u.notifier.NotifyReply(recipientID, authorName, id, commentID, reply.ID)
	}

	return updated, nil
}

func (u *announcementUsecase) DeleteReply(id, commentID, replyID string) error {
	_, err := u.mutate(id, func(a *domain.Announcement) error {
		for i := range a.Comments {
			if a.Comments[i].ID != commentID {
				continue
			}
			replies := a.Comments[i].Replies
			for j := range replies {
				if replies[j].ID == replyID {
					a.Comments[i].Replies = append(replies[:j], replies[j+1:]...)
					return nil
				}
			}
		}
		return ErrReplyNotFound
	})
	return err
}

func (u *announcementUsecase) mutate(id string, fn func(*domain.Announcement) error) (*domain.Announcement, error) {
	var result domain.Announcement
	err := u.repo.Mutate(id, func(a *domain.Announcement) error {
		if err := fn(a); err != nil {
			return err
		}
		result = *a
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}
