package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	devicedomain "villagehub-backend/internal/device/domain"
	devicerepo "villagehub-backend/internal/device/repository"
	"villagehub-backend/internal/notification/domain"
	"villagehub-backend/internal/notification/repository"
	"villagehub-backend/pkg/expopush"
	"villagehub-backend/pkg/fcm"
	"villagehub-backend/pkg/ident"
	"villagehub-backend/pkg/metrics"
	"villagehub-backend/pkg/sse"
	"villagehub-backend/pkg/storage"

	log "github.com/sirupsen/logrus"
)

// Topic is the SSE topic app notifications are broadcast on.
const Topic = "notifications"

var ErrNotFound = errors.New("notification not found")

// NotificationUsecase stores app notifications and dispatches push
// messages over both delivery paths (FCM and Expo).
type NotificationUsecase interface {
	List(recipientID string) ([]domain.AppNotification, error)
	Create(recipientID, senderName, announcementID, commentID, replyID string) (*domain.AppNotification, error)
	MarkRead(id string) error
	NotifyReply(recipientID, senderName, announcementID, commentID, replyID string)
	DispatchDirect(userID, token, title, body string) (int, error)
}

type notificationUsecase struct {
	repo       repository.NotificationRepository
	deviceRepo devicerepo.TokenRepository
	broker     *sse.Broker
	fcmClient  *fcm.Client
	expoClient *expopush.Client
	metrics    *metrics.Provider
}

func NewNotificationUsecase(repo repository.NotificationRepository, deviceRepo devicerepo.TokenRepository, broker *sse.Broker, fcmClient *fcm.Client, expoClient *expopush.Client, m *metrics.Provider) NotificationUsecase {
	u := &notificationUsecase{
		repo:       repo,
		deviceRepo: deviceRepo,
		broker:     broker,
		fcmClient:  fcmClient,
		expoClient: expoClient,
		metrics:    m,
	}
	repo.OnChange(func(items []domain.AppNotification) {
		sortNewestFirst(items)
		broker.Publish(Topic, items)
	})
	return u
}

func sortNewestFirst(items []domain.AppNotification) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func (u *notificationUsecase) List(recipientID string) ([]domain.AppNotification, error) {
	items, err := u.repo.GetAll()
	if err != nil {
		return nil, err
	}
	if recipientID != "" {
		filtered := items[:0]
		for _, n := range items {
			if n.RecipientID == recipientID {
				filtered = append(filtered, n)
			}
		}
		items = filtered
	}
	sortNewestFirst(items)
	return items, nil
}

func (u *notificationUsecase) Create(recipientID, senderName, announcementID, commentID, replyID string) (*domain.AppNotification, error) {
	n := domain.AppNotification{
		ID:             ident.New("ntf"),
		RecipientID:    recipientID,
		SenderName:     senderName,
		AnnouncementID: announcementID,
		CommentID:      commentID,
		ReplyID:        replyID,
		CreatedAt:      time.Now(),
	}
	if err := u.repo.Create(n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (u *notificationUsecase) MarkRead(id string) error {
	if err := u.repo.MarkRead(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// NotifyReply records a reply notification and pushes it to the comment
// author's devices in the background. Push failure never fails the reply.
func (u *notificationUsecase) NotifyReply(recipientID, senderName, announcementID, commentID, replyID string) {
	if _, err := u.Create(recipientID, senderName, announcementID, commentID, replyID); err != nil {
		log.Errorf("[Notify] store reply notification: %v", err)
	}

	go u.pushToUser(recipientID, senderName+" replied to your comment", "Open the announcement to read the reply", map[string]string{
		"type":            "reply",
		"announcement_id": announcementID,
		"comment_id":      commentID,
		"reply_id":        replyID,
	})
}

// DispatchDirect sends a push message either to every device of a user or
// to one explicit token. Returns the number of tokens targeted.
func (u *notificationUsecase) DispatchDirect(userID, token, title, body string) (int, error) {
	if token != "" {
		if u.fcmClient == nil {
			return 0, errors.New("push delivery not configured")
		}
		err := u.fcmClient.SendToDevice(context.Background(), token, fcm.NotificationData{Title: title, Body: body})
		if err != nil {
			return 0, err
		}
		if u.metrics != nil {
			u.metrics.IncPushSent(devicedomain.ProviderFCM)
		}
		return 1, nil
	}

	tokens, err := u.deviceRepo.GetTokensByUserID(userID)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, nil
	}

	go u.push(tokens, title, body, map[string]string{"type": "direct"})
	return len(tokens), nil
}

func (u *notificationUsecase) pushToUser(userID, title, body string, data map[string]string) {
	tokens, err := u.deviceRepo.GetTokensByUserID(userID)
	if err != nil {
		log.Errorf("[Notify] load tokens for user %s: %v", userID, err)
		return
	}
	if len(tokens) == 0 {
		log.Infof("[Notify] no tokens for user %s, skipping push", userID)
		return
	}
	u.push(tokens, title, body, data)
}

// push fans the message out to both providers and prunes tokens the
// providers rejected so dead registrations don't accumulate.
func (u *notificationUsecase) push(tokens []devicedomain.Token, title, body string, data map[string]string) {
	var fcmTokens, expoTokens []string
	for _, t := range tokens {
		switch t.Provider {
		case devicedomain.ProviderExpo:
			expoTokens = append(expoTokens, t.Token)
		default:
			fcmTokens = append(fcmTokens, t.Token)
		}
	}

	if u.fcmClient != nil && len(fcmTokens) > 0 {
		failed, err := u.fcmClient.SendToDevices(context.Background(), fcmTokens, fcm.NotificationData{
			Title: title,
			Body:  body,
			Data:  data,
		})
		if err != nil {
			log.Errorf("[Notify] FCM send: %v", err)
		} else if u.metrics != nil {
			u.metrics.IncPushSent(devicedomain.ProviderFCM)
		}
		for _, token := range failed {
			if err := u.deviceRepo.DeleteToken(token); err != nil {
				log.Warnf("[Notify] prune failed FCM token: %v", err)
			}
		}
	}

	if u.expoClient != nil && len(expoTokens) > 0 {
		invalid, err := u.expoClient.SendToDevices(expoTokens, title, body, data)
		if err != nil {
			log.Errorf("[Notify] Expo send: %v", err)
		} else if u.metrics != nil {
			u.metrics.IncPushSent(devicedomain.ProviderExpo)
		}
		for _, token := range invalid {
			if err := u.deviceRepo.DeleteToken(token); err != nil {
				log.Warnf("[Notify] prune invalid Expo token: %v", err)
			}
		}
	}
}
