package domain

import "time"

// AppNotification is an in-app reply notification. Records are not cleaned
// up when the announcement they reference is deleted.
type AppNotification struct {
	ID             string    `json:"id"`
	RecipientID    string    `json:"recipient_id"`
	SenderName     string    `json:"sender_name"`
	AnnouncementID string    `json:"announcement_id"`
	CommentID      string    `json:"comment_id,omitempty"`
	ReplyID        string    `json:"reply_id,omitempty"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}
