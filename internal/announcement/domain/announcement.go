package domain

import "time"

// Announcement is a village notice posted from the admin panel. Content is
// never edited in place; the record only changes through likes, comments
// and replies.
type Announcement struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	MediaURL   string    `json:"media_url,omitempty"`  // data URI or hosted URL
	MediaType  string    `json:"media_type,omitempty"` // "image" or "video"
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Likes      []string  `json:"likes"`    // user ids, toggled
	Comments   []Comment `json:"comments"`
	CreatedAt  time.Time `json:"created_at"`
}

type Comment struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	Replies    []Reply   `json:"replies"`
	CreatedAt  time.Time `json:"created_at"`
}

type Reply struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
