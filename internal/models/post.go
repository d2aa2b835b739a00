package models

import "time"

// Post represents an article on the blog platform. Content is author-written
// Markdown; it must pass through the markdown pipeline before display.
// AuthorID is set once at creation and never changes on update.
type Post struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	ImageURL    string       `json:"image_url,omitempty"`
	AuthorID    int64        `json:"author_id"`
	Username    string       `json:"username"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment describes a file attached to a post. It has no lifecycle of
// its own beyond the parent post.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// PostInput carries the post form to the API for create and update calls.
// AuthorID is only honoured on create.
type PostInput struct {
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	AuthorID    int64        `json:"authorId,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}
