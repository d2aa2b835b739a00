package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"pressroom/internal/models"
)

// ListPosts fetches all posts, most recent first (the API's ordering).
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost fetches a single post by id, attachments included.
func (c *Client) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), nil, &post); err != nil {
		return nil, err
	}
	if err := validatePost(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a post. in.AuthorID must be the acting user's id; the
// API records it permanently.
func (c *Client) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/posts", in, &post); err != nil {
		return nil, err
	}
	if err := validatePost(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost updates a post's title, content, image, and attachments.
// The author never changes.
func (c *Client) UpdatePost(ctx context.Context, id int64, in models.PostInput) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id), in, &post); err != nil {
		return nil, err
	}
	if err := validatePost(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post. adminEmail identifies an admin acting on
// someone else's post; it must be empty when the author deletes their own.
func (c *Client) DeletePost(ctx context.Context, id int64, adminEmail string) error {
	body := map[string]string{"adminEmail": adminEmail}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), body, nil)
}

// validatePost rejects response bodies that decoded but are missing the
// fields every view depends on.
func validatePost(p *models.Post) error {
	if p.ID <= 0 {
		return &ValidationError{Message: "The server returned an unexpected response."}
	}
	return nil
}
