package authz

import (
	"testing"

	"pressroom/internal/models"
)

var (
	admin  = &models.User{ID: 1, Role: models.RoleAdmin}
	author = &models.User{ID: 5, Role: models.RoleUser}
	other  = &models.User{ID: 7, Role: models.RoleUser}
)

func TestCanEditPost(t *testing.T) {
	post := &models.Post{ID: 10, AuthorID: 5}

	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{"anonymous", nil, false},
		{"admin edits any post", admin, true},
		{"author edits own post", author, true},
		{"other user denied", other, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEditPost(tt.user, post); got != tt.want {
				t.Errorf("CanEditPost = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanEditPostAdminIgnoresAuthor(t *testing.T) {
	// Admin permission must not depend on who wrote the post.
	for _, authorID := range []int64{1, 2, 99} {
		post := &models.Post{AuthorID: authorID}
		if !CanEditPost(admin, post) {
			t.Errorf("admin denied edit on post by author %d", authorID)
		}
	}
}

func TestCanDeleteMatchesCanEdit(t *testing.T) {
	posts := []*models.Post{
		{AuthorID: 5},
		{AuthorID: 7},
		{AuthorID: 99},
	}
	users := []*models.User{nil, admin, author, other}

	for _, u := range users {
		for _, p := range posts {
			if CanDeletePost(u, p) != CanEditPost(u, p) {
				t.Errorf("CanDeletePost and CanEditPost disagree for user=%v post=%v", u, p)
			}
		}
	}
}

func TestCanReviewUsers(t *testing.T) {
	if CanReviewUsers(nil) {
		t.Error("anonymous user must not access the approval queue")
	}
	if CanReviewUsers(other) {
		t.Error("non-admin must not access the approval queue")
	}
	if !CanReviewUsers(admin) {
		t.Error("admin must access the approval queue")
	}
}

func TestIsAdmin(t *testing.T) {
	if IsAdmin(nil) {
		t.Error("nil user is not an admin")
	}
	if IsAdmin(author) {
		t.Error("role user is not an admin")
	}
	if !IsAdmin(admin) {
		t.Error("role admin should be admin")
	}
}
