// Package authz holds the permission predicates that gate UI actions.
// Every predicate is a pure function over an identity and a resource, so
// the decision is recomputed on each render and never cached.
//
// These checks gate affordances only. The API re-validates every mutation
// independently, and handlers surface its rejections as errors rather than
// trusting a client-side yes.
package authz

import "pressroom/internal/models"

// IsAdmin reports whether the user is an authenticated admin.
// A nil user (anonymous session) is never an admin.
func IsAdmin(u *models.User) bool {
	return u != nil && u.Role == models.RoleAdmin
}

// CanEditPost reports whether the user may edit the post: admins may edit
// anything, other users only their own posts.
func CanEditPost(u *models.User, p *models.Post) bool {
	if IsAdmin(u) {
		return true
	}
	return u != nil && p != nil && u.ID == p.AuthorID
}

// CanDeletePost reports whether the user may delete the post. The rule is
// identical to CanEditPost.
func CanDeletePost(u *models.User, p *models.Post) bool {
	return CanEditPost(u, p)
}

// CanReviewUsers reports whether the user may access the registration
// approval queue.
func CanReviewUsers(u *models.User) bool {
	return IsAdmin(u)
}
