// Package models defines the data structures exchanged with the blog API
// and provides the core types used throughout the application.
package models

import "time"

// Role represents a user's permission level in the system.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Status represents the admission state of a registered account.
// New accounts start pending and move to approved or rejected when an
// admin reviews them.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// User represents an account on the blog platform. Pending users exist but
// cannot authenticate; the API enforces that, we only display it.
type User struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	RealName         string    `json:"realName,omitempty"`
	Organization     string    `json:"organization,omitempty"`
	Position         string    `json:"position,omitempty"`
	Responsibilities string    `json:"responsibilities,omitempty"`
	ContactInfo      string    `json:"contactInfo,omitempty"`
	Role             Role      `json:"role"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RegisterInput carries the extended registration form to the API.
type RegisterInput struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	RealName         string `json:"realName"`
	Organization     string `json:"organization"`
	Position         string `json:"position"`
	Responsibilities string `json:"responsibilities"`
	ContactInfo      string `json:"contactInfo"`
}

// ReviewAction is an admin's decision on a pending registration.
type ReviewAction string

const (
	ReviewApprove ReviewAction = "approve"
	ReviewReject  ReviewAction = "reject"
)
