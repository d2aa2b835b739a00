package handlers

import (
	"strings"
	"unicode/utf8"

	"pressroom/internal/models"
)

const (
	maxTitleLen    = 200
	maxContentLen  = 100000
	maxFieldLen    = 255
	minPasswordLen = 6
)

// validatePostForm checks the post form before it goes to the API. Returns
// an empty string when valid, otherwise the message to show the author.
// The API re-validates; this only saves a round trip for the obvious cases.
func validatePostForm(title, content string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title must be 200 characters or fewer."
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long."
	}
	return ""
}

// validateRegisterForm checks the extended registration form. Every field
// is required; the approval queue is only useful when applications carry
// enough context for an admin to judge them.
func validateRegisterForm(in models.RegisterInput) string {
	required := []struct {
		value, label string
	}{
		{in.Username, "Username"},
		{in.Email, "Email"},
		{in.Password, "Password"},
		{in.RealName, "Real name"},
		{in.Organization, "Organization"},
		{in.Position, "Position"},
		{in.Responsibilities, "Responsibilities"},
		{in.ContactInfo, "Contact information"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return f.label + " is required."
		}
		if utf8.RuneCountInString(f.value) > maxFieldLen && f.label != "Responsibilities" {
			return f.label + " is too long."
		}
	}
	if !strings.Contains(in.Email, "@") {
		return "Please enter a valid email address."
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		return "Password must be at least 6 characters."
	}
	return ""
}
