package handlers

import (
	"strings"
	"testing"

	"pressroom/internal/models"
)

func TestValidatePostForm(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		wantMsg string
	}{
		{"valid", "A title", "Some content", ""},
		{"blank title", "   ", "Some content", "Title is required."},
		{"blank content", "A title", "\n\t ", "Content is required."},
		{"overlong title", strings.Repeat("x", 201), "Some content", "Title must be 200 characters or fewer."},
		{"title at limit", strings.Repeat("x", 200), "Some content", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validatePostForm(tt.title, tt.content); got != tt.wantMsg {
				t.Errorf("validatePostForm = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestValidateRegisterForm(t *testing.T) {
	valid := models.RegisterInput{
		Username: "ada", Email: "ada@example.com", Password: "secret99",
		RealName: "Ada Lovelace", Organization: "Acme", Position: "Engineer",
		Responsibilities: "Compilers", ContactInfo: "+44 123",
	}

	if got := validateRegisterForm(valid); got != "" {
		t.Fatalf("valid form rejected: %q", got)
	}

	tests := []struct {
		name    string
		mutate  func(*models.RegisterInput)
		wantMsg string
	}{
		{"missing email", func(in *models.RegisterInput) { in.Email = "" }, "Email is required."},
		{"bad email", func(in *models.RegisterInput) { in.Email = "not-an-email" }, "Please enter a valid email address."},
		{"short password", func(in *models.RegisterInput) { in.Password = "abc" }, "Password must be at least 6 characters."},
		{"missing contact", func(in *models.RegisterInput) { in.ContactInfo = " " }, "Contact information is required."},
		{"missing responsibilities", func(in *models.RegisterInput) { in.Responsibilities = "" }, "Responsibilities is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			if got := validateRegisterForm(in); got != tt.wantMsg {
				t.Errorf("validateRegisterForm = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}
