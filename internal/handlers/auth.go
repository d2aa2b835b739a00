package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"pressroom/internal/apiclient"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/render"
	"pressroom/internal/session"
)

// Auth serves login, registration, and logout.
type Auth struct {
	API      *apiclient.Client
	Renderer *render.Renderer
	Sessions *session.Store
}

// LoginPage renders the sign-in form. A visitor who is already signed in
// goes straight to where a successful login would take them.
func (h *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if user := middleware.UserFromCtx(r.Context()); user != nil {
		http.Redirect(w, r, landingFor(user), http.StatusSeeOther)
		return
	}

	h.Renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
		Data:  map[string]any{"Email": ""},
	})
}

// Login authenticates against the API and opens a session. The API's
// rejection messages pass through as-is: a pending account reads
// differently from bad credentials, and users need to see which it was.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.API.Login(r.Context(), email, password)
	if err != nil {
		var denied *apiclient.AuthorizationError
		var invalid *apiclient.ValidationError

		switch {
		case errors.As(err, &denied):
			h.loginFailed(w, r, email, denied.Message)
		case errors.As(err, &invalid):
			h.loginFailed(w, r, email, invalid.Message)
		default:
			failPage(h.Renderer, w, r, err, "/login")
		}
		return
	}

	if _, err := h.Sessions.Create(r.Context(), w, user); err != nil {
		slog.Error("session create failed", "error", err, "user_id", user.ID)
		failPage(h.Renderer, w, r, err, "/login")
		return
	}

	http.Redirect(w, r, landingFor(user), http.StatusSeeOther)
}

// RegisterPage renders the empty application form.
func (h *Auth) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, r, models.RegisterInput{}, "")
}

// Register submits the application. On any failure the form re-renders
// with everything except the password retained.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	in := models.RegisterInput{
		Username:         r.FormValue("username"),
		Email:            r.FormValue("email"),
		Password:         r.FormValue("password"),
		RealName:         r.FormValue("real_name"),
		Organization:     r.FormValue("organization"),
		Position:         r.FormValue("position"),
		Responsibilities: r.FormValue("responsibilities"),
		ContactInfo:      r.FormValue("contact_info"),
	}

	if msg := validateRegisterForm(in); msg != "" {
		h.renderRegister(w, r, in, msg)
		return
	}

	if _, err := h.API.Register(r.Context(), in); err != nil {
		var invalid *apiclient.ValidationError
		if errors.As(err, &invalid) {
			h.renderRegister(w, r, in, invalid.Message)
			return
		}
		failPage(h.Renderer, w, r, err, "/register")
		return
	}

	http.Redirect(w, r, "/register/success", http.StatusSeeOther)
}

// RegisterSuccess renders the pending-approval interstitial.
func (h *Auth) RegisterSuccess(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Page(w, r, "register_success", &render.PageData{
		Title: "Application Received",
	})
}

// Logout destroys the session and returns to the sign-in page.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Auth) loginFailed(w http.ResponseWriter, r *http.Request, email, message string) {
	h.Renderer.PageStatus(w, r, http.StatusUnauthorized, "login", &render.PageData{
		Title: "Sign In",
		Data: map[string]any{
			"Email": email,
			"Error": message,
		},
	})
}

func (h *Auth) renderRegister(w http.ResponseWriter, r *http.Request, in models.RegisterInput, errMsg string) {
	// The password never goes back into the page.
	in.Password = ""

	status := http.StatusOK
	if errMsg != "" {
		status = http.StatusUnprocessableEntity
	}

	h.Renderer.PageStatus(w, r, status, "register", &render.PageData{
		Title: "Register",
		Data: map[string]any{
			"Form":  in,
			"Error": errMsg,
		},
	})
}

// landingFor picks the post-login destination by role: admins land on the
// approval queue, everyone else on the post list.
func landingFor(user *models.User) string {
	if user.IsAdmin() {
		return "/admin/approvals"
	}
	return "/"
}
