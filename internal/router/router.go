// Package router wires every page onto the chi router with the middleware
// chain applied in the right order: recovery first, then logging, security
// headers, and the session load that every page depends on.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pressroom/internal/handlers"
	"pressroom/internal/middleware"
	"pressroom/internal/session"
)

// Deps carries everything the routes need.
type Deps struct {
	Sessions  *session.Store
	Posts     *handlers.Posts
	Auth      *handlers.Auth
	Approvals *handlers.Approvals
}

// New builds the full route table.
func New(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CSRF)
	r.Use(middleware.LoadUser(d.Sessions))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Public pages.
	r.Get("/", d.Posts.List)
	r.Get("/posts/{id}", d.Posts.Detail)

	r.Get("/login", d.Auth.LoginPage)
	r.Post("/login", d.Auth.Login)
	r.Get("/register", d.Auth.RegisterPage)
	r.Post("/register", d.Auth.Register)
	r.Get("/register/success", d.Auth.RegisterSuccess)
	r.Post("/logout", d.Auth.Logout)

	// Authoring requires a session.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)

		r.Get("/posts/new", d.Posts.NewForm)
		r.Post("/posts", d.Posts.Create)
		r.Get("/posts/{id}/edit", d.Posts.EditForm)
		r.Post("/posts/{id}", d.Posts.Update)
		r.Post("/posts/{id}/delete", d.Posts.Delete)
	})

	// Admin pages.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Use(middleware.RequireAdmin)

		r.Get("/admin/approvals", d.Approvals.Queue)
		r.Post("/admin/approvals/{id}", d.Approvals.Review)
	})

	return r
}
