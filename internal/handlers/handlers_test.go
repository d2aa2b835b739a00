package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"pressroom/internal/apiclient"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/render"
)

// fakeAPI spins up a stub blog API and returns a client pointed at it.
func fakeAPI(t *testing.T, handler http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL)
}

// downAPI returns a client pointed at a server that no longer exists, so
// every call fails at the transport level.
func downAPI(t *testing.T) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return apiclient.New(url)
}

func testRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	rn, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return rn
}

// withUser injects a session user the way LoadUser does in production.
func withUser(r *http.Request, u *models.User) *http.Request {
	if u == nil {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), middleware.UserKey, u))
}

// multipartForm builds a request body matching the post form's enctype.
func multipartForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func approvedUser(id int64, email string) *models.User {
	return &models.User{ID: id, Username: "u" + email, Email: email, Role: models.RoleUser, Status: models.StatusApproved}
}

func adminUser(id int64, email string) *models.User {
	u := approvedUser(id, email)
	u.Role = models.RoleAdmin
	return u
}
