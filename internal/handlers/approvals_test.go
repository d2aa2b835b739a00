package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"pressroom/internal/models"
)

func approvalsRouter(h *Approvals) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/admin/approvals", h.Queue)
	r.Post("/admin/approvals/{id}", h.Review)
	return r
}

func TestQueueSendsAdminEmail(t *testing.T) {
	var gotQuery url.Values
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode([]models.User{
			{ID: 5, Username: "newcomer", Email: "new@example.com", RealName: "New Person",
				Organization: "Acme", Position: "Analyst", Status: models.StatusPending,
				Role: models.RoleUser, CreatedAt: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)},
		})
	})

	h := &Approvals{API: api, Renderer: testRenderer(t)}
	req := withUser(httptest.NewRequest(http.MethodGet, "/admin/approvals", nil), adminUser(9, "root@example.com"))
	w := httptest.NewRecorder()
	approvalsRouter(h).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := gotQuery.Get("adminEmail"); got != "root@example.com" {
		t.Errorf("adminEmail query = %q, want root@example.com", got)
	}
	body := w.Body.String()
	for _, want := range []string{"newcomer", "New Person", "Acme", "Analyst"} {
		if !strings.Contains(body, want) {
			t.Errorf("queue missing applicant detail %q", want)
		}
	}
}

func TestQueueEmpty(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	h := &Approvals{API: api, Renderer: testRenderer(t)}
	req := withUser(httptest.NewRequest(http.MethodGet, "/admin/approvals", nil), adminUser(9, "root@example.com"))
	w := httptest.NewRecorder()
	approvalsRouter(h).ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "No registrations waiting") {
		t.Error("empty-queue message missing")
	}
}

func TestReviewDecisions(t *testing.T) {
	tests := []struct {
		action string
		want   models.ReviewAction
	}{
		{"approve", models.ReviewApprove},
		{"reject", models.ReviewReject},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			var got struct {
				UserID     int64  `json:"userId"`
				Action     string `json:"action"`
				AdminEmail string `json:"adminEmail"`
			}
			api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewDecoder(r.Body).Decode(&got)
				w.Write([]byte(`{}`))
			})

			h := &Approvals{API: api, Renderer: testRenderer(t)}
			form := url.Values{"action": {tt.action}}
			req := httptest.NewRequest(http.MethodPost, "/admin/approvals/5", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req = withUser(req, adminUser(9, "root@example.com"))

			w := httptest.NewRecorder()
			approvalsRouter(h).ServeHTTP(w, req)

			if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/admin/approvals" {
				t.Fatalf("redirect = %d %s, want 303 /admin/approvals", w.Code, w.Header().Get("Location"))
			}
			if got.UserID != 5 || got.Action != string(tt.want) || got.AdminEmail != "root@example.com" {
				t.Errorf("review payload = %+v", got)
			}
		})
	}
}

func TestReviewRejectsUnknownAction(t *testing.T) {
	called := false
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	h := &Approvals{API: api, Renderer: testRenderer(t)}
	form := url.Values{"action": {"defer"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/approvals/5", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = withUser(req, adminUser(9, "root@example.com"))

	w := httptest.NewRecorder()
	approvalsRouter(h).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if called {
		t.Error("API called for an unknown action")
	}
}
