package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pressroom/internal/apiclient"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/render"
)

// Approvals serves the admin queue of pending registrations. The router
// guards the whole group with RequireAdmin, so a session user is always
// present here and always an admin.
type Approvals struct {
	API      *apiclient.Client
	Renderer *render.Renderer
}

// Queue renders the pending registrations.
func (h *Approvals) Queue(w http.ResponseWriter, r *http.Request) {
	admin := middleware.UserFromCtx(r.Context())

	users, err := h.API.PendingUsers(r.Context(), admin.Email)
	if err != nil {
		failPage(h.Renderer, w, r, err, "/admin/approvals")
		return
	}

	h.Renderer.Page(w, r, "approvals", &render.PageData{
		Title:   "Pending Registrations",
		Section: "approvals",
		Data: map[string]any{
			"Users": users,
		},
	})
}

// Review applies an approve or reject decision, then returns to the queue
// so it reflects the new state.
func (h *Approvals) Review(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || userID <= 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var action models.ReviewAction
	switch r.FormValue("action") {
	case "approve":
		action = models.ReviewApprove
	case "reject":
		action = models.ReviewReject
	default:
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	admin := middleware.UserFromCtx(r.Context())
	if err := h.API.ReviewUser(r.Context(), userID, action, admin.Email); err != nil {
		failPage(h.Renderer, w, r, err, "/admin/approvals")
		return
	}

	http.Redirect(w, r, "/admin/approvals", http.StatusSeeOther)
}
