// Package handlers contains the HTTP handlers for every page of the site.
// Handlers are grouped into structs with their dependencies injected, and
// registered on the router per group.
package handlers

import (
	"errors"
	"net/http"

	"pressroom/internal/apiclient"
	"pressroom/internal/render"
)

// failPage renders the error page for an API failure. Each error kind gets
// its own status and wording: transport failures offer a retry link back to
// retryURL, missing resources get a 404, denials a 403. Validation errors
// normally re-render the originating form instead of landing here; when one
// does (a mutation with no form to return to) it renders as a 400.
func failPage(rn *render.Renderer, w http.ResponseWriter, r *http.Request, err error, retryURL string) {
	var (
		transport *apiclient.TransportError
		notFound  *apiclient.NotFoundError
		denied    *apiclient.AuthorizationError
		invalid   *apiclient.ValidationError
	)

	status := http.StatusInternalServerError
	message := "Something went wrong. Please try again later."
	retry := ""

	switch {
	case errors.As(err, &transport):
		status = http.StatusBadGateway
		message = "Could not reach the blog service. Please try again."
		retry = retryURL
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		message = "This " + notFound.Resource + " does not exist. It may have been deleted."
	case errors.As(err, &denied):
		status = http.StatusForbidden
		message = denied.Message
	case errors.As(err, &invalid):
		status = http.StatusBadRequest
		message = invalid.Message
	}

	rn.PageStatus(w, r, status, "error", &render.PageData{
		Title: "Error",
		Data: map[string]any{
			"Message":  message,
			"RetryURL": retry,
		},
	})
}

// forbiddenPage renders a permission denial decided client-side, before any
// API call was made.
func forbiddenPage(rn *render.Renderer, w http.ResponseWriter, r *http.Request, message string) {
	rn.PageStatus(w, r, http.StatusForbidden, "error", &render.PageData{
		Title: "Forbidden",
		Data: map[string]any{
			"Message": message,
		},
	})
}

// notFoundPage renders the missing-resource page for requests that never
// reached the API, like a non-numeric post id.
func notFoundPage(rn *render.Renderer, w http.ResponseWriter, r *http.Request, resource string) {
	rn.PageStatus(w, r, http.StatusNotFound, "error", &render.PageData{
		Title: "Not Found",
		Data: map[string]any{
			"Message": "This " + resource + " does not exist. It may have been deleted.",
		},
	})
}
