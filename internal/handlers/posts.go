package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pressroom/internal/apiclient"
	"pressroom/internal/authz"
	"pressroom/internal/cache"
	"pressroom/internal/markdown"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/render"
	"pressroom/internal/storage"
	"pressroom/internal/textutil"
)

const (
	// maxUploadBytes caps the in-memory portion of multipart parsing.
	maxUploadBytes = 32 << 20

	// excerptLen is the rune length of list-page excerpts.
	excerptLen = 150
)

// Posts serves the post list, detail, and authoring pages.
type Posts struct {
	API      *apiclient.Client
	Renderer *render.Renderer
	Cache    *cache.RenderCache
	Storage  *storage.Client // nil when uploads are not configured
}

// postCard is one entry on the list page: the post plus everything the
// template needs that depends on who is looking.
type postCard struct {
	Post      models.Post
	Excerpt   string
	CanEdit   bool
	CanDelete bool
}

// List renders the front page with all posts, newest first.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.API.ListPosts(r.Context())
	if err != nil {
		failPage(h.Renderer, w, r, err, "/")
		return
	}

	user := middleware.UserFromCtx(r.Context())
	cards := make([]postCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, postCard{
			Post:      p,
			Excerpt:   textutil.Truncate(textutil.StripMarkdown(p.Content), excerptLen),
			CanEdit:   authz.CanEditPost(user, &p),
			CanDelete: authz.CanDeletePost(user, &p),
		})
	}

	h.Renderer.Page(w, r, "posts_list", &render.PageData{
		Title:   "Latest Posts",
		Section: "posts",
		Data: map[string]any{
			"Posts": cards,
		},
	})
}

// Detail renders a single post with its content run through the markdown
// pipeline. Rendered HTML is cached keyed on the post's last change.
func (h *Posts) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		notFoundPage(h.Renderer, w, r, "post")
		return
	}

	post, err := h.API.GetPost(r.Context(), id)
	if err != nil {
		failPage(h.Renderer, w, r, err, r.URL.Path)
		return
	}

	key := cache.PostKey(post)
	contentHTML, ok := h.Cache.Get(r.Context(), key)
	if !ok {
		contentHTML = markdown.Render(post.Content)
		h.Cache.Set(r.Context(), key, contentHTML)
	}

	user := middleware.UserFromCtx(r.Context())
	h.Renderer.Page(w, r, "post_detail", &render.PageData{
		Title:   post.Title,
		Section: "posts",
		Data: map[string]any{
			"Post":        post,
			"ContentHTML": contentHTML,
			"CanEdit":     authz.CanEditPost(user, post),
			"CanDelete":   authz.CanDeletePost(user, post),
		},
	})
}

// NewForm renders the empty create form.
func (h *Posts) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formState{
		isNew:  true,
		action: "/posts",
	})
}

// Create handles the create form submission. The author is always the
// session user; nothing in the form can claim a different one.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	state := formState{
		isNew:  true,
		action: "/posts",
		input: models.PostInput{
			Title:    r.FormValue("title"),
			Content:  r.FormValue("content"),
			ImageURL: r.FormValue("image_url"),
		},
	}

	if msg := validatePostForm(state.input.Title, state.input.Content); msg != "" {
		state.errMsg = msg
		h.renderForm(w, r, state)
		return
	}

	if err := h.applyUploads(r, &state.input); err != nil {
		state.errMsg = "File upload failed. Please try again."
		h.renderForm(w, r, state)
		return
	}

	user := middleware.UserFromCtx(r.Context())
	state.input.AuthorID = user.ID

	post, err := h.API.CreatePost(r.Context(), state.input)
	if err != nil {
		h.formFailure(w, r, state, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/posts/%d", post.ID), http.StatusSeeOther)
}

// EditForm renders the edit form pre-filled from the current post. The
// permission check here is advisory; the API enforces it again on submit.
func (h *Posts) EditForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.fetchEditable(w, r)
	if !ok {
		return
	}

	h.renderForm(w, r, formState{
		action: fmt.Sprintf("/posts/%d", post.ID),
		input: models.PostInput{
			Title:       post.Title,
			Content:     post.Content,
			ImageURL:    post.ImageURL,
			Attachments: post.Attachments,
		},
	})
}

// Update handles the edit form submission. Attachments the author unchecked
// are dropped; new uploads are appended.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	post, ok := h.fetchEditable(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	state := formState{
		action: fmt.Sprintf("/posts/%d", post.ID),
		input: models.PostInput{
			Title:       r.FormValue("title"),
			Content:     r.FormValue("content"),
			ImageURL:    r.FormValue("image_url"),
			Attachments: keepAttachments(post.Attachments, r.Form["remove_attachment"]),
		},
	}

	if msg := validatePostForm(state.input.Title, state.input.Content); msg != "" {
		state.errMsg = msg
		h.renderForm(w, r, state)
		return
	}

	if err := h.applyUploads(r, &state.input); err != nil {
		state.errMsg = "File upload failed. Please try again."
		h.renderForm(w, r, state)
		return
	}

	updated, err := h.API.UpdatePost(r.Context(), post.ID, state.input)
	if err != nil {
		h.formFailure(w, r, state, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/posts/%d", updated.ID), http.StatusSeeOther)
}

// Delete removes a post and returns to the list. When an admin deletes
// someone else's post, their email goes along so the API can authorize it;
// an author deleting their own sends none.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		notFoundPage(h.Renderer, w, r, "post")
		return
	}

	post, err := h.API.GetPost(r.Context(), id)
	if err != nil {
		failPage(h.Renderer, w, r, err, "/")
		return
	}

	user := middleware.UserFromCtx(r.Context())
	if !authz.CanDeletePost(user, post) {
		forbiddenPage(h.Renderer, w, r, "You don't have permission to delete this post.")
		return
	}

	adminEmail := ""
	if user.IsAdmin() && user.ID != post.AuthorID {
		adminEmail = user.Email
	}

	if err := h.API.DeletePost(r.Context(), id, adminEmail); err != nil {
		failPage(h.Renderer, w, r, err, fmt.Sprintf("/posts/%d", id))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// formState carries the authoring form between render and re-render so
// failed submissions keep everything the author typed.
type formState struct {
	isNew  bool
	action string
	input  models.PostInput
	errMsg string
}

func (h *Posts) renderForm(w http.ResponseWriter, r *http.Request, state formState) {
	title := "Edit Post"
	if state.isNew {
		title = "Create Post"
	}

	h.Renderer.Page(w, r, "post_form", &render.PageData{
		Title:   title,
		Section: "posts",
		Data: map[string]any{
			"IsNew":          state.isNew,
			"Action":         state.action,
			"Form":           state.input,
			"Attachments":    state.input.Attachments,
			"Error":          state.errMsg,
			"UploadsEnabled": h.Storage != nil,
		},
	})
}

// formFailure re-renders the form for validation errors and falls back to
// the error page for everything else.
func (h *Posts) formFailure(w http.ResponseWriter, r *http.Request, state formState, err error) {
	var invalid *apiclient.ValidationError
	if errors.As(err, &invalid) {
		state.errMsg = invalid.Message
		h.renderForm(w, r, state)
		return
	}
	failPage(h.Renderer, w, r, err, state.action)
}

// fetchEditable loads the post and verifies the session user may edit it,
// rendering the appropriate page when either step fails.
func (h *Posts) fetchEditable(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := postID(r)
	if err != nil {
		notFoundPage(h.Renderer, w, r, "post")
		return nil, false
	}

	post, err := h.API.GetPost(r.Context(), id)
	if err != nil {
		failPage(h.Renderer, w, r, err, "/")
		return nil, false
	}

	user := middleware.UserFromCtx(r.Context())
	if !authz.CanEditPost(user, post) {
		forbiddenPage(h.Renderer, w, r, "You don't have permission to edit this post.")
		return nil, false
	}

	return post, true
}

// applyUploads stores any submitted files and records their URLs on the
// input. A no-op without configured storage.
func (h *Posts) applyUploads(r *http.Request, in *models.PostInput) error {
	if h.Storage == nil || r.MultipartForm == nil {
		return nil
	}

	if cover := firstFile(r.MultipartForm, "image_file"); cover != nil {
		url, err := h.uploadFile(r, cover)
		if err != nil {
			return err
		}
		in.ImageURL = url
	}

	for _, fh := range r.MultipartForm.File["attachment_files"] {
		if fh.Filename == "" || fh.Size == 0 {
			continue
		}
		url, err := h.uploadFile(r, fh)
		if err != nil {
			return err
		}
		in.Attachments = append(in.Attachments, models.Attachment{
			Name: fh.Filename,
			URL:  url,
			Size: fh.Size,
			Type: fh.Header.Get("Content-Type"),
		})
	}

	return nil
}

func (h *Posts) uploadFile(r *http.Request, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := "uploads/" + uuid.NewString() + filepath.Ext(fh.Filename)
	return h.Storage.Upload(r.Context(), key, fh.Header.Get("Content-Type"), f, fh.Size)
}

// keepAttachments drops the attachments whose list index appears in the
// submitted remove set.
func keepAttachments(existing []models.Attachment, removed []string) []models.Attachment {
	if len(removed) == 0 {
		return existing
	}

	drop := make(map[int]bool, len(removed))
	for _, v := range removed {
		if i, err := strconv.Atoi(v); err == nil {
			drop[i] = true
		}
	}

	kept := make([]models.Attachment, 0, len(existing))
	for i, a := range existing {
		if !drop[i] {
			kept = append(kept, a)
		}
	}
	return kept
}

// firstFile returns the first uploaded file for a field, or nil when the
// field was left empty.
func firstFile(form *multipart.Form, field string) *multipart.FileHeader {
	files := form.File[field]
	if len(files) == 0 || files[0].Filename == "" || files[0].Size == 0 {
		return nil
	}
	return files[0]
}

func postID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id")
	}
	return id, nil
}
