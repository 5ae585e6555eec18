// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"blogly/internal/model"
	"blogly/internal/render"
	"blogly/internal/store"
)

// PostsHandler handles the homepage and post management routes.
type PostsHandler struct {
	db             *sql.DB
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *PostsHandler {
	return &PostsHandler{
		db:             db,
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// HomeData holds data for the homepage template.
type HomeData struct {
	Posts []store.ListRecentPostsRow
}

// Home handles GET / - displays the most recent posts, newest first.
func (h *PostsHandler) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListRecentPosts(r.Context(), HomepagePostCount)
	if err != nil {
		logAndInternalError(w, "failed to list recent posts", "error", err)
		return
	}

	h.renderPage(w, r, "posts/home", "Blogly Recent Posts", http.StatusOK, HomeData{Posts: posts})
}

// PostShowData holds data for the post detail template.
type PostShowData struct {
	Post   model.Post
	Author model.User
}

// Show handles GET /posts/{id} - displays one post.
func (h *PostsHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.NotFound(w, r)
		return
	}

	post, ok := h.requirePost(w, r, id)
	if !ok {
		return
	}

	author, err := h.queries.GetUserByID(r.Context(), post.UserID)
	if err != nil {
		logAndInternalError(w, "failed to get post author", "error", err, "post_id", id)
		return
	}

	h.renderPage(w, r, "posts/show", post.Title, http.StatusOK, PostShowData{Post: post, Author: author})
}

// PostFormData holds data for the post form templates.
type PostFormData struct {
	User       *model.User
	Post       *model.Post
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// NewForm handles GET /users/{id}/posts/new - displays the new post form for
// that user.
func (h *PostsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	userID, err := ParseIDParam(r)
	if err != nil {
		h.renderer.NotFound(w, r)
		return
	}

	user, ok := h.requireUser(w, r, userID)
	if !ok {
		return
	}

	data := PostFormData{
		User:       &user,
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	}

	h.renderPage(w, r, "posts/new", "New Post", http.StatusOK, data)
}

// Create handles POST /users/{id}/posts/new - creates a post owned by that
// user. The creation timestamp is set exactly once, here.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := ParseIDParam(r)
	if err != nil {
		h.renderer.NotFound(w, r)
		return
	}

	user, ok := h.requireUser(w, r, userID)
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, fmt.Sprintf(redirectUserID, userID)) {
		return
	}

	form, formErrors := parsePostForm(r)
	if len(formErrors) > 0 {
		data := PostFormData{
			User:       &user,
			Errors:     formErrors,
			FormValues: form.Values(),
		}
		h.renderPage(w, r, "posts/new", "New Post", http.StatusUnprocessableEntity, data)
		return
	}

	post, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
		Title:     form.Title,
		Content:   form.Content,
		CreatedAt: time.Now(),
		UserID:    user.ID,
	})
	if err != nil {
		slog.Error("failed to create post", "error", err, "user_id", userID)
		flashError(w, r, h.renderer, fmt.Sprintf(redirectUserID, userID), "Error creating post")
		return
	}

	slog.Info("post created", "post_id", post.ID, "user_id", userID)
	flashSuccess(w, r, h.renderer, fmt.Sprintf(redirectUserID, userID),
		fmt.Sprintf("Post '%s' added.", post.Title))
}

// EditForm handles GET /posts/{id}/edit - displays the edit post form.
func (h *PostsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.NotFound(w, r)
		return
	}

	post, ok := h.requirePost(w, r, id)
	if !ok {
		return
	}

	data := PostFormData{
		Post: &post,
		FormValues: map[string]string{
			"title":   post.Title,
			"content": post.Content,
		},
		Errors: make(map[string]string),
		IsEdit: true,
	}

	h.renderPage(w, r, "posts/edit", "Edit Post", http.StatusOK, data)
}

// Update handles POST /posts/{id}/edit - overwrites the post's title and
// content. The creation timestamp and owner are never touched.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.NotFound(w, r)
		return
	}

	post, ok := h.requirePost(w, r, id)
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, fmt.Sprintf(redirectUserID, post.UserID)) {
		return
	}

	form, formErrors := parsePostForm(r)
	if len(formErrors) > 0 {
		data := PostFormData{
			Post:       &post,
			Errors:     formErrors,
			FormValues: form.Values(),
			IsEdit:     true,
		}
		h.renderPage(w, r, "posts/edit", "Edit Post", http.StatusUnprocessableEntity, data)
		return
	}

	updated, err := h.queries.UpdatePost(r.Context(), store.UpdatePostParams{
		Title:   form.Title,
		Content: form.Content,
		ID:      id,
	})
	if err != nil {
		slog.Error("failed to update post", "error", err, "post_id", id)
		flashError(w, r, h.renderer, fmt.Sprintf(redirectUserID, post.UserID), "Error updating post")
		return
	}

	slog.Info("post updated", "post_id", id)
	flashSuccess(w, r, h.renderer, fmt.Sprintf(redirectUserID, post.UserID),
		fmt.Sprintf("Post '%s' edited.", updated.Title))
}

// Delete handles POST /posts/{id}/delete - deletes a post.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.NotFound(w, r)
		return
	}

	post, ok := h.requirePost(w, r, id)
	if !ok {
		return
	}

	if err := h.queries.DeletePost(r.Context(), id); err != nil {
		slog.Error("failed to delete post", "error", err, "post_id", id)
		flashError(w, r, h.renderer, fmt.Sprintf(redirectUserID, post.UserID), "Error deleting post")
		return
	}

	slog.Info("post deleted", "post_id", id, "user_id", post.UserID)
	flashSuccess(w, r, h.renderer, fmt.Sprintf(redirectUserID, post.UserID),
		fmt.Sprintf("Post '%s' deleted.", post.Title))
}

// requirePost fetches a post by ID, rendering the 404 page when absent.
func (h *PostsHandler) requirePost(w http.ResponseWriter, r *http.Request, id int64) (model.Post, bool) {
	return requireEntityOr404(w, r, h.renderer, "post", id,
		func(id int64) (model.Post, error) { return h.queries.GetPostByID(r.Context(), id) })
}

// requireUser fetches a user by ID, rendering the 404 page when absent.
func (h *PostsHandler) requireUser(w http.ResponseWriter, r *http.Request, id int64) (model.User, bool) {
	return requireEntityOr404(w, r, h.renderer, "user", id,
		func(id int64) (model.User, error) { return h.queries.GetUserByID(r.Context(), id) })
}

// renderPage renders a template with the common wrapper data.
func (h *PostsHandler) renderPage(w http.ResponseWriter, r *http.Request, name, title string, status int, data any) {
	if err := h.renderer.RenderStatus(w, r, name, status, render.TemplateData{
		Title: title,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render template", "error", err, "template", name)
	}
}
