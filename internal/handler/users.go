// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"blogly/internal/model"
	"blogly/internal/render"
	"blogly/internal/store"
)

// UsersHandler handles user management routes.
type UsersHandler struct {
	db             *sql.DB
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *UsersHandler {
	return &UsersHandler{
		db:             db,
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// UsersListData holds data for the users list template.
type UsersListData struct {
	Users []model.User
}

// List handles GET /users - displays all users ordered by last name, then
// first name.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list users", "error", err)
		return
	}

	h.renderPage(w, r, "users/index", "Users", http.StatusOK, UsersListData{Users: users})
}

// UserShowData holds data for the user detail template.
type UserShowData struct {
	User  model.User
	Posts []model.Post
}

// Show handles GET /users/{id} - displays one user and their posts.
func (h *UsersHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.NotFound(w, r)
		return
	}

	user, ok := h.requireUser(w, r, id)
	if !ok {
		return
	}

	posts, err := h.queries.ListPostsByUser(r.Context(), id)
	if err != nil {
		logAndInternalError(w, "failed to list user posts", "error", err, "user_id", id)
		return
	}

	h.renderPage(w, r, "users/show", user.FullName(), http.StatusOK, UserShowData{User: user, Posts: posts})
}

// UserFormData holds data for the user form templates.
type UserFormData struct {
	User       *model.User
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// NewForm handles GET /users/new - displays the new user form.
func (h *UsersHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	data := UserFormData{
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	}

	h.renderPage(w, r, "users/new", "New User", http.StatusOK, data)
}

// Create handles POST /users/new - creates a new user. A blank image URL is
// replaced by the default placeholder before the row is stored.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectUsersNew) {
		return
	}

	form, formErrors := parseUserForm(r)
	if len(formErrors) > 0 {
		data := UserFormData{
			Errors:     formErrors,
			FormValues: form.Values(),
		}
		h.renderPage(w, r, "users/new", "New User", http.StatusUnprocessableEntity, data)
		return
	}

	imageURL := form.ImageURL
	if imageURL == "" {
		imageURL = model.DefaultImageURL
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		ImageURL:  imageURL,
	})
	if err != nil {
		slog.Error("failed to create user", "error", err)
		flashError(w, r, h.renderer, redirectUsersNew, "Error creating user")
		return
	}

	slog.Info("user created", "user_id", user.ID)
	flashSuccess(w, r, h.renderer, redirectUsers, fmt.Sprintf("User %s added.", user.FullName()))
}

// EditForm handles GET /users/{id}/edit - displays the edit user form.
func (h *UsersHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.NotFound(w, r)
		return
	}

	user, ok := h.requireUser(w, r, id)
	if !ok {
		return
	}

	data := UserFormData{
		User: &user,
		FormValues: map[string]string{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"image_url":  user.ImageURL,
		},
		Errors: make(map[string]string),
		IsEdit: true,
	}

	h.renderPage(w, r, "users/edit", "Edit User", http.StatusOK, data)
}

// Update handles POST /users/{id}/edit - overwrites all three user fields.
// The image URL is stored verbatim, even when blank.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.NotFound(w, r)
		return
	}

	user, ok := h.requireUser(w, r, id)
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, fmt.Sprintf(redirectUserID, id)+RouteSuffixEdit) {
		return
	}

	form, formErrors := parseUserForm(r)
	if len(formErrors) > 0 {
		data := UserFormData{
			User:       &user,
			Errors:     formErrors,
			FormValues: form.Values(),
			IsEdit:     true,
		}
		h.renderPage(w, r, "users/edit", "Edit User", http.StatusUnprocessableEntity, data)
		return
	}

	updated, err := h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		ImageURL:  form.ImageURL,
		ID:        id,
	})
	if err != nil {
		slog.Error("failed to update user", "error", err, "user_id", id)
		flashError(w, r, h.renderer, redirectUsers, "Error updating user")
		return
	}

	slog.Info("user updated", "user_id", id)
	flashSuccess(w, r, h.renderer, redirectUsers, fmt.Sprintf("User %s edited.", updated.FullName()))
}

// Delete handles POST /users/{id}/delete - deletes a user and cascades to
// their posts.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.NotFound(w, r)
		return
	}

	user, ok := h.requireUser(w, r, id)
	if !ok {
		return
	}

	if err := store.DeleteUserCascade(r.Context(), h.db, id); err != nil {
		slog.Error("failed to delete user", "error", err, "user_id", id)
		flashError(w, r, h.renderer, redirectUsers, "Error deleting user")
		return
	}

	slog.Info("user deleted", "user_id", id)
	flashSuccess(w, r, h.renderer, redirectUsers, fmt.Sprintf("User %s deleted.", user.FullName()))
}

// requireUser fetches a user by ID, rendering the 404 page when absent.
func (h *UsersHandler) requireUser(w http.ResponseWriter, r *http.Request, id int64) (model.User, bool) {
	return requireEntityOr404(w, r, h.renderer, "user", id,
		func(id int64) (model.User, error) { return h.queries.GetUserByID(r.Context(), id) })
}

// renderPage renders a template with the common wrapper data.
func (h *UsersHandler) renderPage(w http.ResponseWriter, r *http.Request, name, title string, status int, data any) {
	if err := h.renderer.RenderStatus(w, r, name, status, render.TemplateData{
		Title: title,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render template", "error", err, "template", name)
	}
}
