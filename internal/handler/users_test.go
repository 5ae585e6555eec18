// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"blogly/internal/model"
	"blogly/internal/store"
)

func TestNewUsersHandler(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)

	h := NewUsersHandler(db, testRenderer(t, sm), sm)
	if h == nil {
		t.Fatal("NewUsersHandler returned nil")
	}
	if h.queries == nil {
		t.Error("queries should not be nil")
	}
}

func TestUsersList(t *testing.T) {
	app := newTestApp(t)

	createTestUser(t, app.db, "Grace", "Hopper")
	createTestUser(t, app.db, "Ada", "Lovelace")

	rec := app.get(t, "/users", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Grace Hopper") {
		t.Error("body should contain Grace Hopper")
	}
	if !strings.Contains(body, "Ada Lovelace") {
		t.Error("body should contain Ada Lovelace")
	}
	// Ordered by last name: Hopper before Lovelace
	if strings.Index(body, "Grace Hopper") > strings.Index(body, "Ada Lovelace") {
		t.Error("users should be ordered by last name")
	}
}

func TestUserShow(t *testing.T) {
	app := newTestApp(t)

	user := createTestUser(t, app.db, "Ada", "Lovelace")
	createTestPost(t, app.db, user.ID, "On Analytical Engines", time.Now())

	rec := app.get(t, "/users/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Ada Lovelace") {
		t.Error("body should contain the user's full name")
	}
	if !strings.Contains(body, "On Analytical Engines") {
		t.Error("body should list the user's posts")
	}
}

func TestUserShowNotFound(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing id", "/users/999999"},
		{"non-numeric id", "/users/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.get(t, tt.path, nil)
			if rec.Code != http.StatusNotFound {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
			}
			if !strings.Contains(rec.Body.String(), "Page Not Found") {
				t.Error("body should render the dedicated not-found page")
			}
		})
	}
}

func TestUserCreate(t *testing.T) {
	app := newTestApp(t)

	rec := app.postForm(t, "/users/new", url.Values{
		"first_name": {"Ada"},
		"last_name":  {"Lovelace"},
		"image_url":  {""},
	}, nil)

	if loc := rec.Header().Get("Location"); loc != "/users" {
		t.Errorf("Location = %q, want %q", loc, "/users")
	}

	page := app.followRedirect(t, rec)
	body := page.Body.String()
	if !strings.Contains(body, "User Ada Lovelace added.") {
		t.Error("listing should show the added flash message")
	}
	if !strings.Contains(body, "Ada Lovelace") {
		t.Error("listing should contain the new user")
	}

	// Blank image URL takes the default placeholder
	user, err := store.New(app.db).GetUserByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if user.ImageURL != model.DefaultImageURL {
		t.Errorf("ImageURL = %q, want the default placeholder", user.ImageURL)
	}
}

func TestUserCreateValidation(t *testing.T) {
	app := newTestApp(t)

	rec := app.postForm(t, "/users/new", url.Values{
		"first_name": {"Ada"},
		"last_name":  {""},
	}, nil)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Last name is required") {
		t.Error("body should contain the validation message")
	}
	if !strings.Contains(body, `value="Ada"`) {
		t.Error("form should preserve the submitted first name")
	}

	// Nothing was stored
	users, err := store.New(app.db).ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("got %d users, want 0", len(users))
	}
}

func TestUserEditFormPrefill(t *testing.T) {
	app := newTestApp(t)

	user := createTestUser(t, app.db, "Ada", "Lovelace")

	rec := app.get(t, "/users/1/edit", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `value="Ada"`) || !strings.Contains(body, `value="Lovelace"`) {
		t.Error("edit form should be prefilled with the current values")
	}
	if !strings.Contains(body, user.ImageURL) {
		t.Error("edit form should be prefilled with the image URL")
	}
}

func TestUserUpdate(t *testing.T) {
	app := newTestApp(t)

	createTestUser(t, app.db, "Ada", "Lovelace")

	rec := app.postForm(t, "/users/1/edit", url.Values{
		"first_name": {"Augusta"},
		"last_name":  {"King"},
		"image_url":  {""},
	}, nil)

	page := app.followRedirect(t, rec)
	if !strings.Contains(page.Body.String(), "User Augusta King edited.") {
		t.Error("listing should show the edited flash message")
	}

	// All three fields are overwritten; a blank image URL is stored verbatim
	user, err := store.New(app.db).GetUserByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if user.FirstName != "Augusta" || user.LastName != "King" {
		t.Errorf("user = %s, want Augusta King", user.FullName())
	}
	if user.ImageURL != "" {
		t.Errorf("ImageURL = %q, want empty", user.ImageURL)
	}
}

func TestUserUpdateMissing(t *testing.T) {
	app := newTestApp(t)

	rec := app.postForm(t, "/users/999999/edit", url.Values{
		"first_name": {"Nobody"},
		"last_name":  {"Here"},
	}, nil)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestUserDeleteCascade(t *testing.T) {
	app := newTestApp(t)

	victim := createTestUser(t, app.db, "Ada", "Lovelace")
	keeper := createTestUser(t, app.db, "Grace", "Hopper")
	createTestPost(t, app.db, victim.ID, "Victim post", time.Now())
	kept := createTestPost(t, app.db, keeper.ID, "Keeper post", time.Now())

	rec := app.postForm(t, "/users/1/delete", nil, nil)

	page := app.followRedirect(t, rec)
	if !strings.Contains(page.Body.String(), "User Ada Lovelace deleted.") {
		t.Error("listing should show the deleted flash message")
	}

	queries := store.New(app.db)
	ctx := context.Background()

	if _, err := queries.GetUserByID(ctx, victim.ID); err != sql.ErrNoRows {
		t.Errorf("GetUserByID error = %v, want sql.ErrNoRows", err)
	}
	orphans, err := queries.ListPostsByUser(ctx, victim.ID)
	if err != nil {
		t.Fatalf("ListPostsByUser: %v", err)
	}
	if len(orphans) != 0 {
		t.Errorf("got %d orphan posts, want 0", len(orphans))
	}

	// The other user's post survives
	if _, err := queries.GetPostByID(ctx, kept.ID); err != nil {
		t.Errorf("keeper's post should survive, got error %v", err)
	}
}

func TestUserDeleteMissing(t *testing.T) {
	app := newTestApp(t)

	rec := app.postForm(t, "/users/999999/delete", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
