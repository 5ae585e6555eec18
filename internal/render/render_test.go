// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"blogly/internal/model"
	"blogly/web"
)

func testRenderer(t *testing.T) (*Renderer, *scs.SessionManager) {
	t.Helper()

	sm := scs.New()
	sm.Lifetime = 24 * time.Hour

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("getting templates fs: %v", err)
	}

	renderer, err := New(Config{
		TemplatesFS:    templatesFS,
		SessionManager: sm,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return renderer, sm
}

// sessionRequest returns a request whose context carries a loaded session.
func sessionRequest(t *testing.T, sm *scs.SessionManager) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx, err := sm.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	return req.WithContext(ctx)
}

func TestNewParsesAllTemplates(t *testing.T) {
	renderer, _ := testRenderer(t)

	wantTemplates := []string{
		"posts/home", "posts/show", "posts/new", "posts/edit",
		"users/index", "users/show", "users/new", "users/edit",
		"errors/404",
	}
	for _, name := range wantTemplates {
		if _, ok := renderer.templates[name]; !ok {
			t.Errorf("template %q should be parsed", name)
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	renderer, sm := testRenderer(t)

	rec := httptest.NewRecorder()
	err := renderer.Render(rec, sessionRequest(t, sm), "nope/missing", TemplateData{})
	if err == nil {
		t.Fatal("Render should fail for an unknown template")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, should mention the missing template", err)
	}
}

func TestRenderStatusWritesPage(t *testing.T) {
	renderer, sm := testRenderer(t)

	rec := httptest.NewRecorder()
	err := renderer.RenderStatus(rec, sessionRequest(t, sm), "users/index", http.StatusOK, TemplateData{
		Title: "Users",
		Data:  struct{ Users []model.User }{},
	})
	if err != nil {
		t.Fatalf("RenderStatus: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<title>Users") {
		t.Error("body should contain the page title")
	}
}

func TestRenderPopsFlash(t *testing.T) {
	renderer, sm := testRenderer(t)

	req := sessionRequest(t, sm)
	renderer.SetFlash(req, "User Ada Lovelace added.", "success")

	rec := httptest.NewRecorder()
	err := renderer.Render(rec, req, "users/index", TemplateData{
		Title: "Users",
		Data:  struct{ Users []model.User }{},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "User Ada Lovelace added.") {
		t.Error("body should contain the flash message")
	}
	if !strings.Contains(body, "flash-success") {
		t.Error("flash should carry its type as a CSS class")
	}

	// A second render sees no flash; popping consumed it
	rec = httptest.NewRecorder()
	if err := renderer.Render(rec, req, "users/index", TemplateData{
		Title: "Users",
		Data:  struct{ Users []model.User }{},
	}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(rec.Body.String(), "User Ada Lovelace added.") {
		t.Error("flash message should be consumed after one render")
	}
}

func TestNotFound(t *testing.T) {
	renderer, sm := testRenderer(t)

	rec := httptest.NewRecorder()
	renderer.NotFound(rec, sessionRequest(t, sm))

	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "Page Not Found") {
		t.Error("body should render the dedicated not-found page")
	}
}

func TestTruncateFunc(t *testing.T) {
	renderer, _ := testRenderer(t)
	truncate := renderer.templateFuncs()["truncate"].(func(string, int) string)

	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is far too long", 7, "this is..."},
		{"", 5, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.length); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}
