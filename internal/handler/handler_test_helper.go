package handler

import (
	"context"
	"database/sql"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"blogly/internal/model"
	"blogly/internal/render"
	"blogly/internal/store"
	"blogly/web"
)

// testDB creates an in-memory SQLite database with the required schema for testing.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// A second connection would see a separate empty in-memory database
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			image_url TEXT NOT NULL
		);
		CREATE INDEX idx_users_name ON users(last_name, first_name);

		CREATE TABLE posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			user_id INTEGER NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id)
		);
		CREATE INDEX idx_posts_user_id ON posts(user_id);
		CREATE INDEX idx_posts_created_at ON posts(created_at DESC);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// testSessionManager creates a session manager for testing.
func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

// testRenderer creates a renderer backed by the embedded templates.
func testRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("getting templates fs: %v", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sm,
	})
	if err != nil {
		t.Fatalf("initializing renderer: %v", err)
	}
	return renderer
}

// testApp wires the full routing surface against an in-memory database.
type testApp struct {
	db     *sql.DB
	router chi.Router
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testDB(t)
	sm := testSessionManager(t)
	renderer := testRenderer(t, sm)

	usersHandler := NewUsersHandler(db, renderer, sm)
	postsHandler := NewPostsHandler(db, renderer, sm)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)

	r.Get(RouteRoot, postsHandler.Home)

	r.Get(RouteUsers, usersHandler.List)
	r.Get(RouteUsers+RouteSuffixNew, usersHandler.NewForm)
	r.Post(RouteUsers+RouteSuffixNew, usersHandler.Create)
	r.Get(RouteUsersID, usersHandler.Show)
	r.Get(RouteUsersID+RouteSuffixEdit, usersHandler.EditForm)
	r.Post(RouteUsersID+RouteSuffixEdit, usersHandler.Update)
	r.Post(RouteUsersID+RouteSuffixDelete, usersHandler.Delete)

	r.Get(RouteUserPostsNew, postsHandler.NewForm)
	r.Post(RouteUserPostsNew, postsHandler.Create)
	r.Get(RoutePostsID, postsHandler.Show)
	r.Get(RoutePostsID+RouteSuffixEdit, postsHandler.EditForm)
	r.Post(RoutePostsID+RouteSuffixEdit, postsHandler.Update)
	r.Post(RoutePostsID+RouteSuffixDelete, postsHandler.Delete)

	r.NotFound(renderer.NotFound)

	return &testApp{db: db, router: r}
}

// get performs a GET request against the app router.
func (a *testApp) get(t *testing.T, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// postForm performs a POST request with form-encoded values.
func (a *testApp) postForm(t *testing.T, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// followRedirect asserts a See Other response and fetches the target with the
// response's session cookies, returning the rendered page.
func (a *testApp) followRedirect(t *testing.T, rec *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	location := rec.Header().Get("Location")
	if location == "" {
		t.Fatal("redirect response has no Location header")
	}
	return a.get(t, location, rec.Result().Cookies())
}

// createTestUser inserts a user directly into the test database.
func createTestUser(t *testing.T, db *sql.DB, first, last string) model.User {
	t.Helper()

	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		FirstName: first,
		LastName:  last,
		ImageURL:  model.DefaultImageURL,
	})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// createTestPost inserts a post directly into the test database.
func createTestPost(t *testing.T, db *sql.DB, userID int64, title string, at time.Time) model.Post {
	t.Helper()

	post, err := store.New(db).CreatePost(context.Background(), store.CreatePostParams{
		Title:     title,
		Content:   "Content of " + title,
		CreatedAt: at,
		UserID:    userID,
	})
	if err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
