package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/jalencar/clean-blog/database"
	"github.com/jalencar/clean-blog/models"
	"github.com/jalencar/clean-blog/services"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeMailer struct {
	sent []services.ContactMessage
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg services.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestApp(t *testing.T) (http.Handler, *fakeMailer) {
	t.Helper()

	// A sqlite file per test rather than :memory:, which would give each
	// pooled connection its own empty database.
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.BlogPost{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	mailer := &fakeMailer{}
	router, err := newRouter(database.New(db), mailer, withConfig(map[string]string{
		"SESSION_SECRET": "test-secret",
	}))
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}

	return router, mailer
}

func get(t *testing.T, app http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)
	return w
}

func postForm(t *testing.T, app http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)
	return w
}

// sessionCookie pulls the session cookie out of a response, failing the
// test when none was set.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// registerUser drives the register form and returns the session cookie of
// the newly created account.
func registerUser(t *testing.T, app http.Handler, name, email, password string) *http.Cookie {
	t.Helper()

	w := postForm(t, app, "/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("register %s: status = %d, want %d (body: %s)", email, w.Code, http.StatusSeeOther, w.Body.String())
	}
	return sessionCookie(t, w)
}

// createPost drives the admin post form and returns nothing; the caller
// inspects the listing or detail pages.
func createPost(t *testing.T, app http.Handler, admin *http.Cookie, title, subtitle, body, imgURL string) {
	t.Helper()

	w := postForm(t, app, "/posts", url.Values{
		"title":    {title},
		"subtitle": {subtitle},
		"body":     {body},
		"img_url":  {imgURL},
	}, admin)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("create post %q: status = %d, want %d (body: %s)", title, w.Code, http.StatusSeeOther, w.Body.String())
	}
}
