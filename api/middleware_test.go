package api

import (
	"net/http"
	"testing"
)

func TestAdminGateAnonymousRedirectsHome(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/posts", "/edit-post/1", "/delete-post/1"} {
		w := get(t, app, path)
		if w.Code != http.StatusSeeOther {
			t.Errorf("GET %s anonymous: status = %d, want 303", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/" {
			t.Errorf("GET %s anonymous: redirect to %q, want %q", path, loc, "/")
		}
	}
}

func TestAdminGateMemberForbidden(t *testing.T) {
	app, _ := newTestApp(t)

	registerUser(t, app, "Alice", "alice@example.com", "password123") // admin
	bob := registerUser(t, app, "Bob", "bob@example.com", "password123")

	w := get(t, app, "/posts", bob)
	if w.Code != http.StatusForbidden {
		t.Errorf("member on admin route: status = %d, want 403", w.Code)
	}
}

func TestAdminGateAdminProceeds(t *testing.T) {
	app, _ := newTestApp(t)

	alice := registerUser(t, app, "Alice", "alice@example.com", "password123")

	w := get(t, app, "/posts", alice)
	if w.Code != http.StatusOK {
		t.Errorf("admin on admin route: status = %d, want 200", w.Code)
	}
}

func TestTamperedSessionIsAnonymous(t *testing.T) {
	app, _ := newTestApp(t)

	registerUser(t, app, "Alice", "alice@example.com", "password123")

	forged := &http.Cookie{Name: sessionCookieName, Value: "not-a-signed-token"}
	w := get(t, app, "/posts", forged)
	if w.Code != http.StatusSeeOther {
		t.Errorf("forged session: status = %d, want 303 (treated as anonymous)", w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	app, _ := newTestApp(t)

	w := get(t, app, "/")
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("X-Request-Id header not set")
	}
}
