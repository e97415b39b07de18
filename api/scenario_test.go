package api

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

// TestFullBlogScenario walks the whole flow: first registration becomes
// the admin, publishes a post, readers see it, and a delete makes the
// detail page 404.
func TestFullBlogScenario(t *testing.T) {
	app, _ := newTestApp(t)

	registerUser(t, app, "alice", "alice@example.com", "password123")

	login := postForm(t, app, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"password123"},
	})
	if login.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, want 303", login.Code)
	}
	alice := sessionCookie(t, login)

	createPost(t, app, alice, "Hello World", "An introduction", "First!", "https://example.com/hello.jpg")

	detail := get(t, app, "/posts/1")
	if detail.Code != http.StatusOK {
		t.Fatalf("detail status = %d, want 200", detail.Code)
	}
	body := detail.Body.String()
	if !strings.Contains(body, "Hello World") {
		t.Error("detail page missing the post title")
	}
	if !strings.Contains(body, "alice") {
		t.Error("detail page missing the author name")
	}

	del := get(t, app, "/delete-post/1", alice)
	if del.Code != http.StatusSeeOther {
		t.Fatalf("delete status = %d, want 303", del.Code)
	}

	gone := get(t, app, "/posts/1")
	if gone.Code != http.StatusNotFound {
		t.Errorf("detail after delete: status = %d, want 404", gone.Code)
	}
}
