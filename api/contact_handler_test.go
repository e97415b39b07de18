package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestContactRelaySendsOneEmail(t *testing.T) {
	app, mailer := newTestApp(t)

	w := postForm(t, app, "/contact", url.Values{
		"name":    {"Bob"},
		"email":   {"bob@x.com"},
		"phone":   {"555-0100"},
		"message": {"Hi"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("contact status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Successfully sent") {
		t.Error("sent confirmation not rendered")
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("emails sent = %d, want exactly 1", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.Name != "Bob" || msg.Email != "bob@x.com" || msg.Phone != "555-0100" || msg.Message != "Hi" {
		t.Errorf("relayed message lost fields: %+v", msg)
	}
}

func TestContactEmptyFieldSendsNothing(t *testing.T) {
	app, mailer := newTestApp(t)

	w := postForm(t, app, "/contact", url.Values{
		"name":    {"Bob"},
		"email":   {"bob@x.com"},
		"phone":   {""},
		"message": {"Hi"},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("contact status = %d, want 422", w.Code)
	}
	if !strings.Contains(w.Body.String(), "phone is required") {
		t.Error("missing-phone error not rendered")
	}
	if len(mailer.sent) != 0 {
		t.Errorf("emails sent = %d, want 0", len(mailer.sent))
	}
}

func TestContactDeliveryFailureSurfaced(t *testing.T) {
	app, mailer := newTestApp(t)
	mailer.err = errors.New("smtp: connection refused")

	w := postForm(t, app, "/contact", url.Values{
		"name":    {"Bob"},
		"email":   {"bob@x.com"},
		"phone":   {"555-0100"},
		"message": {"Hi"},
	})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("contact status = %d, want 502", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "please try again later") {
		t.Error("delivery failure not rendered to the user")
	}
	// The submission survives in the re-rendered form.
	if !strings.Contains(body, "Bob") {
		t.Error("re-rendered form lost the submitted values")
	}
}

func TestAboutPage(t *testing.T) {
	app, _ := newTestApp(t)

	w := get(t, app, "/about")
	if w.Code != http.StatusOK {
		t.Fatalf("about status = %d, want 200", w.Code)
	}
}

func TestContactFormPage(t *testing.T) {
	app, _ := newTestApp(t)

	w := get(t, app, "/contact")
	if w.Code != http.StatusOK {
		t.Fatalf("contact form status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Contact Me") {
		t.Error("contact form not rendered")
	}
}
