package services

import (
	"errors"
	"testing"

	"github.com/jalencar/clean-blog/errs"
	"github.com/jalencar/clean-blog/models"
)

func TestRegisterThenAuthenticate(t *testing.T) {
	db := newTestDatabase(t)
	auth := NewAuthService(db.UserRepo())

	registered, err := auth.Register("Alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if registered.ID == 0 {
		t.Fatal("expected the store to assign an id")
	}
	if registered.PasswordHash == "password123" || registered.PasswordHash == "" {
		t.Fatal("password must be stored as a hash, never plaintext")
	}

	user, err := auth.Authenticate("alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("authenticated user id = %d, want %d", user.ID, registered.ID)
	}
	if user.Name != "Alice" {
		t.Errorf("authenticated user name = %q, want %q", user.Name, "Alice")
	}
}

func TestRegisterDuplicateEmailCreatesNothing(t *testing.T) {
	db := newTestDatabase(t)
	auth := NewAuthService(db.UserRepo())

	registerTestUser(t, auth, "Alice", "alice@example.com")

	_, err := auth.Register("Also Alice", "alice@example.com", "different-password")
	if !errs.IsConflict(err) {
		t.Fatalf("expected a conflict error, got %v", err)
	}

	count, err := db.UserRepo().Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("user count = %d, want 1 (rejected registration must not create a record)", count)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db := newTestDatabase(t)
	auth := NewAuthService(db.UserRepo())

	registerTestUser(t, auth, "Alice", "alice@example.com")

	_, err := auth.Authenticate("alice@example.com", "not-the-password")
	if !errors.Is(err, errs.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	db := newTestDatabase(t)
	auth := NewAuthService(db.UserRepo())

	_, err := auth.Authenticate("nobody@example.com", "whatever")
	if !errors.Is(err, errs.ErrUnknownEmail) {
		t.Fatalf("expected ErrUnknownEmail, got %v", err)
	}
}

func TestFirstRegisteredUserIsAdmin(t *testing.T) {
	db := newTestDatabase(t)
	auth := NewAuthService(db.UserRepo())

	alice := registerTestUser(t, auth, "Alice", "alice@example.com")
	bob := registerTestUser(t, auth, "Bob", "bob@example.com")

	if alice.Role != models.RoleAdmin {
		t.Errorf("first user role = %q, want %q", alice.Role, models.RoleAdmin)
	}
	if bob.Role != models.RoleMember {
		t.Errorf("second user role = %q, want %q", bob.Role, models.RoleMember)
	}
}

func TestAuthenticateNormalizesEmail(t *testing.T) {
	db := newTestDatabase(t)
	auth := NewAuthService(db.UserRepo())

	registerTestUser(t, auth, "Alice", "Alice@Example.com")

	if _, err := auth.Authenticate("alice@example.com", "password123"); err != nil {
		t.Fatalf("Authenticate with normalized email: %v", err)
	}
}
