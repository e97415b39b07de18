package services

import (
	"strings"

	"github.com/jalencar/clean-blog/database"
	"github.com/jalencar/clean-blog/errs"
	"github.com/jalencar/clean-blog/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 7

type AuthService struct {
	logger zerolog.Logger
	users  *database.UserRepo
}

func NewAuthService(users *database.UserRepo) *AuthService {
	return &AuthService{
		logger: log.With().Str("serviceName", "authService").Logger(),
		users:  users,
	}
}

// Register creates a new account with a bcrypt-hashed password. The very
// first account becomes the admin; every later one is a member. A reused
// email is a conflict and creates nothing.
func (s *AuthService) Register(name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if existing != nil {
		return nil, errs.NewConflictErrorWithField("that email is already registered", "email")
	}

	count, err := s.users.Count()
	if err != nil {
		return nil, errs.NewDatabaseError("count", "users", err)
	}
	role := models.RoleMember
	if count == 0 {
		role = models.RoleAdmin
	}

	user := &models.User{
		Name:  strings.TrimSpace(name),
		Email: email,
		Role:  role,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, errs.NewInternalError("failed to hash password")
	}

	if err := s.users.Add(user); err != nil {
		return nil, errs.NewDatabaseError("create", "user", err)
	}

	s.logger.Info().Uint("userID", user.ID).Str("role", string(user.Role)).Msg("Registered user")
	return user, nil
}

// Authenticate verifies the credentials and returns the matching user.
// An unregistered email and a wrong password fail with distinct errors so
// the login form can say which one it was.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return nil, errs.NewUnknownEmailError()
	}

	if !user.CheckPassword(password) {
		return nil, errs.NewInvalidPasswordError()
	}

	return user, nil
}

// GetUser resolves a session's user id. A stale id (e.g. from a cookie
// minted before a database reset) returns (nil, nil).
func (s *AuthService) GetUser(id uint) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	return user, nil
}
