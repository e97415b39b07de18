package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionCookieName = "session"

// sessionManager mints and verifies the signed session cookie. The cookie
// payload is an HS256 JWT carrying only the user id; there is no
// server-side session store to invalidate.
type sessionManager struct {
	secret []byte
	ttl    time.Duration
}

type sessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

func newSessionManager(secret string, ttl time.Duration) sessionManager {
	return sessionManager{secret: []byte(secret), ttl: ttl}
}

func (s sessionManager) issue(userID uint) (string, error) {
	claims := &sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s sessionManager) verify(tokenString string) (uint, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("invalid session token")
	}

	return claims.UserID, nil
}

// establish signs the user in: mints a token and sets the session cookie.
func (s sessionManager) establish(w http.ResponseWriter, userID uint) error {
	token, err := s.issue(userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// clear drops the session cookie unconditionally.
func (s sessionManager) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// tokenFrom extracts the raw session token from the request, or "".
func (s sessionManager) tokenFrom(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
