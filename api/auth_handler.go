package api

import (
	"errors"
	"net/http"

	"github.com/jalencar/clean-blog/errs"
	"github.com/jalencar/clean-blog/services"
	"github.com/jalencar/clean-blog/validator"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	logger   zerolog.Logger
	renderer *renderer
	auth     *services.AuthService
	sessions sessionManager
}

func newAuthHandler(renderer *renderer, auth *services.AuthService, sessions sessionManager) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		logger:   logger,
		renderer: renderer,
		auth:     auth,
		sessions: sessions,
	}
}

func (h authHandler) registerForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.render(w, r, http.StatusOK, "register.page.html", &templateData{
			Title: "Register",
			Form:  map[string]string{},
		})
	}
}

// register creates the account and signs the new user straight in.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PostFormValue("name")
		email := r.PostFormValue("email")
		password := r.PostFormValue("password")

		form := map[string]string{"name": name, "email": email}

		v := validator.New()
		v.Check(validator.NotBlank(name), "name", "name is required")
		v.Check(validator.NotBlank(email), "email", "email is required")
		if validator.NotBlank(email) {
			v.Check(validator.Matches(email, validator.EmailRX), "email", "email is not a valid address")
		}
		v.Check(validator.MinChars(password, services.MinPasswordLength), "password",
			"password must be at least 7 characters")

		if !v.IsValid() {
			h.renderer.render(w, r, http.StatusUnprocessableEntity, "register.page.html", &templateData{
				Title:  "Register",
				Form:   form,
				Errors: v.Errors,
			})
			return
		}

		user, err := h.auth.Register(name, email, password)
		if err != nil {
			if errs.IsConflict(err) {
				h.renderer.render(w, r, http.StatusUnprocessableEntity, "register.page.html", &templateData{
					Title:  "Register",
					Form:   form,
					Errors: map[string]string{"email": "that email is already registered, log in instead"},
				})
				return
			}
			h.logger.Error().Err(err).Msg("Failed to register user")
			h.renderer.serverError(w, err)
			return
		}

		if err := h.sessions.establish(w, user.ID); err != nil {
			h.logger.Error().Err(err).Uint("userID", user.ID).Msg("Failed to establish session")
			h.renderer.serverError(w, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (h authHandler) loginForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.render(w, r, http.StatusOK, "login.page.html", &templateData{
			Title: "Log In",
			Form:  map[string]string{},
		})
	}
}

// login authenticates and establishes a session. An unknown email and a
// wrong password produce different field errors on purpose.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.PostFormValue("email")
		password := r.PostFormValue("password")

		form := map[string]string{"email": email}

		user, err := h.auth.Authenticate(email, password)
		if err != nil {
			switch {
			case errors.Is(err, errs.ErrUnknownEmail):
				h.renderer.render(w, r, http.StatusUnprocessableEntity, "login.page.html", &templateData{
					Title:  "Log In",
					Form:   form,
					Errors: map[string]string{"email": "that email does not exist, register instead"},
				})
			case errors.Is(err, errs.ErrInvalidPassword):
				h.renderer.render(w, r, http.StatusUnprocessableEntity, "login.page.html", &templateData{
					Title:  "Log In",
					Form:   form,
					Errors: map[string]string{"password": "password incorrect, try again"},
				})
			default:
				h.logger.Error().Err(err).Msg("Failed to authenticate user")
				h.renderer.serverError(w, err)
			}
			return
		}

		if err := h.sessions.establish(w, user.ID); err != nil {
			h.logger.Error().Err(err).Uint("userID", user.ID).Msg("Failed to establish session")
			h.renderer.serverError(w, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// logout clears the session cookie unconditionally.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.sessions.clear(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
