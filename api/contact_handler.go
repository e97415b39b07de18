package api

import (
	"net/http"

	"github.com/jalencar/clean-blog/errs"
	"github.com/jalencar/clean-blog/services"
	"github.com/jalencar/clean-blog/validator"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactHandler struct {
	logger   zerolog.Logger
	renderer *renderer
	mailer   services.Mailer
}

func newContactHandler(renderer *renderer, mailer services.Mailer) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		logger:   logger,
		renderer: renderer,
		mailer:   mailer,
	}
}

func (h contactHandler) about() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.render(w, r, http.StatusOK, "about.page.html", &templateData{
			Title: "About",
		})
	}
}

func (h contactHandler) contactForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.render(w, r, http.StatusOK, "contact.page.html", &templateData{
			Title: "Contact",
			Form:  map[string]string{},
		})
	}
}

// submitContact validates the four fields, relays exactly one email over
// the injected mailer, and renders the sent confirmation. A delivery
// failure is surfaced on the form rather than dropped as a 500.
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := services.ContactMessage{
			Name:    r.PostFormValue("name"),
			Email:   r.PostFormValue("email"),
			Phone:   r.PostFormValue("phone"),
			Message: r.PostFormValue("message"),
		}

		form := map[string]string{
			"name":    msg.Name,
			"email":   msg.Email,
			"phone":   msg.Phone,
			"message": msg.Message,
		}

		v := validator.New()
		v.Check(validator.NotBlank(msg.Name), "name", "name is required")
		v.Check(validator.NotBlank(msg.Email), "email", "email is required")
		v.Check(validator.NotBlank(msg.Phone), "phone", "phone is required")
		v.Check(validator.NotBlank(msg.Message), "message", "message is required")

		if !v.IsValid() {
			h.renderer.render(w, r, http.StatusUnprocessableEntity, "contact.page.html", &templateData{
				Title:  "Contact",
				Form:   form,
				Errors: v.Errors,
			})
			return
		}

		if err := h.mailer.Send(r.Context(), msg); err != nil {
			h.logger.Error().Err(err).Msg("Contact relay failed")
			formError := "something went wrong sending your message, please try again later"
			if !errs.IsMailDelivery(err) {
				formError = "an unexpected error occurred, please try again later"
			}
			h.renderer.render(w, r, http.StatusBadGateway, "contact.page.html", &templateData{
				Title:     "Contact",
				Form:      form,
				FormError: formError,
			})
			return
		}

		h.renderer.render(w, r, http.StatusOK, "contact.page.html", &templateData{
			Title: "Contact",
			Sent:  true,
		})
	}
}
