package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jalencar/clean-blog/errs"
	"github.com/jalencar/clean-blog/models"
	"github.com/jalencar/clean-blog/services"
	"github.com/jalencar/clean-blog/validator"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogPostHandler struct {
	logger   zerolog.Logger
	renderer *renderer
	posts    *services.PostService
}

func newBlogPostHandler(renderer *renderer, posts *services.PostService) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		logger:   logger,
		renderer: renderer,
		posts:    posts,
	}
}

// home renders the post listing with the current date label.
func (h blogPostHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.posts.List()
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to list blog posts")
			h.renderer.serverError(w, err)
			return
		}

		h.renderer.render(w, r, http.StatusOK, "index.page.html", &templateData{
			Title:     "Home",
			DateLabel: services.CurrentDateLabel(),
			Posts:     posts,
		})
	}
}

// detail renders one post, or a 404 page when the id matches nothing.
func (h blogPostHandler) detail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.postID(w, r)
		if !ok {
			return
		}

		post, err := h.posts.Get(id)
		if err != nil {
			if errs.IsNotFound(err) {
				h.renderer.renderNotFound(w, r)
				return
			}
			h.logger.Error().Err(err).Uint("postID", id).Msg("Failed to load blog post")
			h.renderer.serverError(w, err)
			return
		}

		h.renderer.render(w, r, http.StatusOK, "post.page.html", &templateData{
			Title:     post.Title,
			DateLabel: services.CurrentDateLabel(),
			Post:      post,
		})
	}
}

// createForm renders the empty post form.
func (h blogPostHandler) createForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.render(w, r, http.StatusOK, "make-post.page.html", &templateData{
			Title: "New Post",
			Form:  map[string]string{},
		})
	}
}

// create validates the submission and persists a new post attributed to
// the current user, then redirects to the listing.
func (h blogPostHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, form, v := parsePostForm(r)
		if !v.IsValid() {
			h.renderer.render(w, r, http.StatusUnprocessableEntity, "make-post.page.html", &templateData{
				Title:  "New Post",
				Form:   form,
				Errors: v.Errors,
			})
			return
		}

		author := userFromCtx(r.Context())
		post, err := h.posts.Create(input, author)
		if err != nil {
			h.handleSaveError(w, r, err, "New Post", form, false)
			return
		}

		h.logger.Info().Uint("postID", post.ID).Uint("authorID", author.ID).Msg("Blog post created")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// editForm renders the post form pre-filled with the existing post.
func (h blogPostHandler) editForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.postID(w, r)
		if !ok {
			return
		}

		post, err := h.posts.Get(id)
		if err != nil {
			if errs.IsNotFound(err) {
				h.renderer.renderNotFound(w, r)
				return
			}
			h.renderer.serverError(w, err)
			return
		}

		h.renderer.render(w, r, http.StatusOK, "make-post.page.html", &templateData{
			Title: "Edit Post",
			Form: map[string]string{
				"title":    post.Title,
				"subtitle": post.Subtitle,
				"img_url":  post.ImgURL,
				"body":     post.Body,
			},
			Editing: true,
		})
	}
}

// edit overwrites the post in place and redirects to its detail page. The
// post's Date is left untouched.
func (h blogPostHandler) edit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.postID(w, r)
		if !ok {
			return
		}

		input, form, v := parsePostForm(r)
		if !v.IsValid() {
			h.renderer.render(w, r, http.StatusUnprocessableEntity, "make-post.page.html", &templateData{
				Title:   "Edit Post",
				Form:    form,
				Errors:  v.Errors,
				Editing: true,
			})
			return
		}

		post, err := h.posts.Update(id, input)
		if err != nil {
			if errs.IsNotFound(err) {
				h.renderer.renderNotFound(w, r)
				return
			}
			h.handleSaveError(w, r, err, "Edit Post", form, true)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/posts/%d", post.ID), http.StatusSeeOther)
	}
}

// delete removes the post and redirects to the listing. No confirmation
// step; deleting an already-gone id still redirects.
func (h blogPostHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.postID(w, r)
		if !ok {
			return
		}

		if err := h.posts.Delete(id); err != nil {
			h.logger.Error().Err(err).Uint("postID", id).Msg("Failed to delete blog post")
			h.renderer.serverError(w, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// handleSaveError turns a create/update failure into a form re-render
// (for conflicts) or an error page.
func (h blogPostHandler) handleSaveError(w http.ResponseWriter, r *http.Request, err error, title string, form map[string]string, editing bool) {
	if errs.IsConflict(err) {
		errors := map[string]string{}
		if field := errs.FieldOf(err); field != "" {
			errors[field] = "a post with this title already exists"
		}
		h.renderer.render(w, r, http.StatusUnprocessableEntity, "make-post.page.html", &templateData{
			Title:   title,
			Form:    form,
			Errors:  errors,
			Editing: editing,
		})
		return
	}

	h.logger.Error().Err(err).Msg("Failed to save blog post")
	h.renderer.serverError(w, err)
}

// postID parses the {postID} route parameter; on garbage it renders the
// 404 page and reports false.
func (h blogPostHandler) postID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "postID")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		h.renderer.renderNotFound(w, r)
		return 0, false
	}
	return uint(id), true
}

// parsePostForm pulls and validates the post form fields.
func parsePostForm(r *http.Request) (services.PostInput, map[string]string, *validator.Validator) {
	input := services.PostInput{
		Title:    r.PostFormValue("title"),
		Subtitle: r.PostFormValue("subtitle"),
		Body:     r.PostFormValue("body"),
		ImgURL:   r.PostFormValue("img_url"),
	}

	form := map[string]string{
		"title":    input.Title,
		"subtitle": input.Subtitle,
		"body":     input.Body,
		"img_url":  input.ImgURL,
	}

	v := validator.New()
	v.Check(validator.NotBlank(input.Title), "title", "title is required")
	v.Check(validator.NotBlank(input.Subtitle), "subtitle", "subtitle is required")
	v.Check(validator.NotBlank(input.Body), "body", "body is required")
	v.Check(validator.MaxChars(input.Body, models.MaxBodyLength), "body", "body is too long")
	v.Check(validator.NotBlank(input.ImgURL), "img_url", "image URL is required")
	if validator.NotBlank(input.ImgURL) {
		v.Check(validator.ValidURL(input.ImgURL), "img_url", "image URL must be a valid http(s) URL")
	}

	return input, form, v
}
