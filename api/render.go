package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"github.com/jalencar/clean-blog/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:embed templates
var templateFS embed.FS

// templateData is the single bag of values every page template pulls from.
type templateData struct {
	Title       string
	Path        string
	DateLabel   string
	CurrentUser *models.User
	Post        *models.BlogPost
	Posts       []*models.BlogPost
	Form        map[string]string
	Errors      map[string]string
	FormError   string
	Sent        bool
	Editing     bool
	Message     string
}

type renderer struct {
	logger zerolog.Logger
	pages  map[string]*template.Template
}

// newRenderer parses every page template against the shared layout once at
// startup. Templates are compiled into the binary.
func newRenderer() (*renderer, error) {
	pageFiles, err := fs.Glob(templateFS, "templates/*.page.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, pageFile := range pageFiles {
		name := path.Base(pageFile)
		ts, err := template.ParseFS(templateFS, "templates/base.layout.html", pageFile)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = ts
	}

	return &renderer{
		logger: log.With().Str("handlerName", "renderer").Logger(),
		pages:  pages,
	}, nil
}

// render executes a page into a buffer first so a template fault never
// leaks a half-written response.
func (rd *renderer) render(w http.ResponseWriter, r *http.Request, status int, page string, data *templateData) {
	if data == nil {
		data = &templateData{}
	}
	data.Path = r.URL.Path
	if data.CurrentUser == nil {
		data.CurrentUser = userFromCtx(r.Context())
	}

	ts, ok := rd.pages[page]
	if !ok {
		rd.serverError(w, fmt.Errorf("unknown template %q", page))
		return
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		rd.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (rd *renderer) renderNotFound(w http.ResponseWriter, r *http.Request) {
	rd.render(w, r, http.StatusNotFound, "error.page.html", &templateData{
		Title:   "Not Found",
		Message: "The page you were looking for does not exist.",
	})
}

func (rd *renderer) renderForbidden(w http.ResponseWriter, r *http.Request) {
	rd.render(w, r, http.StatusForbidden, "error.page.html", &templateData{
		Title:   "Forbidden",
		Message: "You do not have permission to do that.",
	})
}

func (rd *renderer) serverError(w http.ResponseWriter, err error) {
	rd.logger.Error().Err(err).Msg("Failed to render page")
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
