package api

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var staticFS embed.FS

// setupRoutes wires the public pages, the session routes, and the
// admin-gated post management routes.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(auth.loadUser)

		// Public pages
		r.Get("/", handlers.blogPostHandler.home())
		r.Get("/about", handlers.contactHandler.about())
		r.Get("/contact", handlers.contactHandler.contactForm())
		r.Post("/contact", handlers.contactHandler.submitContact())
		r.Get("/posts/{postID}", handlers.blogPostHandler.detail())

		// Account routes
		r.Get("/register", handlers.authHandler.registerForm())
		r.Post("/register", handlers.authHandler.register())
		r.Get("/login", handlers.authHandler.loginForm())
		r.Post("/login", handlers.authHandler.login())
		r.Get("/logout", handlers.authHandler.logout())

		// Post management, admin only
		r.Group(func(r chi.Router) {
			r.Use(auth.requireAdmin)
			r.Get("/posts", handlers.blogPostHandler.createForm())
			r.Post("/posts", handlers.blogPostHandler.create())
			r.Get("/edit-post/{postID}", handlers.blogPostHandler.editForm())
			r.Post("/edit-post/{postID}", handlers.blogPostHandler.edit())
			r.Get("/delete-post/{postID}", handlers.blogPostHandler.delete())
		})
	})

	staticRoot, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))))
}
