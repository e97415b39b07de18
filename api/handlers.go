package api

import (
	"github.com/jalencar/clean-blog/database"
	"github.com/jalencar/clean-blog/services"
)

type routeHandlers struct {
	blogPostHandler blogPostHandler
	authHandler     authHandler
	contactHandler  contactHandler
}

// initializeHandlers creates and returns all handlers organized in a
// routeHandlers struct
func initializeHandlers(db database.Database, mailer services.Mailer, renderer *renderer, sessions sessionManager) *routeHandlers {
	postService := services.NewPostService(db.BlogPostRepo())
	authService := services.NewAuthService(db.UserRepo())

	return &routeHandlers{
		blogPostHandler: newBlogPostHandler(renderer, postService),
		authHandler:     newAuthHandler(renderer, authService, sessions),
		contactHandler:  newContactHandler(renderer, mailer),
	}
}
