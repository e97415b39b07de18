package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jalencar/clean-blog/config"
	"github.com/jalencar/clean-blog/database"
	"github.com/jalencar/clean-blog/services"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(db database.Database, mailer services.Mailer) (Server, error) {
	c := config.New()

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	router, err := newRouter(db, mailer, withConfig(c), withStartupTime(startupTime))
	if err != nil {
		return Server{}, err
	}

	readTimeout := config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 30)
	writeTimeout := config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 60)
	idleTimeout := config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 120)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(db database.Database, mailer services.Mailer, opts ...func(*router)) (*chi.Mux, error) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(RequestIDMiddleware)

	if origins := config.GetString(router.config, "ACCEPTED_ORIGINS", ""); origins != "" {
		chiRouter.Use(cors.Handler(cors.Options{
			AllowedOrigins:   strings.Split(origins, ","),
			AllowedMethods:   []string{"GET", "POST"},
			AllowCredentials: true,
		}))
	}

	renderer, err := newRenderer()
	if err != nil {
		return nil, err
	}

	sessionSecret := config.GetString(router.config, "SESSION_SECRET", "changeme-secret")
	sessionTTL := config.GetSeconds(router.config, "SESSION_TTL_SECONDS", 24*60*60)
	sessions := newSessionManager(sessionSecret, sessionTTL)

	handlers := initializeHandlers(db, mailer, renderer, sessions)

	authService := services.NewAuthService(db.UserRepo())
	authMiddleware := newAuthMiddleware(sessions, authService, renderer)

	setupRoutes(chiRouter, handlers, authMiddleware)

	chiRouter.NotFound(renderer.renderNotFound)

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
