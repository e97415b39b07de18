package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jalencar/clean-blog/api"
	"github.com/jalencar/clean-blog/config"
	"github.com/jalencar/clean-blog/database"
	"github.com/jalencar/clean-blog/models"
	"github.com/jalencar/clean-blog/services"
)

func main() {
	log.Info().Msg("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using process environment")
	}

	cfg := config.New()

	db, err := openDatabase(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Error connecting to database")
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.User{}, &models.BlogPost{}); err != nil {
		log.Error().Err(err).Msg("Error migrating database schema")
		os.Exit(1)
	}

	currentDB := database.New(db)

	mailer, err := services.NewSMTPMailer(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Error configuring contact mailer")
		os.Exit(1)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, mailer)
	if err != nil {
		log.Error().Err(err).Msg("Error initializing server")
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// openDatabase connects GORM to the driver selected by DB_DRIVER: sqlite
// (default, a single relational file) or postgres.
func openDatabase(cfg map[string]string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	driver := config.GetString(cfg, "DB_DRIVER", "sqlite")
	switch driver {
	case "sqlite":
		dsn := config.GetString(cfg, "SQLITE_PATH", "./blog.db")
		log.Info().Str("path", dsn).Msg("Connecting to SQLite database...")
		return gorm.Open(sqlite.Open(dsn), gormConfig)
	case "postgres":
		connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(cfg, "DB_HOST", "localhost"),
			config.GetString(cfg, "DB_USER", "postgres"),
			config.GetString(cfg, "DB_PASSWORD", ""),
			config.GetString(cfg, "DB_NAME", "blog"),
			config.GetString(cfg, "DB_PORT", "5432"),
			config.GetString(cfg, "DB_SSLMODE", "disable"),
		)
		log.Info().Msg("Connecting to Postgres database...")
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  connStr,
			PreferSimpleProtocol: true,
		}), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
