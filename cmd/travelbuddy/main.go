package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/config"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/database"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/events"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/server"
	"gorm.io/gorm"

	_ "github.com/vitravelbuddy/travelbuddy/api/swagger"
)

// @title VITravelBuddy API
// @version 1.0
// @description Shared cab rides, trips and outings for students.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "travelbuddy",
		Usage: "VITravelBuddy backend",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run migrations and start the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "run database migrations and exit",
				Action: migrate,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openDatabase connects and migrates
func openDatabase(cfg config.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	if err := models.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, err
	}
	log.Println("Database migrations completed")
	return db, nil
}

func migrate(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	return database.Close(db)
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
	}
	hub := events.NewHub(rdb)
	defer hub.Close()

	if cfg.AMQPURL != "" {
		sink, err := events.DialAMQP(cfg.AMQPURL)
		if err != nil {
			log.Printf("Warning: AMQP unavailable, events stay local: %v", err)
		} else {
			defer sink.Close()
			hub.AddSink(sink)
		}
	}

	srv := server.New(cfg, db, hub)

	if err := srv.Auth.EnsureAdmin(c.Context, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting TravelBuddy server on %s", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
