// Package server assembles the HTTP API from the feature packages.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/admin"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/auth"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/catalog"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/config"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/dashboard"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/events"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/joins"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/listings"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/store"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/stream"
	"gorm.io/gorm"
)

// Server holds the router and the services behind it
type Server struct {
	Router *gin.Engine
	Auth   *auth.Service
	Hub    *events.Hub

	repo   *listings.Repository
	ledger *joins.Ledger
}

// New builds the router. The hub is owned by the caller.
func New(cfg config.Config, db *gorm.DB, hub *events.Hub) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	st := store.New(db)
	repo := listings.NewRepository(st, hub)
	ledger := joins.NewLedger(st, repo, hub)

	s := &Server{
		Router: r,
		Auth:   auth.NewService(db, auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL), hub),
		Hub:    hub,
		repo:   repo,
		ledger: ledger,
	}
	s.registerRoutes(db)
	return s
}

// ServeHTTP lets the server be used directly as an http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) registerRoutes(db *gorm.DB) {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := s.Router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"service": "travelbuddy",
			})
		})

		// Auth routes (public, /session guards itself)
		auth.NewHandler(s.Auth).RegisterRoutes(api.Group("/auth"))

		// Catalog routes (public, feeds the listing forms)
		catalog.NewHandler().RegisterRoutes(api.Group("/catalog"))

		// Event stream (authenticates from the query string)
		stream.NewHandler(s.Auth, s.Hub).RegisterRoutes(api)

		protected := api.Group("", auth.AuthMiddleware(s.Auth))
		listings.NewHandler(s.repo).RegisterRoutes(protected)
		joins.NewHandler(s.ledger).RegisterRoutes(protected)
		dashboard.NewHandler(dashboard.NewAggregator(s.repo, s.ledger)).RegisterRoutes(protected.Group("/dashboard"))

		// Admin routes (admin role required)
		adminGroup := api.Group("/admin")
		adminGroup.Use(auth.AuthMiddleware(s.Auth), auth.RequireAdmin())
		admin.NewHandler(db).RegisterRoutes(adminGroup)
	}
}
