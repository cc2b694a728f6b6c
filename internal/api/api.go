package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jamhof/recipebox/internal/api/auth"
	"github.com/jamhof/recipebox/internal/api/handler"
	"github.com/jamhof/recipebox/internal/config"
	"github.com/jamhof/recipebox/internal/database"
	"github.com/jamhof/recipebox/internal/storage"
)

type Server struct {
	cfg         *config.Config
	ginEngine   *gin.Engine
	httpServer  *http.Server
	db          database.DB
	authService *auth.Service
	store       *storage.Store
}

func New(cfg *config.Config, db database.DB, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	authService := auth.NewService(db, time.Duration(cfg.Auth.TokenCacheTTL)*time.Second)
	store := storage.New(cfg.Uploads.Dir)

	s := &Server{
		cfg:         cfg,
		ginEngine:   gin.Default(),
		db:          db,
		authService: authService,
		store:       store,
	}
	s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

func (s *Server) setupRoutes() {
	h := handler.New(s.db, s.store, s.cfg)
	uh := handler.NewUser(h, s.authService)

	s.ginEngine.GET("/healthz", h.Health)
	s.ginEngine.Static("/media", s.store.Root())

	// Public user endpoints
	userGroup := s.ginEngine.Group("/api/user")
	userGroup.POST("/", uh.Register)
	userGroup.POST("/token/", uh.CreateToken)

	// Everything below requires a valid API token
	me := userGroup.Group("/me")
	me.Use(s.authService.RequireAuth())
	me.GET("/", uh.Me)
	me.PATCH("/", uh.UpdateMe)
	me.POST("/", uh.MeNotAllowed)

	recipeGroup := s.ginEngine.Group("/api/recipe")
	recipeGroup.Use(s.authService.RequireAuth())

	recipeGroup.GET("/tags/", h.ListTags)
	recipeGroup.POST("/tags/", h.CreateTag)

	recipeGroup.GET("/ingredients/", h.ListIngredients)
	recipeGroup.POST("/ingredients/", h.CreateIngredient)

	recipeGroup.GET("/recipes/", h.ListRecipes)
	recipeGroup.POST("/recipes/", h.CreateRecipe)
	recipeGroup.GET("/recipes/:id/", h.GetRecipe)
	recipeGroup.PUT("/recipes/:id/", h.UpdateRecipe)
	recipeGroup.PATCH("/recipes/:id/", h.UpdateRecipe)
	recipeGroup.DELETE("/recipes/:id/", h.DeleteRecipe)
	recipeGroup.POST("/recipes/:id/upload-image/", h.UploadRecipeImage)
}

// Engine exposes the configured router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.ginEngine
}

func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting new connections and waits for in-flight requests
// to finish, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
