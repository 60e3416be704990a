package http

import (
	"github.com/gin-gonic/gin"

	"github.com/alhifz/hifz/internal/database"
	"github.com/alhifz/hifz/internal/progress"
	"github.com/alhifz/hifz/internal/search"
)

// RouterConfig carries the dependencies for the HTTP surface. Only the
// core operations are routed here; account management and corpus CRUD
// live in a separate collaborator service.
type RouterConfig struct {
	Database *database.Database
	Engine   *search.Engine
	Progress *progress.Service
	Version  string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Engine, cfg.Version)
	searchController := NewSearchController(cfg.Engine)
	progressController := NewProgressController(cfg.Progress)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Search API endpoints
	router.GET("/api/search", searchController.Search)
	router.GET("/api/search/autocomplete", searchController.Autocomplete)
	router.GET("/api/search/verify", searchController.Verify)
	router.POST("/api/search/reindex", searchController.Rebuild)

	// Progress API endpoints
	router.POST("/api/children/:childID/progress", progressController.StartLearning)
	router.GET("/api/children/:childID/progress", progressController.List)
	router.GET("/api/children/:childID/progress/stats", progressController.Stats)
	router.GET("/api/children/:childID/progress/:hadithID", progressController.Get)
	router.PUT("/api/children/:childID/progress/:hadithID", progressController.Update)
	router.DELETE("/api/children/:childID/progress/:hadithID", progressController.Remove)

	return router
}
