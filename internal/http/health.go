package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alhifz/hifz/internal/database"
	"github.com/alhifz/hifz/internal/search"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      *database.Database
	engine  *search.Engine
	version string
}

func NewHealthController(db *database.Database, engine *search.Engine, version string) *HealthController {
	return &HealthController{
		db:      db,
		engine:  engine,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Check database connectivity
	if h.db != nil {
		sqlDB, err := h.db.DB.DB()
		if err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else if err := sqlDB.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	// A missing snapshot degrades search to the slow substring path
	// but does not take the service down.
	if h.engine != nil {
		if docs, ok := h.engine.IndexedDocuments(); ok {
			checks["search_index"] = fmt.Sprintf("ok (%d documents)", docs)
		} else {
			checks["search_index"] = "not built (database fallback active)"
		}
	} else {
		checks["search_index"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
