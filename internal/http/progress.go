package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alhifz/hifz/internal/entities"
	"github.com/alhifz/hifz/internal/progress"
)

type ProgressController struct {
	service *progress.Service
}

func NewProgressController(service *progress.Service) *ProgressController {
	return &ProgressController{service: service}
}

type startLearningRequest struct {
	HadithID uint `json:"hadith_id" binding:"required"`
}

type updateProgressRequest struct {
	Status entities.LearningStatus `json:"status" binding:"required"`
	Notes  *string                 `json:"notes,omitempty"`
}

// StartLearning handles POST /api/children/:childID/progress
func (controller *ProgressController) StartLearning(c *gin.Context) {
	childID, ok := uintParam(c, "childID")
	if !ok {
		return
	}

	var req startLearningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "hadith_id is required", Code: "validation"})
		return
	}

	rec, err := controller.service.StartLearning(childID, req.HadithID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, rec)
}

// Update handles PUT /api/children/:childID/progress/:hadithID
func (controller *ProgressController) Update(c *gin.Context) {
	childID, ok := uintParam(c, "childID")
	if !ok {
		return
	}
	hadithID, ok := uintParam(c, "hadithID")
	if !ok {
		return
	}

	var req updateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status is required", Code: "validation"})
		return
	}

	rec, err := controller.service.Update(childID, hadithID, req.Status, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, rec)
}

// Get handles GET /api/children/:childID/progress/:hadithID
func (controller *ProgressController) Get(c *gin.Context) {
	childID, ok := uintParam(c, "childID")
	if !ok {
		return
	}
	hadithID, ok := uintParam(c, "hadithID")
	if !ok {
		return
	}

	rec, err := controller.service.Get(childID, hadithID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, rec)
}

// List handles GET /api/children/:childID/progress?status=...
func (controller *ProgressController) List(c *gin.Context) {
	childID, ok := uintParam(c, "childID")
	if !ok {
		return
	}

	records, err := controller.service.List(childID, entities.LearningStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

// Remove handles DELETE /api/children/:childID/progress/:hadithID
func (controller *ProgressController) Remove(c *gin.Context) {
	childID, ok := uintParam(c, "childID")
	if !ok {
		return
	}
	hadithID, ok := uintParam(c, "hadithID")
	if !ok {
		return
	}

	if err := controller.service.Remove(childID, hadithID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats handles GET /api/children/:childID/progress/stats
func (controller *ProgressController) Stats(c *gin.Context) {
	childID, ok := uintParam(c, "childID")
	if !ok {
		return
	}

	stats, err := controller.service.Stats(childID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, stats)
}
