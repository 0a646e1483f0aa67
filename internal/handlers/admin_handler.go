package handlers

import (
	"net/http"

	"sovest/internal/repository"
	"sovest/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	repo           *repository.Repository
	scoringService *services.ScoringService
}

func NewAdminHandler(repo *repository.Repository, scoringService *services.ScoringService) *AdminHandler {
	return &AdminHandler{
		repo:           repo,
		scoringService: scoringService,
	}
}

// GetPlatformStats returns aggregate platform counts
// GET /api/admin/stats
func (h *AdminHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.repo.GetPlatformStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// TriggerSweep runs one evaluation sweep and reports the counts
// POST /api/admin/evaluate
func (h *AdminHandler) TriggerSweep(c *gin.Context) {
	report, err := h.scoringService.EvaluateActivePredictions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
