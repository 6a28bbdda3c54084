package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/npcunard/herdfeed/pkg/application/dto"
	"github.com/npcunard/herdfeed/pkg/application/services"
	"github.com/npcunard/herdfeed/pkg/domain/entities"
	"github.com/npcunard/herdfeed/pkg/infrastructure/scenario"
)

// RationHandler exposes ration evaluation over HTTP.
type RationHandler struct {
	svc         *services.RationService
	defaultMode string
	logger      *zap.Logger
}

// NewRationHandler constructs the HTTP handler adapter. Requests that omit
// a mode are evaluated in defaultMode.
func NewRationHandler(svc *services.RationService, defaultMode string, logger *zap.Logger) *RationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RationHandler{svc: svc, defaultMode: defaultMode, logger: logger}
}

// Evaluate decodes a scenario over the built-in defaults and evaluates it.
func (h *RationHandler) Evaluate(c *gin.Context) {
	sc, err := scenario.Defaults()
	if err != nil {
		h.logger.Error("failed loading scenario defaults", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load defaults"})
		return
	}
	if h.defaultMode != "" {
		sc.Mode = h.defaultMode
	}

	if err := c.ShouldBindJSON(&sc); err != nil {
		h.logger.Warn("invalid evaluation payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.svc.Evaluate(c.Request.Context(), sc)
	if err != nil {
		if errors.Is(err, services.ErrInvalidScenario) {
			h.logger.Warn("rejected scenario", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed evaluating ration", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to evaluate ration"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Catalog lists the feed catalog.
func (h *RationHandler) Catalog(c *gin.Context) {
	feeds, err := h.svc.Catalog()
	if err != nil {
		h.logger.Error("failed reading catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read catalog"})
		return
	}

	views := make([]dto.FeedView, len(feeds))
	for i, feed := range feeds {
		views[i] = dto.NewFeedView(feed)
	}
	c.JSON(http.StatusOK, gin.H{"feeds": views})
}

// Season returns the default pasture nutrients for a season. The optional
// nutrient query parameter narrows the response to one nutrient.
func (h *RationHandler) Season(c *gin.Context) {
	season, profile, err := h.svc.SeasonDefaults(c.Param("season"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if name := c.Query("nutrient"); name != "" {
		n, err := entities.ParseNutrient(name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"season":   season.String(),
			"nutrient": n.String(),
			"pct":      profile.Pct(n),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"season":    season.String(),
		"nutrients": dto.NutrientMap(profile),
	})
}
