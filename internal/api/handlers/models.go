package handlers

import (
	"net/http"
	"strings"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/models"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/synthesis"
	"github.com/gin-gonic/gin"
)

type ModelsHandler struct {
	engine *synthesis.Engine
}

func NewModelsHandler(engine *synthesis.Engine) *ModelsHandler {
	return &ModelsHandler{engine: engine}
}

// ListModels returns every model capability keyed by model_type
func (h *ModelsHandler) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.ListModels())
}

// GetSettings returns the recommended settings of one model
func (h *ModelsHandler) GetSettings(c *gin.Context) {
	modelType := strings.ToLower(strings.TrimSpace(c.Param("model_type")))

	capability, err := h.engine.Capability(modelType)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ModelSettingsResponse{
		ModelType:               capability.ModelType,
		RecommendedSettings:     capability.RecommendedSettings,
		SupportsNegativePrompts: capability.SupportsNegativePrompts,
		SupportsWeights:         capability.SupportsWeights,
	})
}
