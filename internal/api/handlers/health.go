package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/synthesis"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	engine *synthesis.Engine
}

func NewHealthHandler(engine *synthesis.Engine) *HealthHandler {
	return &HealthHandler{engine: engine}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"models": len(h.engine.ModelIDs()),
	})
}
