package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/adapters"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/logger"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/metrics"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/models"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/observability"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/prompt"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/synthesis"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	modeSingle = "single"
	modeBatch  = "batch"
)

var sentryMetrics = metrics.NewSentryMetrics()

type GenerationHandler struct {
	engine     *synthesis.Engine
	cloudwatch *metrics.Client
	langfuse   *observability.LangfuseClient
}

func NewGenerationHandler(engine *synthesis.Engine, cloudwatch *metrics.Client, langfuse *observability.LangfuseClient) *GenerationHandler {
	return &GenerationHandler{
		engine:     engine,
		cloudwatch: cloudwatch,
		langfuse:   langfuse,
	}
}

// Generate renders one prompt for the model named in model_type (default sdxl)
func (h *GenerationHandler) Generate(c *gin.Context) {
	req, ok := bindGenerationRequest(c)
	if !ok {
		return
	}

	start := time.Now()
	rendered, comp, err := h.engine.GenerateOne(c.Request.Context(), req)
	duration := time.Since(start)

	var results map[string]adapters.RenderedPrompt
	var order []string
	if err == nil {
		results = map[string]adapters.RenderedPrompt{rendered.Model: rendered}
		order = []string{rendered.Model}
	}
	h.record(c, modeSingle, comp, results, order, duration, err)

	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rendered)
}

// GenerateBatch renders the same composition for every registered model
func (h *GenerationHandler) GenerateBatch(c *gin.Context) {
	req, ok := bindGenerationRequest(c)
	if !ok {
		return
	}

	start := time.Now()
	results, comp, err := h.engine.GenerateBatch(c.Request.Context(), req)
	duration := time.Since(start)

	h.record(c, modeBatch, comp, results, h.engine.ModelIDs(), duration, err)

	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *GenerationHandler) record(
	c *gin.Context,
	mode string,
	comp *synthesis.Composition,
	results map[string]adapters.RenderedPrompt,
	order []string,
	duration time.Duration,
	err error,
) {
	ctx := c.Request.Context()
	requestID := c.GetString("request_id")

	var seed uint64
	if comp != nil {
		seed = comp.Seed
	}
	rendered := make([]string, 0, len(results))
	for _, id := range order {
		if _, ok := results[id]; ok {
			rendered = append(rendered, id)
		}
	}

	sentryMetrics.RecordGeneration(ctx, mode, rendered, seed, duration, err)
	h.cloudwatch.RecordGeneration(mode, len(rendered), duration, err == nil)

	if err != nil {
		return
	}

	logger.LogGenerationRequest(ctx, mode, len(rendered), duration, logger.Fields{
		"request_id": requestID,
		"seed":       seed,
		"complexity": comp.Request.Complexity,
		"subject":    comp.Selection.Subject,
	})
	h.langfuse.TraceSynthesis(ctx, requestID, mode, comp, results, order)
}

// bindGenerationRequest decodes the body. An empty body means all defaults.
func bindGenerationRequest(c *gin.Context) (*models.GenerationRequest, bool) {
	req := &models.GenerationRequest{}

	body, err := c.GetRawData()
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return req, true
	}

	if err := binding.JSON.BindBody(body, req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return nil, false
	}
	return req, true
}

// writeError maps engine errors to HTTP status codes
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, prompt.ErrUnknownModel):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, prompt.ErrInvalidParameter),
		errors.Is(err, prompt.ErrUnknownArtist),
		errors.Is(err, prompt.ErrUnknownImageType):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusServiceUnavailable, "request cancelled")
	default:
		logger.Error("Prompt generation failed", err, logger.WithContext(c))
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, models.ErrorResponse{
		Error:     msg,
		RequestID: c.GetString("request_id"),
	})
}
