package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/adapters"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/config"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/prompt"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/synthesis"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/vocabulary"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	registry, err := adapters.DefaultRegistry()
	require.NoError(t, err)
	engine, err := synthesis.NewEngine(vocabulary.MustDefault(), registry, prompt.DefaultSelectorOptions())
	require.NoError(t, err)

	cfg := &config.Config{
		CORSOrigins:      []string{"http://localhost:3000"},
		VocabularyPolicy: prompt.PolicyLenient,
	}
	router := SetupRouter(cfg, engine, "test", Dependencies{})

	routes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/health", ""},
		{http.MethodGet, "/api/metrics", ""},
		{http.MethodGet, "/models", ""},
		{http.MethodGet, "/models/sdxl/settings", ""},
		{http.MethodPost, "/generate", `{"model_type":"qwen"}`},
		{http.MethodPost, "/generate/batch", `{}`},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			req := httptest.NewRequest(r.method, r.path, strings.NewReader(r.body))
			req.Header.Set("Origin", "http://localhost:3000")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
