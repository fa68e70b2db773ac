package observability

import (
	"context"
	"testing"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/adapters"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/config"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/synthesis"
	"github.com/stretchr/testify/assert"
)

func TestInitializeLangfuseDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "flag off", cfg: config.Config{LangfuseSecretKey: "sk", LangfusePublicKey: "pk"}},
		{name: "missing secret", cfg: config.Config{LangfuseEnabled: true, LangfusePublicKey: "pk"}},
		{name: "missing public key", cfg: config.Config{LangfuseEnabled: true, LangfuseSecretKey: "sk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := InitializeLangfuse(context.Background(), &tt.cfg)
			assert.False(t, client.IsEnabled())
		})
	}
}

func TestDisabledClientIsNoop(t *testing.T) {
	client := Disabled()

	trace := client.StartTrace(context.Background(), "x", nil)
	assert.False(t, trace.Enabled())

	gen := trace.Generation("render-sdxl", "sdxl", nil)
	gen.Input("in")
	gen.Output("out")
	gen.SetLevel("WARNING")
	gen.Finish()
	trace.Finish()
	client.Flush(context.Background())

	client.TraceSynthesis(context.Background(), "r1", "batch", &synthesis.Composition{},
		map[string]adapters.RenderedPrompt{"sdxl": {Prompt: "cat"}}, []string{"sdxl"})
}

func TestNilClientIsDisabled(t *testing.T) {
	var client *LangfuseClient
	assert.False(t, client.IsEnabled())
	client.TraceSynthesis(context.Background(), "r1", "single", nil, nil, nil)
}
