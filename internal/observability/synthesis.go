package observability

import (
	"context"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/adapters"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/synthesis"
)

// TraceSynthesis records one request as a trace with a generation per
// rendered model. The canonical clauses are the input of every generation.
func (c *LangfuseClient) TraceSynthesis(ctx context.Context, requestID, mode string, comp *synthesis.Composition, rendered map[string]adapters.RenderedPrompt, order []string) {
	if !c.IsEnabled() || comp == nil {
		return
	}

	trace := c.StartTrace(ctx, "prompt-synthesis", map[string]interface{}{
		"request_id": requestID,
		"mode":       mode,
		"seed":       comp.Seed,
		"complexity": comp.Request.Complexity,
		"subject":    comp.Selection.Subject,
		"artist":     comp.Selection.Artist,
		"image_type": comp.Selection.ImageType,
	})
	defer trace.Finish()

	clauses := comp.Prompt.Clauses()
	for _, id := range order {
		out, ok := rendered[id]
		if !ok {
			continue
		}
		gen := trace.Generation("render-"+id, id, map[string]interface{}{
			"has_negative_prompt": out.NegativePrompt != "",
		})
		gen.Input(clauses)
		gen.Output(map[string]string{
			"prompt":          out.Prompt,
			"negative_prompt": out.NegativePrompt,
		})
		gen.Finish()
	}
}
