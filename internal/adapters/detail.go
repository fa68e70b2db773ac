package adapters

import (
	"strings"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/prompt"
)

// DetailAdapter renders technical comma-separated prompts with
// (text:weight) emphasis, as used by SDXL-class models
type DetailAdapter struct {
	capability Capability
}

// NewDetailAdapter creates a detail-family adapter
func NewDetailAdapter(c Capability) Adapter {
	return &DetailAdapter{capability: c.clone()}
}

// Capability returns the model capability
func (a *DetailAdapter) Capability() Capability {
	return a.capability
}

// Render joins clauses in canonical order and appends the quality tags
func (a *DetailAdapter) Render(cp prompt.CanonicalPrompt) RenderedPrompt {
	clauses := cp.Clauses()
	parts := make([]string, 0, len(clauses)+len(a.capability.QualityTags))

	for _, c := range clauses {
		text := c.Text
		if c.Role == prompt.RoleArtist && c.Origin == prompt.OriginVocabulary {
			text = "by " + text
		}
		parts = append(parts, a.emphasize(text, c.Weight))
	}
	parts = append(parts, a.capability.QualityTags...)

	return RenderedPrompt{
		Prompt:         strings.Join(parts, ", "),
		NegativePrompt: negativePrompt(a.capability),
		Model:          a.capability.ModelType,
		Settings:       copySettings(a.capability.RecommendedSettings),
	}
}

func (a *DetailAdapter) emphasize(text string, weight float64) string {
	if !a.capability.SupportsWeights || weight == prompt.NeutralWeight {
		return text
	}
	return "(" + text + ":" + formatWeight(weight) + ")"
}
