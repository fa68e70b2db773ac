package adapters

import (
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/prompt"
)

// Adapter families named by the model catalog
const (
	FamilyDetail    = "detail"
	FamilyNarrative = "narrative"
	FamilyMood      = "mood"
)

// Capability describes one registered model. The json tags are the wire
// contract for /models; family and term lists stay internal.
type Capability struct {
	ModelType               string         `json:"model_type" yaml:"model_type"`
	Family                  string         `json:"-" yaml:"family"`
	DisplayName             string         `json:"display_name" yaml:"display_name"`
	Description             string         `json:"description" yaml:"description"`
	OptimalPromptStyle      string         `json:"optimal_prompt_style" yaml:"optimal_prompt_style"`
	SupportsNegativePrompts bool           `json:"supports_negative_prompts" yaml:"supports_negative_prompts"`
	SupportsWeights         bool           `json:"supports_weights" yaml:"supports_weights"`
	QualityTags             []string       `json:"-" yaml:"quality_tags"`
	NegativeTerms           []string       `json:"-" yaml:"negative_terms"`
	RecommendedSettings     map[string]any `json:"recommended_settings" yaml:"recommended_settings"`
}

// clone returns a deep copy so callers cannot mutate registry state
func (c Capability) clone() Capability {
	out := c
	out.QualityTags = append([]string(nil), c.QualityTags...)
	out.NegativeTerms = append([]string(nil), c.NegativeTerms...)
	out.RecommendedSettings = copySettings(c.RecommendedSettings)
	return out
}

// RenderedPrompt is one model's rendering of a canonical prompt
type RenderedPrompt struct {
	Prompt         string         `json:"prompt"`
	NegativePrompt string         `json:"negative_prompt"`
	Model          string         `json:"model"`
	Settings       map[string]any `json:"settings"`
	Seed           uint64         `json:"seed"`
}

// Adapter renders canonical prompts into one model's syntax. Implementations
// are pure: the same canonical prompt always renders to the same text.
type Adapter interface {
	Capability() Capability
	Render(cp prompt.CanonicalPrompt) RenderedPrompt
}

// Factory builds an adapter for a catalog entry
type Factory func(Capability) Adapter

var families = map[string]Factory{
	FamilyDetail:    NewDetailAdapter,
	FamilyNarrative: NewNarrativeAdapter,
	FamilyMood:      NewMoodAdapter,
}

func copySettings(settings map[string]any) map[string]any {
	out := make(map[string]any, len(settings))
	for k, v := range settings {
		out[k] = v
	}
	return out
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// negativePrompt joins the catalog terms when the model accepts them
func negativePrompt(c Capability) string {
	if !c.SupportsNegativePrompts {
		return ""
	}
	return strings.Join(c.NegativeTerms, ", ")
}
