package adapters

import (
	"strings"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/prompt"
	"github.com/cespare/xxhash/v2"
)

var (
	moodMovements = []string{"impressionist", "expressionist", "abstract", "surrealist", "futurist"}
	moodPhrases   = []string{
		"vibrant neon palette",
		"deep jewel tones",
		"iridescent shimmer",
		"bioluminescent glow",
		"aurora borealis colors",
		"prismatic light",
		"dreamlike atmosphere",
		"ethereal haze",
	}
)

// MoodAdapter renders atmosphere-first prompts: style and artist lead, the
// subject follows, and emphasis uses the text::weight form
type MoodAdapter struct {
	capability Capability
}

// NewMoodAdapter creates a mood-family adapter
func NewMoodAdapter(c Capability) Adapter {
	return &MoodAdapter{capability: c.clone()}
}

// Capability returns the model capability
func (a *MoodAdapter) Capability() Capability {
	return a.capability
}

// Render moves style and artist clauses ahead of the subject. User text keeps
// its position at the start or end of the prompt.
func (a *MoodAdapter) Render(cp prompt.CanonicalPrompt) RenderedPrompt {
	var (
		lead, trail []string
		styles      []string
		artists     []string
		body        []string
		seenSubject bool
	)

	for _, c := range cp.Clauses() {
		switch {
		case c.Role == prompt.RoleSubject:
			body = append(body, a.emphasize(c.Text, c.Weight))
			seenSubject = true
		case c.Origin == prompt.OriginUser && !seenSubject:
			lead = append(lead, c.Text)
		case c.Origin == prompt.OriginUser:
			trail = append(trail, c.Text)
		case c.Role == prompt.RoleStyle:
			styles = append(styles, a.emphasize(moodMovement(c.Text)+" "+c.Text, c.Weight), moodPhrase(c.Text))
		case c.Role == prompt.RoleArtist:
			artists = append(artists, a.emphasize("channeling the creative spirit of "+c.Text, c.Weight))
		default:
			body = append(body, a.emphasize(c.Text, c.Weight))
		}
	}

	parts := make([]string, 0, len(lead)+len(styles)+len(artists)+len(body)+len(trail)+len(a.capability.QualityTags))
	parts = append(parts, lead...)
	parts = append(parts, styles...)
	parts = append(parts, artists...)
	parts = append(parts, body...)
	parts = append(parts, a.capability.QualityTags...)
	parts = append(parts, trail...)

	return RenderedPrompt{
		Prompt:         strings.Join(parts, ", "),
		NegativePrompt: negativePrompt(a.capability),
		Model:          a.capability.ModelType,
		Settings:       copySettings(a.capability.RecommendedSettings),
	}
}

func (a *MoodAdapter) emphasize(text string, weight float64) string {
	if !a.capability.SupportsWeights || weight == prompt.NeutralWeight {
		return text
	}
	return text + "::" + formatWeight(weight)
}

func moodMovement(style string) string {
	return moodMovements[xxhash.Sum64String(style)%uint64(len(moodMovements))]
}

// moodPhrase hashes with a salt so movement and mood vary independently
func moodPhrase(style string) string {
	return moodPhrases[xxhash.Sum64String("mood:"+style)%uint64(len(moodPhrases))]
}
