package adapters

import (
	"strings"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/prompt"
	"github.com/cespare/xxhash/v2"
)

var narrativeIntros = []string{
	"A beautiful scene featuring",
	"An artistic depiction of",
	"A stunning visualization of",
	"A creative interpretation of",
	"An imaginative portrayal of",
}

// NarrativeAdapter renders flowing natural-language prompts for models that
// read descriptions rather than tag lists. Weights are ignored.
type NarrativeAdapter struct {
	capability Capability
}

// NewNarrativeAdapter creates a narrative-family adapter
func NewNarrativeAdapter(c Capability) Adapter {
	return &NarrativeAdapter{capability: c.clone()}
}

// Capability returns the model capability
func (a *NarrativeAdapter) Capability() Capability {
	return a.capability
}

// Render composes the clauses into sentences. User text before the subject
// opens the prompt and user text after it closes the prompt, both verbatim.
func (a *NarrativeAdapter) Render(cp prompt.CanonicalPrompt) RenderedPrompt {
	var (
		lead, trail     []string
		styles, artists []string
		details         []string
		subject         string
		seenSubject     bool
	)

	for _, c := range cp.Clauses() {
		switch {
		case c.Role == prompt.RoleSubject:
			subject = c.Text
			seenSubject = true
		case c.Origin == prompt.OriginUser && !seenSubject:
			lead = append(lead, c.Text)
		case c.Origin == prompt.OriginUser:
			trail = append(trail, c.Text)
		case c.Role == prompt.RoleStyle:
			styles = append(styles, c.Text)
		case c.Role == prompt.RoleArtist:
			artists = append(artists, c.Text)
		default:
			details = append(details, c.Text)
		}
	}

	sentences := make([]string, 0, 4)
	if len(lead) > 0 {
		sentences = append(sentences, sentence(strings.Join(lead, ", ")))
	}

	main := narrativeIntro(subject) + " " + subject
	for _, style := range styles {
		main += ", created as " + article(style) + " " + style
	}
	for _, artist := range artists {
		main += ", in the style reminiscent of " + artist + "'s work"
	}
	if len(details) > 0 {
		main += ", with " + joinNatural(details)
	}
	sentences = append(sentences, sentence(main))

	if len(a.capability.QualityTags) > 0 {
		sentences = append(sentences, sentence("With "+joinNatural(a.capability.QualityTags)))
	}
	if len(trail) > 0 {
		sentences = append(sentences, sentence(strings.Join(trail, ", ")))
	}

	return RenderedPrompt{
		Prompt:         strings.Join(sentences, " "),
		NegativePrompt: negativePrompt(a.capability),
		Model:          a.capability.ModelType,
		Settings:       copySettings(a.capability.RecommendedSettings),
	}
}

// narrativeIntro picks an opening phrase from the subject text so the same
// subject always reads the same way
func narrativeIntro(subject string) string {
	return narrativeIntros[xxhash.Sum64String(subject)%uint64(len(narrativeIntros))]
}

func article(word string) string {
	if word != "" && strings.ContainsRune("aeiouAEIOU", rune(word[0])) {
		return "an"
	}
	return "a"
}

// joinNatural joins items as "a, b and c"
func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if strings.ContainsAny(s[len(s)-1:], ".!?") {
		return s
	}
	return s + "."
}
