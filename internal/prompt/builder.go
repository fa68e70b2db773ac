package prompt

import (
	"strings"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/vocabulary"
)

// Builder assembles canonical prompts from resolved selections
type Builder struct{}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{}
}

// Build lays out clauses in canonical order: prefix, subject, artist, style,
// modifiers, suffix. Adapters may reorder but never drop or duplicate them.
func (b *Builder) Build(sel ResolvedSelection, prefix, suffix string) CanonicalPrompt {
	clauses := make([]Clause, 0, len(sel.Modifiers)+5)

	if p := strings.TrimSpace(prefix); p != "" {
		clauses = append(clauses, Clause{Text: p, Role: RoleModifier, Weight: NeutralWeight, Origin: OriginUser})
	}

	subjectOrigin := OriginVocabulary
	if sel.ManualSubject {
		subjectOrigin = OriginUser
	}
	clauses = append(clauses, Clause{
		Text:   sel.Subject,
		Role:   RoleSubject,
		Weight: clampWeight(sel.SubjectWeight),
		Origin: subjectOrigin,
	})

	if sel.Artist != "" {
		clauses = append(clauses, Clause{
			Text:   sel.Artist,
			Role:   RoleArtist,
			Weight: clampWeight(sel.ArtistWeight),
			Origin: OriginVocabulary,
		})
	}

	if sel.ImageType != "" {
		clauses = append(clauses, Clause{Text: sel.ImageType, Role: RoleStyle, Weight: NeutralWeight, Origin: OriginVocabulary})
	}

	for _, m := range sel.Modifiers {
		role := RoleModifier
		if m.Kind == vocabulary.KindQuality {
			role = RoleQuality
		}
		clauses = append(clauses, Clause{Text: m.Text, Role: role, Weight: NeutralWeight, Origin: OriginVocabulary})
	}

	if s := strings.TrimSpace(suffix); s != "" {
		clauses = append(clauses, Clause{Text: s, Role: RoleModifier, Weight: NeutralWeight, Origin: OriginUser})
	}

	return CanonicalPrompt{clauses: clauses}
}
