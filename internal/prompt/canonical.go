package prompt

// Role is the semantic role of a clause
type Role string

const (
	RoleSubject  Role = "subject"
	RoleStyle    Role = "style"
	RoleArtist   Role = "artist"
	RoleModifier Role = "modifier"
	RoleQuality  Role = "quality"
)

// Origin tells adapters whether clause text came from the caller or from the
// vocabulary. User text is always rendered verbatim.
type Origin string

const (
	OriginUser       Origin = "user"
	OriginVocabulary Origin = "vocabulary"
)

const (
	NeutralWeight = 1.0
	MinWeight     = 0.0
	MaxWeight     = 2.0
)

// Clause is one semantic unit of a canonical prompt
type Clause struct {
	Text   string  `json:"text"`
	Role   Role    `json:"role"`
	Weight float64 `json:"weight"`
	Origin Origin  `json:"origin"`
}

// Emphasized reports whether the clause carries a non-neutral weight
func (c Clause) Emphasized() bool {
	return c.Weight != NeutralWeight
}

// CanonicalPrompt is the model-agnostic ordered clause list. Build is the only
// constructor; the clause slice is never exposed for mutation.
type CanonicalPrompt struct {
	clauses []Clause
}

// Clauses returns a copy of the clauses in canonical order
func (p CanonicalPrompt) Clauses() []Clause {
	return append([]Clause(nil), p.clauses...)
}

// Len returns the number of clauses
func (p CanonicalPrompt) Len() int {
	return len(p.clauses)
}

// Subject returns the subject clause
func (p CanonicalPrompt) Subject() Clause {
	for _, c := range p.clauses {
		if c.Role == RoleSubject {
			return c
		}
	}
	return Clause{}
}

// Count returns the number of clauses with the given role
func (p CanonicalPrompt) Count(role Role) int {
	n := 0
	for _, c := range p.clauses {
		if c.Role == role {
			n++
		}
	}
	return n
}

// DetailCount returns the number of vocabulary modifier and quality clauses,
// the part of the prompt that grows with complexity
func (p CanonicalPrompt) DetailCount() int {
	n := 0
	for _, c := range p.clauses {
		if c.Origin == OriginVocabulary && (c.Role == RoleModifier || c.Role == RoleQuality) {
			n++
		}
	}
	return n
}

func clampWeight(w float64) float64 {
	if w < MinWeight {
		return MinWeight
	}
	if w > MaxWeight {
		return MaxWeight
	}
	return w
}
