package prompt

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/vocabulary"
)

// Policy decides how explicit artist and image type values are treated
type Policy string

const (
	// PolicyLenient accepts explicit values verbatim, using the table spelling
	// when the value is known
	PolicyLenient Policy = "lenient"
	// PolicyStrict rejects explicit values missing from the vocabulary
	PolicyStrict Policy = "strict"
)

const (
	defaultSubjectWeightCeiling = 1.4
	defaultMaxModifiers         = 5
	artistWeightStep            = 0.05
	cameraMinComplexity         = 4
	seedMixer                   = 0x9e3779b97f4a7c15
)

// SelectorOptions tunes how complexity maps to detail and emphasis
type SelectorOptions struct {
	Policy               Policy
	SubjectWeightCeiling float64 // subject weight at complexity 10
	MaxModifiers         int
}

// DefaultSelectorOptions returns the production defaults
func DefaultSelectorOptions() SelectorOptions {
	return SelectorOptions{
		Policy:               PolicyLenient,
		SubjectWeightCeiling: defaultSubjectWeightCeiling,
		MaxModifiers:         defaultMaxModifiers,
	}
}

// Validate checks option ranges
func (o SelectorOptions) Validate() error {
	if o.Policy != PolicyLenient && o.Policy != PolicyStrict {
		return fmt.Errorf("unknown vocabulary policy %q (allowed: lenient, strict)", o.Policy)
	}
	if o.SubjectWeightCeiling < NeutralWeight || o.SubjectWeightCeiling > MaxWeight {
		return fmt.Errorf("subject weight ceiling must be within [%.1f, %.1f], got %v",
			NeutralWeight, MaxWeight, o.SubjectWeightCeiling)
	}
	if o.MaxModifiers < 0 {
		return fmt.Errorf("max modifiers must not be negative, got %d", o.MaxModifiers)
	}
	return nil
}

// ResolvedSelection is the outcome of every random pick for one request.
// It is created once and shared read-only by every model rendering.
type ResolvedSelection struct {
	Subject         string
	SubjectCategory string // empty for manual subjects
	ManualSubject   bool
	SubjectWeight   float64
	Artist          string // empty when artist_style is none
	ArtistWeight    float64
	ImageType       string
	Modifiers       []vocabulary.Modifier
	Complexity      int
}

// Selector resolves random selectors into concrete vocabulary picks
type Selector struct {
	tables *vocabulary.Tables
	opts   SelectorOptions
}

// NewSelector creates a new selector
func NewSelector(tables *vocabulary.Tables, opts SelectorOptions) *Selector {
	return &Selector{
		tables: tables,
		opts:   opts,
	}
}

// NewRand returns the request-scoped random source for a seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^seedMixer))
}

// Select resolves req using rng. Picks always happen in the order subject,
// artist, image type, modifiers, camera so that a seed reproduces the
// selection exactly.
func (s *Selector) Select(req Request, rng *rand.Rand) (ResolvedSelection, error) {
	sel := ResolvedSelection{Complexity: req.Complexity}

	if req.ManualSubject != "" {
		sel.Subject = req.ManualSubject
		sel.ManualSubject = true
		sel.SubjectWeight = NeutralWeight
	} else {
		category := req.SubjectType
		if category == SelectorRandom {
			categories := s.tables.Categories()
			category = categories[rng.IntN(len(categories))]
		}
		subjects := s.tables.Subjects(category)
		if len(subjects) == 0 {
			return ResolvedSelection{}, fmt.Errorf("%w: unknown subject_type %q", ErrInvalidParameter, category)
		}
		sel.Subject = subjects[rng.IntN(len(subjects))]
		sel.SubjectCategory = category
		sel.SubjectWeight = s.subjectWeight(req.Complexity)
	}

	switch req.ArtistStyle {
	case SelectorNone:
	case SelectorRandom:
		artists := s.tables.Artists()
		sel.Artist = artists[rng.IntN(len(artists))]
	default:
		artist, err := s.resolveExplicit(req.ArtistStyle, s.tables.LookupArtist, ErrUnknownArtist)
		if err != nil {
			return ResolvedSelection{}, err
		}
		sel.Artist = artist
	}
	if sel.Artist != "" {
		sel.ArtistWeight = clampWeight(round2(NeutralWeight + artistWeightStep*float64(req.Complexity)))
	}

	if req.ImageType == SelectorRandom {
		imageTypes := s.tables.ImageTypes()
		sel.ImageType = imageTypes[rng.IntN(len(imageTypes))]
	} else {
		imageType, err := s.resolveExplicit(req.ImageType, s.tables.LookupImageType, ErrUnknownImageType)
		if err != nil {
			return ResolvedSelection{}, err
		}
		sel.ImageType = imageType
	}

	sel.Modifiers = s.pickModifiers(req.Complexity, rng)

	if req.Complexity >= cameraMinComplexity && s.tables.IsPhotographic(sel.ImageType) {
		cameras := s.tables.Cameras()
		lenses := s.tables.Lenses()
		camera := cameras[rng.IntN(len(cameras))]
		lens := lenses[rng.IntN(len(lenses))]
		sel.Modifiers = append(sel.Modifiers, vocabulary.Modifier{
			Text: fmt.Sprintf("shot on %s with %s", camera, lens),
			Kind: vocabulary.KindDetail,
		})
	}

	return sel, nil
}

// ModifierCount is the number of vocabulary modifiers drawn at a complexity
func (s *Selector) ModifierCount(complexity int) int {
	n := complexity / 2
	if n > s.opts.MaxModifiers {
		n = s.opts.MaxModifiers
	}
	if available := len(s.tables.Modifiers()); n > available {
		n = available
	}
	if n < 0 {
		return 0
	}
	return n
}

// pickModifiers draws without replacement with a partial Fisher-Yates shuffle
func (s *Selector) pickModifiers(complexity int, rng *rand.Rand) []vocabulary.Modifier {
	n := s.ModifierCount(complexity)
	if n == 0 {
		return nil
	}
	pool := s.tables.Modifiers()
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n:n]
}

func (s *Selector) subjectWeight(complexity int) float64 {
	span := s.opts.SubjectWeightCeiling - NeutralWeight
	w := NeutralWeight + span*float64(complexity)/MaxComplexity
	return clampWeight(round2(w))
}

func (s *Selector) resolveExplicit(value string, lookup func(string) (string, bool), unknown error) (string, error) {
	if canonical, ok := lookup(value); ok {
		return canonical, nil
	}
	if s.opts.Policy == PolicyStrict {
		return "", fmt.Errorf("%w: %q", unknown, value)
	}
	return value, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
