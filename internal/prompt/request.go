package prompt

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/models"
)

// Selector keywords
const (
	SelectorRandom = "random"
	SelectorAll    = "all" // alias of random kept for older clients
	SelectorNone   = "none"
)

const (
	MinComplexity     = 0
	MaxComplexity     = 10
	DefaultComplexity = 5

	// DefaultModel is used by single-model requests without model_type
	DefaultModel = "sdxl"

	maxTextLength = 1000
)

// Mode selects single-model or batch normalization
type Mode int

const (
	ModeSingle Mode = iota
	ModeBatch
)

// ModelLookup reports whether a model is registered
type ModelLookup interface {
	HasModel(id string) bool
}

// CategoryLookup reports whether a subject category exists
type CategoryLookup interface {
	HasCategory(name string) bool
}

// Request is a validated generation request with defaults filled in
type Request struct {
	SubjectType   string // SelectorRandom or a lower-case category
	ArtistStyle   string // SelectorRandom, SelectorNone or an explicit name
	ImageType     string // SelectorRandom or an explicit image type
	Complexity    int
	ManualSubject string
	Prefix        string
	Suffix        string
	ModelType     string // empty in batch mode
	Seed          *uint64
}

// Normalizer validates raw requests against the vocabulary and model registry
type Normalizer struct {
	categories CategoryLookup
	registry   ModelLookup
}

// NewNormalizer creates a new normalizer
func NewNormalizer(categories CategoryLookup, registry ModelLookup) *Normalizer {
	return &Normalizer{
		categories: categories,
		registry:   registry,
	}
}

// Normalize validates raw and fills defaults. It has no side effects.
func (n *Normalizer) Normalize(raw *models.GenerationRequest, mode Mode) (Request, error) {
	if raw == nil {
		raw = &models.GenerationRequest{}
	}

	complexity, err := parseComplexity(raw.Insanity)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Complexity: complexity,
		Seed:       raw.Seed,
	}

	subjectType := strings.ToLower(strings.TrimSpace(raw.SubjectType))
	switch {
	case subjectType == "" || subjectType == SelectorRandom || subjectType == SelectorAll:
		req.SubjectType = SelectorRandom
	case n.categories.HasCategory(subjectType):
		req.SubjectType = subjectType
	default:
		return Request{}, fmt.Errorf("%w: unknown subject_type %q", ErrInvalidParameter, raw.SubjectType)
	}

	artist := strings.TrimSpace(raw.ArtistStyle)
	switch strings.ToLower(artist) {
	case "", SelectorRandom, SelectorAll:
		req.ArtistStyle = SelectorRandom
	case SelectorNone:
		req.ArtistStyle = SelectorNone
	default:
		req.ArtistStyle = artist
	}

	imageType := strings.TrimSpace(raw.ImageType)
	switch strings.ToLower(imageType) {
	case "", SelectorRandom, SelectorAll:
		req.ImageType = SelectorRandom
	case SelectorNone:
		return Request{}, fmt.Errorf("%w: image_type cannot be %q", ErrInvalidParameter, SelectorNone)
	default:
		req.ImageType = imageType
	}

	req.ManualSubject = strings.TrimSpace(raw.ManualSubject)
	req.Prefix = strings.TrimSpace(raw.Prefix)
	req.Suffix = strings.TrimSpace(raw.Suffix)

	texts := []struct {
		field string
		value string
	}{
		{"manual_subject", req.ManualSubject},
		{"prefix", req.Prefix},
		{"suffix", req.Suffix},
		{"artist_style", req.ArtistStyle},
		{"image_type", req.ImageType},
	}
	for _, tf := range texts {
		if utf8.RuneCountInString(tf.value) > maxTextLength {
			return Request{}, fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidParameter, tf.field, maxTextLength)
		}
	}

	if mode == ModeSingle {
		modelType := strings.ToLower(strings.TrimSpace(raw.ModelType))
		if modelType == "" {
			modelType = DefaultModel
		}
		if !n.registry.HasModel(modelType) {
			return Request{}, fmt.Errorf("%w: %s", ErrUnknownModel, modelType)
		}
		req.ModelType = modelType
	}

	return req, nil
}

// parseComplexity accepts integral JSON numbers and numeric strings and clamps
// them to [MinComplexity, MaxComplexity]
func parseComplexity(v any) (int, error) {
	var f float64
	switch x := v.(type) {
	case nil:
		return DefaultComplexity, nil
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: insanity must be an integer, got %q", ErrInvalidParameter, x.String())
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return DefaultComplexity, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: insanity must be an integer, got %q", ErrInvalidParameter, x)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%w: insanity must be an integer, got %T", ErrInvalidParameter, v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: insanity must be an integer, got %v", ErrInvalidParameter, f)
	}

	return clampComplexity(f), nil
}

func clampComplexity(f float64) int {
	if f < MinComplexity {
		return MinComplexity
	}
	if f > MaxComplexity {
		return MaxComplexity
	}
	return int(f)
}
