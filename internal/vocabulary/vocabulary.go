package vocabulary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/prompt-forge-api/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// Modifier kinds
const (
	KindDetail  = "detail"
	KindQuality = "quality"
)

// ErrInvalidTables is returned when vocabulary data fails validation on load
var ErrInvalidTables = errors.New("invalid vocabulary tables")

// Modifier is a descriptive term the selector can add as complexity rises
type Modifier struct {
	Text string `yaml:"text"`
	Kind string `yaml:"kind"`
}

type category struct {
	Name     string   `yaml:"name"`
	Subjects []string `yaml:"subjects"`
}

type photography struct {
	ImageTypes []string `yaml:"image_types"`
	Cameras    []string `yaml:"cameras"`
	Lenses     []string `yaml:"lenses"`
}

type document struct {
	Categories  []category  `yaml:"categories"`
	Artists     []string    `yaml:"artists"`
	ImageTypes  []string    `yaml:"image_types"`
	Photography photography `yaml:"photography"`
	Modifiers   []Modifier  `yaml:"modifiers"`
}

// Tables holds the read-only vocabulary. A Tables value is never mutated after
// Parse returns, so it is safe to share between goroutines.
type Tables struct {
	categories  []category
	byCategory  map[string]int
	artists     []string
	artistIndex map[string]string
	imageTypes  []string
	imageIndex  map[string]string
	photoTypes  map[string]bool
	cameras     []string
	lenses      []string
	modifiers   []Modifier
}

// Default parses the embedded vocabulary
func Default() (*Tables, error) {
	return Parse(embedded.VocabularyYAML)
}

// MustDefault is Default for process startup and tests
func MustDefault() *Tables {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// Parse decodes and validates vocabulary YAML
func Parse(data []byte) (*Tables, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}

	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("%w: no subject categories", ErrInvalidTables)
	}
	if len(doc.Artists) == 0 {
		return nil, fmt.Errorf("%w: no artists", ErrInvalidTables)
	}
	if len(doc.ImageTypes) == 0 {
		return nil, fmt.Errorf("%w: no image types", ErrInvalidTables)
	}
	if len(doc.Modifiers) == 0 {
		return nil, fmt.Errorf("%w: no modifiers", ErrInvalidTables)
	}

	t := &Tables{
		byCategory:  make(map[string]int, len(doc.Categories)),
		artistIndex: make(map[string]string, len(doc.Artists)),
		imageIndex:  make(map[string]string, len(doc.ImageTypes)),
		photoTypes:  make(map[string]bool, len(doc.Photography.ImageTypes)),
		cameras:     doc.Photography.Cameras,
		lenses:      doc.Photography.Lenses,
	}

	for _, c := range doc.Categories {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" {
			return nil, fmt.Errorf("%w: category without name", ErrInvalidTables)
		}
		if _, dup := t.byCategory[name]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidTables, name)
		}
		if len(c.Subjects) == 0 {
			return nil, fmt.Errorf("%w: category %q has no subjects", ErrInvalidTables, name)
		}
		t.byCategory[name] = len(t.categories)
		t.categories = append(t.categories, category{Name: name, Subjects: c.Subjects})
	}

	for _, a := range doc.Artists {
		t.artists = append(t.artists, a)
		t.artistIndex[strings.ToLower(a)] = a
	}
	for _, it := range doc.ImageTypes {
		t.imageTypes = append(t.imageTypes, it)
		t.imageIndex[strings.ToLower(it)] = it
	}
	for _, pt := range doc.Photography.ImageTypes {
		t.photoTypes[strings.ToLower(pt)] = true
	}
	if len(t.photoTypes) > 0 && (len(t.cameras) == 0 || len(t.lenses) == 0) {
		return nil, fmt.Errorf("%w: photographic image types need cameras and lenses", ErrInvalidTables)
	}

	for _, m := range doc.Modifiers {
		switch m.Kind {
		case KindDetail, KindQuality:
		case "":
			m.Kind = KindDetail
		default:
			return nil, fmt.Errorf("%w: modifier %q has unknown kind %q", ErrInvalidTables, m.Text, m.Kind)
		}
		t.modifiers = append(t.modifiers, m)
	}

	return t, nil
}

// Categories returns category names in table order
func (t *Tables) Categories() []string {
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

// HasCategory reports whether name is a defined subject category
func (t *Tables) HasCategory(name string) bool {
	_, ok := t.byCategory[strings.ToLower(name)]
	return ok
}

// Subjects returns the subjects of a category, or nil if it does not exist
func (t *Tables) Subjects(categoryName string) []string {
	idx, ok := t.byCategory[strings.ToLower(categoryName)]
	if !ok {
		return nil
	}
	return append([]string(nil), t.categories[idx].Subjects...)
}

func (t *Tables) Artists() []string {
	return append([]string(nil), t.artists...)
}

func (t *Tables) ImageTypes() []string {
	return append([]string(nil), t.imageTypes...)
}

func (t *Tables) Modifiers() []Modifier {
	return append([]Modifier(nil), t.modifiers...)
}

func (t *Tables) Cameras() []string {
	return append([]string(nil), t.cameras...)
}

func (t *Tables) Lenses() []string {
	return append([]string(nil), t.lenses...)
}

// LookupArtist returns the canonical spelling of an artist name
func (t *Tables) LookupArtist(name string) (string, bool) {
	a, ok := t.artistIndex[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// LookupImageType returns the canonical spelling of an image type
func (t *Tables) LookupImageType(name string) (string, bool) {
	it, ok := t.imageIndex[strings.ToLower(strings.TrimSpace(name))]
	return it, ok
}

// IsPhotographic reports whether an image type gets camera details
func (t *Tables) IsPhotographic(imageType string) bool {
	return t.photoTypes[strings.ToLower(imageType)]
}
