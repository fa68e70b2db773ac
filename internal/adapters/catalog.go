package adapters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/prompt-forge-api/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is returned when the model catalog fails validation
var ErrInvalidCatalog = errors.New("invalid model catalog")

type catalog struct {
	Models []Capability `yaml:"models"`
}

// DefaultRegistry builds the registry from the embedded model catalog
func DefaultRegistry() (*Registry, error) {
	return LoadCatalog(embedded.ModelsYAML)
}

// LoadCatalog parses catalog YAML and registers one adapter per entry, using
// the adapter family the entry names
func LoadCatalog(data []byte) (*Registry, error) {
	var doc catalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse model catalog: %w", err)
	}
	if len(doc.Models) == 0 {
		return nil, fmt.Errorf("%w: no models", ErrInvalidCatalog)
	}

	registry := NewRegistry()
	for i, c := range doc.Models {
		c.ModelType = strings.ToLower(strings.TrimSpace(c.ModelType))
		if c.ModelType == "" {
			return nil, fmt.Errorf("%w: model %d has no model_type", ErrInvalidCatalog, i)
		}

		factory, ok := families[c.Family]
		if !ok {
			return nil, fmt.Errorf("%w: model %s has unknown family %q", ErrInvalidCatalog, c.ModelType, c.Family)
		}

		if c.SupportsNegativePrompts && len(c.NegativeTerms) == 0 {
			return nil, fmt.Errorf("%w: model %s supports negative prompts but lists no negative_terms",
				ErrInvalidCatalog, c.ModelType)
		}

		if c.RecommendedSettings == nil {
			c.RecommendedSettings = map[string]any{}
		}

		if err := registry.Register(factory(c)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
	}

	return registry, nil
}
