package synthesis

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/adapters"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/models"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/prompt"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/vocabulary"
	"golang.org/x/sync/errgroup"
)

// Engine turns generation requests into rendered prompts. It holds only
// read-only state, so one Engine serves concurrent requests without locking.
type Engine struct {
	registry   *adapters.Registry
	normalizer *prompt.Normalizer
	selector   *prompt.Selector
	builder    *prompt.Builder
	seeds      func() uint64
}

// Option configures an Engine
type Option func(*Engine)

// WithSeedSource replaces the source of seeds for requests that do not
// carry one
func WithSeedSource(fn func() uint64) Option {
	return func(e *Engine) {
		e.seeds = fn
	}
}

// Composition is everything resolved for one request before rendering.
// Batch rendering shares a single Composition across all models.
type Composition struct {
	Request   prompt.Request
	Seed      uint64
	Selection prompt.ResolvedSelection
	Prompt    prompt.CanonicalPrompt
}

// NewEngine creates a new engine
func NewEngine(tables *vocabulary.Tables, registry *adapters.Registry, opts prompt.SelectorOptions, options ...Option) (*Engine, error) {
	if tables == nil || registry == nil {
		return nil, fmt.Errorf("engine needs vocabulary tables and a model registry")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		registry:   registry,
		normalizer: prompt.NewNormalizer(tables, registry),
		selector:   prompt.NewSelector(tables, opts),
		builder:    prompt.NewPromptBuilder(),
		seeds:      rand.Uint64,
	}
	for _, opt := range options {
		opt(e)
	}
	return e, nil
}

// ListModels returns every registered model keyed by identifier
func (e *Engine) ListModels() map[string]adapters.Capability {
	caps := e.registry.Models()
	out := make(map[string]adapters.Capability, len(caps))
	for _, c := range caps {
		out[c.ModelType] = c
	}
	return out
}

// ModelIDs returns registered model identifiers in catalog order
func (e *Engine) ModelIDs() []string {
	return e.registry.IDs()
}

// Capability looks up a single model
func (e *Engine) Capability(modelType string) (adapters.Capability, error) {
	return e.registry.Capability(modelType)
}

// Compose normalizes raw, makes every random pick with one seeded source and
// builds the canonical prompt
func (e *Engine) Compose(raw *models.GenerationRequest, mode prompt.Mode) (*Composition, error) {
	req, err := e.normalizer.Normalize(raw, mode)
	if err != nil {
		return nil, err
	}

	seed := e.seeds()
	if req.Seed != nil {
		seed = *req.Seed
	}

	sel, err := e.selector.Select(req, prompt.NewRand(seed))
	if err != nil {
		return nil, err
	}

	return &Composition{
		Request:   req,
		Seed:      seed,
		Selection: sel,
		Prompt:    e.builder.Build(sel, req.Prefix, req.Suffix),
	}, nil
}

// GenerateOne renders a request for the model named in model_type
func (e *Engine) GenerateOne(ctx context.Context, raw *models.GenerationRequest) (adapters.RenderedPrompt, *Composition, error) {
	comp, err := e.Compose(raw, prompt.ModeSingle)
	if err != nil {
		return adapters.RenderedPrompt{}, nil, err
	}
	if err := ctx.Err(); err != nil {
		return adapters.RenderedPrompt{}, nil, err
	}

	rendered, err := e.registry.Render(comp.Prompt, comp.Request.ModelType)
	if err != nil {
		return adapters.RenderedPrompt{}, nil, err
	}
	rendered.Seed = comp.Seed
	return rendered, comp, nil
}

// GenerateBatch renders one composition through every registered model.
// Models that disappear from the registry mid-batch are left out of the
// result rather than failing the batch.
func (e *Engine) GenerateBatch(ctx context.Context, raw *models.GenerationRequest) (map[string]adapters.RenderedPrompt, *Composition, error) {
	comp, err := e.Compose(raw, prompt.ModeBatch)
	if err != nil {
		return nil, nil, err
	}

	ids := e.registry.IDs()
	results := make([]*adapters.RenderedPrompt, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rendered, err := e.registry.Render(comp.Prompt, id)
			if errors.Is(err, prompt.ErrUnknownModel) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", id, err)
			}
			rendered.Seed = comp.Seed
			results[i] = &rendered
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	out := make(map[string]adapters.RenderedPrompt, len(ids))
	for i, id := range ids {
		if results[i] != nil {
			out[id] = *results[i]
		}
	}
	return out, comp, nil
}
