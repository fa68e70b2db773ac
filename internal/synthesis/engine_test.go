package synthesis

import (
	"context"
	"strings"
	"testing"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/adapters"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/models"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/prompt"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catVocabulary = `
categories:
  - name: animal
    subjects: [cat]
artists: [Moebius]
image_types: [photograph, watercolor]
photography:
  image_types: [photograph]
  cameras: [Nikon Z9]
  lenses: [85mm lens]
modifiers:
  - text: sharp focus
  - text: rim lighting
  - text: studio lighting
  - text: highly detailed
  - text: award winning
    kind: quality
  - text: octane render
`

func fixedSeed(seed uint64) Option {
	return WithSeedSource(func() uint64 { return seed })
}

func newEngine(t *testing.T, options ...Option) *Engine {
	t.Helper()
	registry, err := adapters.DefaultRegistry()
	require.NoError(t, err)
	engine, err := NewEngine(vocabulary.MustDefault(), registry, prompt.DefaultSelectorOptions(), options...)
	require.NoError(t, err)
	return engine
}

func newCatEngine(t *testing.T) *Engine {
	t.Helper()
	tables, err := vocabulary.Parse([]byte(catVocabulary))
	require.NoError(t, err)
	registry, err := adapters.DefaultRegistry()
	require.NoError(t, err)
	engine, err := NewEngine(tables, registry, prompt.DefaultSelectorOptions(), fixedSeed(1))
	require.NoError(t, err)
	return engine
}

func catRequest(insanity any) *models.GenerationRequest {
	return &models.GenerationRequest{
		SubjectType: "animal",
		ArtistStyle: "none",
		ImageType:   "photograph",
		Insanity:    insanity,
	}
}

func TestNewEngineValidatesOptions(t *testing.T) {
	registry, err := adapters.DefaultRegistry()
	require.NoError(t, err)

	opts := prompt.DefaultSelectorOptions()
	opts.Policy = "sometimes"
	_, err = NewEngine(vocabulary.MustDefault(), registry, opts)
	assert.Error(t, err)

	_, err = NewEngine(nil, registry, prompt.DefaultSelectorOptions())
	assert.Error(t, err)
}

func TestListModels(t *testing.T) {
	engine := newEngine(t)

	listed := engine.ListModels()
	assert.Len(t, listed, 3)
	assert.Equal(t, "Qwen", listed["qwen"].DisplayName)
	assert.Equal(t, []string{"sdxl", "qwen", "flux"}, engine.ModelIDs())
}

func TestGenerateBatchReturnsEveryModel(t *testing.T) {
	engine := newEngine(t)

	for seed := uint64(0); seed < 25; seed++ {
		req := &models.GenerationRequest{Seed: &seed}
		batch, comp, err := engine.GenerateBatch(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, batch, 3)

		subject := comp.Prompt.Subject().Text
		for id, rendered := range batch {
			assert.Equal(t, id, rendered.Model)
			assert.Equal(t, seed, rendered.Seed)
			assert.Contains(t, rendered.Prompt, subject, "%s lost the shared subject", id)
			if comp.Selection.Artist != "" {
				assert.Contains(t, rendered.Prompt, comp.Selection.Artist)
			}
			assert.Contains(t, rendered.Prompt, comp.Selection.ImageType)
		}
	}
}

func TestGenerateBatchIgnoresModelType(t *testing.T) {
	engine := newEngine(t, fixedSeed(3))

	batch, _, err := engine.GenerateBatch(context.Background(), &models.GenerationRequest{ModelType: "nonexistent"})
	require.NoError(t, err)
	assert.Len(t, batch, 3)
}

func TestGenerateBatchCancelled(t *testing.T) {
	engine := newEngine(t, fixedSeed(3))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := engine.GenerateBatch(ctx, &models.GenerationRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestModifierCountIsMonotonic(t *testing.T) {
	engine := newEngine(t)

	for seed := uint64(0); seed < 10; seed++ {
		previous := -1
		for insanity := 0; insanity <= 10; insanity++ {
			req := &models.GenerationRequest{Insanity: insanity, Seed: &seed}
			comp, err := engine.Compose(req, prompt.ModeBatch)
			require.NoError(t, err)

			count := comp.Prompt.DetailCount()
			assert.GreaterOrEqual(t, count, previous, "seed %d insanity %d", seed, insanity)
			previous = count
		}
	}
}

func TestManualSubjectIsVerbatim(t *testing.T) {
	engine := newEngine(t, fixedSeed(9))

	for _, subjectType := range []string{"random", "object", "animal", "humanoid", "landscape", "concept"} {
		req := &models.GenerationRequest{
			SubjectType:   subjectType,
			ManualSubject: "a (very) odd teapot",
			Insanity:      10,
		}
		batch, comp, err := engine.GenerateBatch(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "a (very) odd teapot", comp.Prompt.Subject().Text)
		for id, rendered := range batch {
			assert.Contains(t, rendered.Prompt, "a (very) odd teapot", id)
		}
	}
}

func TestNegativePromptFollowsCapability(t *testing.T) {
	engine := newEngine(t)
	listed := engine.ListModels()

	for seed := uint64(0); seed < 10; seed++ {
		batch, _, err := engine.GenerateBatch(context.Background(), &models.GenerationRequest{Seed: &seed})
		require.NoError(t, err)

		for id, rendered := range batch {
			if listed[id].SupportsNegativePrompts {
				assert.NotEmpty(t, rendered.NegativePrompt, id)
			} else {
				assert.Empty(t, rendered.NegativePrompt, id)
			}
		}
	}
}

func TestFixedSeedIsReproducible(t *testing.T) {
	engine := newEngine(t)
	seed := uint64(1234)
	req := &models.GenerationRequest{Insanity: 8, Seed: &seed}

	first, firstComp, err := engine.GenerateBatch(context.Background(), req)
	require.NoError(t, err)
	second, secondComp, err := engine.GenerateBatch(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, firstComp.Selection, secondComp.Selection)
	assert.Equal(t, first, second)

	single, _, err := engine.GenerateOne(context.Background(), &models.GenerationRequest{Insanity: 8, Seed: &seed, ModelType: "flux"})
	require.NoError(t, err)
	assert.Equal(t, first["flux"], single)
}

func TestGenerateOneDefaultsToSDXL(t *testing.T) {
	engine := newEngine(t, fixedSeed(5))

	rendered, comp, err := engine.GenerateOne(context.Background(), &models.GenerationRequest{})
	require.NoError(t, err)
	assert.Equal(t, "sdxl", rendered.Model)
	assert.Equal(t, uint64(5), rendered.Seed)
	assert.Equal(t, prompt.DefaultComplexity, comp.Request.Complexity)
	assert.Equal(t, 40, rendered.Settings["steps"])
}

func TestGenerateOneErrors(t *testing.T) {
	engine := newEngine(t)

	_, _, err := engine.GenerateOne(context.Background(), &models.GenerationRequest{ModelType: "dalle"})
	assert.ErrorIs(t, err, prompt.ErrUnknownModel)

	_, _, err = engine.GenerateOne(context.Background(), &models.GenerationRequest{Insanity: "lots"})
	assert.ErrorIs(t, err, prompt.ErrInvalidParameter)
}

func TestStrictPolicy(t *testing.T) {
	registry, err := adapters.DefaultRegistry()
	require.NoError(t, err)
	opts := prompt.DefaultSelectorOptions()
	opts.Policy = prompt.PolicyStrict
	engine, err := NewEngine(vocabulary.MustDefault(), registry, opts)
	require.NoError(t, err)

	_, _, err = engine.GenerateOne(context.Background(), &models.GenerationRequest{ArtistStyle: "Nobody In Particular"})
	assert.ErrorIs(t, err, prompt.ErrUnknownArtist)

	_, _, err = engine.GenerateBatch(context.Background(), &models.GenerationRequest{ImageType: "tintype"})
	assert.ErrorIs(t, err, prompt.ErrUnknownImageType)
}

func TestCatExample(t *testing.T) {
	engine := newCatEngine(t)

	rendered, _, err := engine.GenerateOne(context.Background(), catRequest(0))
	require.NoError(t, err)
	assert.Equal(t, "cat, photograph, masterpiece, best quality, 8k uhd", rendered.Prompt)

	batch, _, err := engine.GenerateBatch(context.Background(), catRequest(0))
	require.NoError(t, err)
	assert.Empty(t, batch["qwen"].NegativePrompt)
	assert.NotContains(t, batch["qwen"].Prompt, ",,")
}

func TestCatExampleAtMaximumComplexity(t *testing.T) {
	engine := newCatEngine(t)

	calm, err := engine.Compose(catRequest(0), prompt.ModeBatch)
	require.NoError(t, err)
	wild, err := engine.Compose(catRequest(10), prompt.ModeBatch)
	require.NoError(t, err)
	assert.Greater(t, wild.Prompt.DetailCount(), calm.Prompt.DetailCount())

	batch, _, err := engine.GenerateBatch(context.Background(), catRequest(10))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(batch["sdxl"].Prompt, "(cat:1.4), photograph"))
	assert.Contains(t, batch["flux"].Prompt, "cat::1.4")
	assert.NotContains(t, batch["qwen"].Prompt, "1.4")
	assert.Contains(t, batch["sdxl"].Prompt, "shot on Nikon Z9 with 85mm lens")
}
