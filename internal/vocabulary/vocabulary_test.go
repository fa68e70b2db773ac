package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	tables, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"object", "animal", "humanoid", "landscape", "concept"}, tables.Categories())
	for _, c := range tables.Categories() {
		assert.NotEmpty(t, tables.Subjects(c), "category %s", c)
	}
	assert.NotEmpty(t, tables.Artists())
	assert.NotEmpty(t, tables.ImageTypes())
	assert.GreaterOrEqual(t, len(tables.Modifiers()), 5)
	assert.NotEmpty(t, tables.Cameras())
	assert.NotEmpty(t, tables.Lenses())
}

func TestLookupsAreCaseInsensitive(t *testing.T) {
	tables := MustDefault()

	artist, ok := tables.LookupArtist("greg rutkowski")
	require.True(t, ok)
	assert.Equal(t, "Greg Rutkowski", artist)

	imageType, ok := tables.LookupImageType(" 3d RENDER ")
	require.True(t, ok)
	assert.Equal(t, "3D render", imageType)

	_, ok = tables.LookupArtist("Nobody In Particular")
	assert.False(t, ok)

	assert.True(t, tables.HasCategory("Animal"))
	assert.False(t, tables.HasCategory("vehicle"))
	assert.Nil(t, tables.Subjects("vehicle"))
	assert.True(t, tables.IsPhotographic("Photograph"))
	assert.False(t, tables.IsPhotographic("oil painting"))
}

func TestAccessorsReturnCopies(t *testing.T) {
	tables := MustDefault()

	subjects := tables.Subjects("animal")
	subjects[0] = "mutated"
	assert.NotEqual(t, "mutated", tables.Subjects("animal")[0])

	mods := tables.Modifiers()
	mods[0].Text = "mutated"
	assert.NotEqual(t, "mutated", tables.Modifiers()[0].Text)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "no categories",
			yaml: "artists: [a]\nimage_types: [b]\nmodifiers: [{text: c}]\n",
		},
		{
			name: "empty category",
			yaml: "categories: [{name: animal, subjects: []}]\nartists: [a]\nimage_types: [b]\nmodifiers: [{text: c}]\n",
		},
		{
			name: "duplicate category",
			yaml: "categories: [{name: animal, subjects: [cat]}, {name: Animal, subjects: [dog]}]\nartists: [a]\nimage_types: [b]\nmodifiers: [{text: c}]\n",
		},
		{
			name: "unknown modifier kind",
			yaml: "categories: [{name: animal, subjects: [cat]}]\nartists: [a]\nimage_types: [b]\nmodifiers: [{text: c, kind: loud}]\n",
		},
		{
			name: "photography without cameras",
			yaml: "categories: [{name: animal, subjects: [cat]}]\nartists: [a]\nimage_types: [b]\nphotography: {image_types: [b]}\nmodifiers: [{text: c}]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidTables)
		})
	}
}

func TestParseDefaultsModifierKind(t *testing.T) {
	tables, err := Parse([]byte("categories: [{name: animal, subjects: [cat]}]\nartists: [a]\nimage_types: [photograph]\nmodifiers: [{text: sharp}]\n"))
	require.NoError(t, err)
	assert.Equal(t, []Modifier{{Text: "sharp", Kind: KindDetail}}, tables.Modifiers())
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("categories: [unterminated"))
	assert.Error(t, err)
}
