package embedded

import (
	_ "embed"
)

// Vocabulary and model catalog data, loaded once at startup
//
//go:embed data/vocabulary.yaml
var VocabularyYAML []byte

//go:embed data/models.yaml
var ModelsYAML []byte
