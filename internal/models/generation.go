package models

// GenerationRequest is the body of /generate and /generate/batch.
// Field names are the wire contract of the web client and must not change.
type GenerationRequest struct {
	SubjectType   string `json:"subject_type"`   // "random", "all" or a category name
	ArtistStyle   string `json:"artist_style"`   // "random", "none" or an artist name
	ImageType     string `json:"image_type"`     // "random" or an image type
	Insanity      any    `json:"insanity"`       // Complexity 0-10; numbers or numeric strings
	ManualSubject string `json:"manual_subject"` // Overrides subject_type when non-empty
	Prefix        string `json:"prefix"`
	Suffix        string `json:"suffix"`

	// Single-model mode only, ignored by /generate/batch
	ModelType string `json:"model_type"`

	// Optional seed for reproducibility
	Seed *uint64 `json:"seed,omitempty"`
}

// ModelSettingsResponse is returned by /models/:model_type/settings
type ModelSettingsResponse struct {
	ModelType               string         `json:"model_type"`
	RecommendedSettings     map[string]any `json:"recommended_settings"`
	SupportsNegativePrompts bool           `json:"supports_negative_prompts"`
	SupportsWeights         bool           `json:"supports_weights"`
}

// ErrorResponse is the JSON body for failed requests
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
