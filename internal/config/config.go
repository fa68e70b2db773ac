package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/prompt"
)

// Config holds the application configuration
// Note: the service is stateless - no database or auth secrets needed
type Config struct {
	// Environment
	Environment string
	Port        string

	// CORS
	CORSOrigins []string // allowed browser origins for the presentation layer

	// Synthesis
	VocabularyPolicy     prompt.Policy // "lenient" or "strict" handling of explicit artist/image type
	SubjectWeightCeiling float64       // subject emphasis at insanity 10
	MaxModifiers         int           // cap on vocabulary modifiers per prompt

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		VocabularyPolicy:  prompt.Policy(strings.ToLower(getEnv("VOCABULARY_POLICY", string(prompt.PolicyLenient)))),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
	}

	defaults := prompt.DefaultSelectorOptions()

	ceiling, err := strconv.ParseFloat(getEnv("SUBJECT_WEIGHT_CEILING", strconv.FormatFloat(defaults.SubjectWeightCeiling, 'f', -1, 64)), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SUBJECT_WEIGHT_CEILING: %w", err)
	}
	cfg.SubjectWeightCeiling = ceiling

	maxModifiers, err := strconv.Atoi(getEnv("MAX_MODIFIERS", strconv.Itoa(defaults.MaxModifiers)))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_MODIFIERS: %w", err)
	}
	cfg.MaxModifiers = maxModifiers

	if err := cfg.SelectorOptions().Validate(); err != nil {
		return nil, fmt.Errorf("invalid synthesis settings: %w", err)
	}

	return cfg, nil
}

// SelectorOptions returns the synthesis tuning derived from the environment
func (c *Config) SelectorOptions() prompt.SelectorOptions {
	return prompt.SelectorOptions{
		Policy:               c.VocabularyPolicy,
		SubjectWeightCeiling: c.SubjectWeightCeiling,
		MaxModifiers:         c.MaxModifiers,
	}
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
