package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/prompt"
	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	success := statusCode < successStatusCodeThreshold
	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", success))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("status_code", statusCode)

	if success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}
	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordGeneration records one prompt synthesis on the request transaction
func (m *SentryMetrics) RecordGeneration(ctx context.Context, mode string, models []string, seed uint64, duration time.Duration, err error) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "prompt.synthesis")
	defer span.Finish()

	span.SetTag("mode", mode)
	span.SetTag("success", fmt.Sprintf("%t", err == nil))
	span.SetData("models", models)
	span.SetData("seed", seed)
	span.SetData("duration_us", duration.Microseconds())

	switch {
	case err == nil:
		span.Status = sentry.SpanStatusOK
	case isClientError(err):
		span.Status = sentry.SpanStatusInvalidArgument
	default:
		span.Status = sentry.SpanStatusInternalError
	}
	span.Description = fmt.Sprintf("Prompt synthesis: %s", mode)
}

func isClientError(err error) bool {
	return errors.Is(err, prompt.ErrInvalidParameter) ||
		errors.Is(err, prompt.ErrUnknownModel) ||
		errors.Is(err, prompt.ErrUnknownArtist) ||
		errors.Is(err, prompt.ErrUnknownImageType)
}
