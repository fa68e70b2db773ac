package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDisabledOutsideProduction(t *testing.T) {
	client, err := NewClient(context.Background(), "development")
	require.NoError(t, err)
	assert.False(t, client.Enabled())

	// no-ops when disabled
	client.RecordAPIRequest("/generate", 200, time.Millisecond)
	client.RecordGeneration("batch", 3, time.Millisecond, true)
}

func TestNilClientIsDisabled(t *testing.T) {
	var client *Client
	assert.False(t, client.Enabled())
	client.RecordGeneration("single", 1, time.Millisecond, true)
}

func TestIsClientError(t *testing.T) {
	assert.True(t, isClientError(fmt.Errorf("%w: bad", prompt.ErrInvalidParameter)))
	assert.True(t, isClientError(fmt.Errorf("%w: dalle", prompt.ErrUnknownModel)))
	assert.True(t, isClientError(prompt.ErrUnknownArtist))
	assert.False(t, isClientError(errors.New("boom")))
	assert.False(t, isClientError(context.Canceled))
}

func TestSentryMetricsWithoutClient(t *testing.T) {
	m := NewSentryMetrics()
	m.RecordAPIRequest(context.Background(), "/models", 200, time.Millisecond)
	m.RecordGeneration(context.Background(), "single", []string{"sdxl"}, 7, time.Microsecond, nil)
}
