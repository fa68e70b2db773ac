package logger

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	flags := log.Flags()
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}

func TestFormatFieldsSortsKeys(t *testing.T) {
	got := formatFields(Fields{"b": 2, "a": "x", "c": 1.5})
	assert.Equal(t, "{a=x, b=2, c=1.50}", got)
	assert.Equal(t, "", formatFields(nil))
}

func TestLevels(t *testing.T) {
	buf := captureLog(t)

	Info("hello", Fields{"k": "v"})
	Warn("careful", nil)
	Debug("details", nil)
	Error("broken", errors.New("boom"), Fields{"model": "sdxl"})

	out := buf.String()
	assert.Contains(t, out, "[INFO] hello {k=v}")
	assert.Contains(t, out, "[WARN] careful")
	assert.Contains(t, out, "[DEBUG] details")
	assert.Contains(t, out, "[ERROR] broken: boom {model=sdxl}")
}

func TestLogGenerationRequest(t *testing.T) {
	buf := captureLog(t)

	LogGenerationRequest(context.Background(), "batch", 3, 250*time.Microsecond, Fields{"request_id": "r1"})

	assert.Contains(t, buf.String(), "Generation request completed {duration_us=250, mode=batch, model_count=3, request_id=r1}")
}

func TestWithContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/generate", nil)
	c.Set("request_id", "abc")

	fields := WithContext(c)

	assert.Equal(t, Fields{"request_id": "abc", "method": "POST", "path": "/generate"}, fields)
}
