package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{name: "seconds", in: 1500 * time.Millisecond, want: "1.50s"},
		{name: "minutes", in: 2*time.Minute + 3*time.Second, want: "2m3.00s"},
		{name: "hours", in: time.Hour + time.Minute, want: "1h1m0.00s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatUptime(tt.in))
		})
	}
}
