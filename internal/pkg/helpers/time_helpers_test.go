package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"168h", 168 * time.Hour},
		{"60s", time.Minute},
		{"", 5 * time.Second},
		{"soon", 5 * time.Second},
		{"-1s", 5 * time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDuration(tt.in, 5*time.Second), tt.in)
	}
}
