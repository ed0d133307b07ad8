package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		rows, level, want int
	}{
		{0, 1, 0},
		{1, 1, 31},
		{2, 1, 62},
		{3, 1, 94},
		{4, 1, 128},
		{1, 3, 93},
		{4, 2, 256},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Points(tt.rows, tt.level), "%d rows at level %d", tt.rows, tt.level)
	}
}

func TestInterval(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1000*time.Millisecond, cfg.Interval(1))
	assert.Equal(t, 950*time.Millisecond, cfg.Interval(2))
	assert.Equal(t, 550*time.Millisecond, cfg.Interval(10))
	assert.Equal(t, 50*time.Millisecond, cfg.Interval(20))
	assert.Equal(t, 50*time.Millisecond, cfg.Interval(500), "never below the floor")
}
