package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateBar_Filled(t *testing.T) {
	tests := []struct {
		rate  int
		width int
		want  int
	}{
		{0, 20, 0},
		{50, 20, 10},
		{100, 20, 20},
		{150, 20, 20},
		{-5, 20, 0},
		{100, 1, 4}, // minimum width
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NewRateBar(tt.rate, tt.width).Filled(), "rate=%d width=%d", tt.rate, tt.width)
	}
}
