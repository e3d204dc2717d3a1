package components

import (
	"strings"

	"github.com/idlesign/mednsktest/internal/ui/theme"
)

// RateBar draws a pass rate as a horizontal bar.
type RateBar struct {
	Rate  int // percent, clamped to 0..100
	Width int
}

// NewRateBar creates a RateBar of the given width.
func NewRateBar(rate, width int) RateBar {
	return RateBar{Rate: rate, Width: width}
}

// Filled returns how many cells of the bar are filled.
func (r RateBar) Filled() int {
	width := max(r.Width, 4)
	rate := min(max(r.Rate, 0), 100)
	return width * rate / 100
}

// View renders the bar.
func (r RateBar) View() string {
	width := max(r.Width, 4)
	filled := r.Filled()

	return theme.BarFilled.Render(strings.Repeat(" ", filled)) +
		theme.BarEmpty.Render(strings.Repeat(" ", width-filled))
}
