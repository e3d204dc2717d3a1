package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/idlesign/mednsktest/internal/ui/components"
	"github.com/idlesign/mednsktest/internal/ui/theme"
)

// Summary is the final score of a session.
//
// Limit is the configured question limit and is the denominator of Rate
// even when fewer questions were asked; Asked is recorded for history only.
type Summary struct {
	Limit     int
	Asked     int
	Successes int
	Failures  int
	Rate      int // percent
}

// Build derives a Summary from the configured limit and the failure count
// of the first pass.
func Build(limit, asked, failures int) Summary {
	s := Summary{
		Limit:     limit,
		Asked:     asked,
		Failures:  failures,
		Successes: limit - failures,
	}
	if limit > 0 {
		s.Rate = int(math.Round(float64(s.Successes) * 100 / float64(limit)))
	}
	return s
}

const divider = "=============================="

// Render prints the summary. With styled set the rate is coloured and a
// rate bar is drawn under it.
func Render(w io.Writer, s Summary, styled bool) {
	var b strings.Builder
	b.WriteString("\n" + divider + "\n")
	b.WriteString("Итого:\n")
	fmt.Fprintf(&b, "  всего вопросов - %d\n", s.Limit)
	fmt.Fprintf(&b, "  верных ответов - %d\n", s.Successes)
	fmt.Fprintf(&b, "  ошибок - %d\n", s.Failures)

	rate := fmt.Sprintf("  успешность - %d%%", s.Rate)
	if styled {
		rate = theme.RateStyle(s.Rate).Render(rate)
	}
	b.WriteString(rate + "\n")

	if styled {
		b.WriteString("  " + components.NewRateBar(s.Rate, len(divider)-2).View() + "\n")
	}

	fmt.Fprint(w, b.String())
}
