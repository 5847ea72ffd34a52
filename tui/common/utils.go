package common

import (
	"fmt"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Truncate shortens s to at most width display cells, ANSI-aware, appending
// an ellipsis when anything is cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	// ansi.Truncate's width already accounts for the tail.
	return ansi.Truncate(s, width, "…")
}

// RelativeTime renders t against now the way the feed shows timestamps:
// "just now", "12m ago", "3h ago", "5d ago", then the calendar date.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 02, 2006")
	}
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders a one-line bar chart of the values. Used by the admin
// dashboard for the views-by-day series.
func Sparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}
	max := 0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	out := make([]rune, 0, len(values))
	for _, v := range values {
		if v < 0 {
			v = 0
		}
		idx := 0
		if max > 0 {
			idx = v * (len(sparkRunes) - 1) / max
		}
		out = append(out, sparkRunes[idx])
	}
	return string(out)
}
