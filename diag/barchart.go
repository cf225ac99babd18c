package diag

import (
	"fmt"
	"strings"

	"github.com/coroweave/ringcoro/internal/klog"
)

// maxBarWidth mirrors TimeIntervalHistogram's maxBarSize: the widest a
// single bin's bar is ever drawn, regardless of how far its count is above
// every other bin's.
const maxBarWidth = 71

// barChar and halfBarChar are TimeIntervalHistogram's two canvas glyphs: a
// full unit of bar, and the partial unit left over when a bin's count
// does not divide the chart's scale evenly.
const (
	barChar     = '#'
	halfBarChar = '-'
)

// BarChart renders h as a left-to-right bar per regular bin, scaled so the
// busiest bin fills maxBarWidth columns, the same proportional layout
// DisplayHistGraph drew into its fixed character canvas. banner, if
// non-empty, is printed as a title line above the bars.
func BarChart(h *Histogram, banner string) string {
	var b strings.Builder
	if banner != "" {
		fmt.Fprintln(&b, banner)
	}

	max := h.MaxBinCount()
	for i := 0; i < h.NBins(); i++ {
		count := h.BinCount(i + 1)
		lo := h.minBin + h.countsPerBin*uint64(i)
		hi := lo + h.countsPerBin - 1

		bar := scaleBar(count, max)
		if klog.Colorized() {
			bar = colorizeBar(bar)
		}
		fmt.Fprintf(&b, "%6d-%6d |%s %d\n", lo, hi, bar, count)
	}

	fmt.Fprintf(&b, "N = %-5d  mean = %.1f\n", h.NValues(), h.MeanValue())

	if over := h.BinCount(h.NBins() + 1); over > 0 {
		fmt.Fprintf(&b, "Over = %d, greatest value = %d\n", over, h.MaxValue())
	}

	return b.String()
}

// scaleBar draws count as a run of barChar proportional to max, with a
// trailing halfBarChar when the scaled length has a fractional remainder
// worth showing, matching the original's two-glyph bar resolution.
func scaleBar(count, max uint64) string {
	if max == 0 || count == 0 {
		return ""
	}

	scaled := count * maxBarWidth * 2 / max
	full := int(scaled / 2)
	if full > maxBarWidth {
		full = maxBarWidth
	}

	bar := strings.Repeat(string(barChar), full)
	if scaled%2 == 1 && full < maxBarWidth {
		bar += string(halfBarChar)
	}
	return bar
}

// colorizeBar wraps bar in a green ANSI escape sequence, used only when
// klog.Colorized reports stderr is a real terminal.
func colorizeBar(bar string) string {
	if bar == "" {
		return bar
	}
	return "\x1b[32m" + bar + "\x1b[0m"
}
