package components

import (
	"strings"
	"sync"
)

const maxCachedPad = 200

var (
	padCache [maxCachedPad + 1]string
	padOnce  sync.Once
)

// Pad returns a string of n spaces. Widths up to maxCachedPad come from a
// shared cache.
func Pad(n int) string {
	if n <= 0 {
		return ""
	}
	if n > maxCachedPad {
		return strings.Repeat(" ", n)
	}
	padOnce.Do(func() {
		full := strings.Repeat(" ", maxCachedPad)
		for i := range padCache {
			padCache[i] = full[:i]
		}
	})
	return padCache[n]
}

// PadRight pads s with spaces to width display cells. width is measured by
// the caller-supplied function so styled strings are handled.
func PadRight(s string, width int, measure func(string) int) string {
	return s + Pad(width-measure(s))
}
