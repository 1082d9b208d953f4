package randid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_Length(t *testing.T) {
	for _, n := range []int{-1, 0, 1, 20, 300} {
		got := Generate(n)
		assert.Len(t, got, max(n, 0), "Generate(%d)", n)
		for _, r := range got {
			assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected rune %q", r)
		}
	}
}

func TestGenerate_Distinct(t *testing.T) {
	seen := make(map[string]struct{}, 500)
	for range 500 {
		seen[Generate(20)] = struct{}{}
	}
	assert.Len(t, seen, 500)
}

func TestGenerate_CoversAlphabet(t *testing.T) {
	sample := Generate(20_000)
	for _, r := range Alphabet {
		assert.True(t, strings.ContainsRune(sample, r), "rune %q never generated", r)
	}
}
