// Package theme holds the light/dark preference and its persistence in the
// key-value sidecar.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/kanban/internal/core/kv"
)

// Theme is the board color scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Key is the sidecar key holding the stored preference.
const Key = "theme"

// ErrInvalid is returned when a theme name is neither light nor dark.
var ErrInvalid = errors.New("invalid theme")

// Parse accepts "light" or "dark", case-insensitively.
func Parse(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case Light, Dark:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalid, s)
}

// IsValid reports whether t is light or dark.
func (t Theme) IsValid() bool {
	return t == Light || t == Dark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string { return string(t) }

// Preference reads and writes the theme choice. When nothing is stored the
// terminal's background decides.
type Preference struct {
	values     *kv.TypedKV[string]
	detectDark func() bool
}

// NewPreference creates a Preference over store. detectDark reports the
// terminal's background; nil means dark.
func NewPreference(store kv.KV, detectDark func() bool) *Preference {
	if detectDark == nil {
		detectDark = func() bool { return true }
	}
	return &Preference{
		values:     kv.Scoped[string](store, ""),
		detectDark: detectDark,
	}
}

// Detected returns the terminal-derived theme, ignoring any stored value.
func (p *Preference) Detected() Theme {
	if p.detectDark() {
		return Dark
	}
	return Light
}

// Load returns the stored theme, or the detected one when the key is absent
// or holds an unknown value. stored reports whether a valid value was found.
func (p *Preference) Load(ctx context.Context) (t Theme, stored bool, err error) {
	raw, err := p.values.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return p.Detected(), false, nil
	}
	if err != nil {
		return p.Detected(), false, fmt.Errorf("load theme: %w", err)
	}

	parsed, perr := Parse(raw)
	if perr != nil {
		return p.Detected(), false, nil
	}
	return parsed, true, nil
}

// Save stores t.
func (p *Preference) Save(ctx context.Context, t Theme) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalid, t)
	}
	if err := p.values.Set(ctx, Key, string(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Reset removes the stored value so detection applies again.
func (p *Preference) Reset(ctx context.Context) error {
	if err := p.values.Delete(ctx, Key); err != nil {
		return fmt.Errorf("reset theme: %w", err)
	}
	return nil
}
