package mdview

import (
	"sort"
	"strings"

	"pkt.systems/mdview/internal/palette"
)

// Palette is the set of colors a theme applies.
type Palette = palette.Palette

// Theme names a palette and whether it is a dark one.
type Theme interface {
	Name() string
	Dark() bool
	Palette() Palette
}

type theme struct {
	name    string
	dark    bool
	palette Palette
}

func (t theme) Name() string     { return t.name }
func (t theme) Dark() bool       { return t.dark }
func (t theme) Palette() Palette { return t.palette }

// NewTheme returns a Theme from a palette.
func NewTheme(name string, dark bool, p Palette) Theme {
	return theme{name: name, dark: dark, palette: p}
}

var builtinThemes = map[string]Theme{
	"light": theme{name: "light", palette: palette.Light},
	"dark":  theme{name: "dark", dark: true, palette: palette.Dark},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name. An empty name selects the
// default theme.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return DefaultTheme(), true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	t, ok := builtinThemes[normalized]
	return t, ok
}

// DefaultTheme returns the light theme.
func DefaultTheme() Theme {
	return builtinThemes["light"]
}

// ThemeFor returns the dark theme when dark is set and the light one
// otherwise.
func ThemeFor(dark bool) Theme {
	if dark {
		return builtinThemes["dark"]
	}
	return builtinThemes["light"]
}
