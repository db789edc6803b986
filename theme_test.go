package mdview

import (
	"reflect"
	"testing"

	"pkt.systems/mdview/internal/palette"
)

func TestAvailableThemes(t *testing.T) {
	want := []string{"dark", "light"}
	if got := AvailableThemes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestThemeByName(t *testing.T) {
	theme, ok := ThemeByName("")
	if !ok || theme.Name() != DefaultTheme().Name() {
		t.Fatalf("expected default theme for empty name")
	}
	theme, ok = ThemeByName(" Dark ")
	if !ok || !theme.Dark() || theme.Name() != "dark" {
		t.Fatalf("expected dark theme, got %v %v", theme, ok)
	}
	if _, ok := ThemeByName("solarized"); ok {
		t.Fatalf("expected unknown theme to be missing")
	}
}

func TestWithThemeSelectsPalette(t *testing.T) {
	dark, _ := ThemeByName("dark")
	got := renderEvents(t, []Event{
		StartBlock(Heading(1)), Text("T"), EndBlock(Heading(1)),
	}, WithTheme(dark))
	if got[1] != `StyledText("T" size=28 bold color=#ffffff)` {
		t.Fatalf("unexpected heading %s", got[1])
	}
}

func TestNewTheme(t *testing.T) {
	p := ThemeFor(true).Palette()
	theme := NewTheme("custom", true, p)
	if theme.Name() != "custom" || !theme.Dark() || theme.Palette() != p {
		t.Fatalf("unexpected custom theme %+v", theme)
	}
}

func TestWithThemeUsesCustomPalette(t *testing.T) {
	p := ThemeFor(true).Palette()
	p.Text = palette.RGB(1, 2, 3)
	p.Heading[0] = palette.RGB(4, 5, 6)
	custom := NewTheme("custom", true, p)
	got := renderEvents(t, []Event{
		StartBlock(Paragraph), Text("x"), EndBlock(Paragraph),
		StartBlock(Heading(1)), Text("T"), EndBlock(Heading(1)),
	}, WithTheme(custom))
	if got[1] != `StyledText("x" size=14 color=#010203)` {
		t.Fatalf("expected custom text color, got %s", got[1])
	}
	if got[4] != `StyledText("T" size=28 bold color=#040506)` {
		t.Fatalf("expected custom heading color, got %s", got[4])
	}
}

func TestWithDarkModeReplacesThemePalette(t *testing.T) {
	p := ThemeFor(false).Palette()
	p.Text = palette.RGB(1, 2, 3)
	got := renderEvents(t, []Event{
		StartBlock(Paragraph), Text("x"), EndBlock(Paragraph),
	}, WithTheme(NewTheme("custom", false, p)), WithDarkMode(true))
	if got[1] != `StyledText("x" size=14 color=#dcdcdc)` {
		t.Fatalf("expected built-in dark text color, got %s", got[1])
	}
}
