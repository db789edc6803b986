package mdview

import (
	"log/slog"

	"pkt.systems/mdview/internal/palette"
)

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	dark   bool
	logger *slog.Logger

	// palette overrides the built-in palette chosen by dark when set.
	palette *palette.Palette
}

// WithDarkMode selects the dark palette for heading, code panel and inline
// code colors. It replaces any palette set by WithTheme.
func WithDarkMode(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.dark = enabled
		cfg.palette = nil
	}
}

// WithTheme renders with the palette of theme.
func WithTheme(theme Theme) RenderOption {
	return func(cfg *renderConfig) {
		if theme == nil {
			return
		}
		p := theme.Palette()
		cfg.dark = theme.Dark()
		cfg.palette = &p
	}
}

// WithLogger sets the logger used for debug diagnostics. Rendering is silent
// by default.
func WithLogger(logger *slog.Logger) RenderOption {
	return func(cfg *renderConfig) {
		cfg.logger = logger
	}
}

func buildConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	if cfg.palette == nil {
		p := palette.For(cfg.dark)
		cfg.palette = &p
	}
	return cfg
}
