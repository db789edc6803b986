package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdview"
	"pkt.systems/mdview/ansi"
	"pkt.systems/mdview/internal/viewer"
	"pkt.systems/version"
)

const (
	defaultThemeName = "system"
	defaultWidth     = 80
)

func init() {
	version.SetDefaultModule("pkt.systems/mdview")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	themeName  string
	width      int
	outPath    string
	boring     bool
	raw        bool
	view       bool
	dump       bool
	configPath string
	logLevel   string
	listThemes bool
	version    bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	flags := pflag.NewFlagSet("mdview", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.themeName, "theme", "t", defaultThemeName, "Theme: light|dark|system")
	flags.IntVarP(&opts.width, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&opts.boring, "boring", "b", false, "Generate non-ANSI output")
	flags.BoolVar(&opts.raw, "raw", false, "Show the markdown source instead of rendering it")
	flags.BoolVar(&opts.view, "view", false, "Open the interactive viewer")
	flags.BoolVar(&opts.dump, "dump", false, "Print the visual block stream, one block per line")
	flags.StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/mdview/config.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	flags.BoolVar(&opts.listThemes, "list-themes", false, "List available themes")
	flags.BoolVar(&opts.version, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: mdview [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.version {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if opts.listThemes {
		printThemes(stdout)
		return 0
	}

	cfg, err := loadConfig(opts.configPath, flags.Changed("config"))
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}
	cfg.apply(&opts, flags)

	logger, err := newLogger(stderr, opts.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --log-level %q: %v\n", opts.logLevel, err)
		return 2
	}

	dark, err := resolveTheme(opts.themeName, os.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n\n", err)
		printThemes(stderr)
		return 2
	}

	raw, inputs, err := readInputs(context.Background(), flags.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return 1
	}
	doc, err := mdview.ParseDocument(raw)
	if err != nil {
		fmt.Fprintf(stderr, "load: %v\n", err)
		return 1
	}
	logger.Debug("document loaded", "inputs", len(inputs), "bytes", len(doc.Source), "front_matter", doc.FrontMatter != nil)

	if opts.view {
		if !isTerminal(stdout) {
			fmt.Fprintln(stderr, "refusing to open the viewer without a terminal on stdout")
			return 2
		}
		if err := runViewer(doc, documentTitle(doc, inputs), dark, opts.raw, logger); err != nil {
			fmt.Fprintf(stderr, "view: %v\n", err)
			return 1
		}
		return 0
	}

	writer := stdout
	if strings.TrimSpace(opts.outPath) != "" {
		f, err := createOutput(opts.outPath)
		if err != nil {
			fmt.Fprintf(stderr, "open output: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()
		writer = f
	}

	switch {
	case opts.dump:
		err = dumpBlocks(doc, writer, dark, logger)
	case opts.raw:
		_, err = writer.Write(doc.Source)
	default:
		w := ansi.NewWriter(writer, resolveWidth(opts.width), ansi.WithDarkMode(dark), ansi.WithBoring(opts.boring))
		err = mdview.RenderDocument(doc, w, mdview.WithDarkMode(dark), mdview.WithLogger(logger))
	}
	if err != nil {
		fmt.Fprintf(stderr, "render: %v\n", err)
		return 1
	}
	return 0
}

func printThemes(w io.Writer) {
	for _, name := range mdview.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
	fmt.Fprintln(w, defaultThemeName)
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// resolveTheme reports whether the named theme is dark. The system theme
// follows MDVIEW_THEME, then the background in COLORFGBG, and is dark when
// neither says otherwise.
func resolveTheme(name string, getenv func(string) string) (bool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == defaultThemeName {
		return systemDark(getenv), nil
	}
	theme, ok := mdview.ThemeByName(name)
	if !ok {
		return false, fmt.Errorf("unknown theme %q", name)
	}
	return theme.Dark(), nil
}

func systemDark(getenv func(string) string) bool {
	if env := strings.ToLower(strings.TrimSpace(getenv("MDVIEW_THEME"))); env != "" && env != defaultThemeName {
		if theme, ok := mdview.ThemeByName(env); ok {
			return theme.Dark()
		}
	}
	if fgbg := getenv("COLORFGBG"); fgbg != "" {
		parts := strings.Split(fgbg, ";")
		if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			// 7 and 15 are the light grays and white of the 16 color set.
			return bg != 7 && bg != 15
		}
	}
	return true
}

func dumpBlocks(doc *mdview.Document, w io.Writer, dark bool, logger *slog.Logger) error {
	sink := mdview.SinkFunc(func(v mdview.VisualBlock) error {
		_, err := fmt.Fprintln(w, v.String())
		return err
	})
	return mdview.RenderDocument(doc, sink, mdview.WithDarkMode(dark), mdview.WithLogger(logger))
}

func runViewer(doc *mdview.Document, title string, dark, raw bool, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	v := viewer.New(screen, viewer.Config{
		Document: doc,
		Title:    title,
		Dark:     dark,
		Raw:      raw,
		Logger:   logger,
	})
	return v.Run()
}

func documentTitle(doc *mdview.Document, inputs []input) string {
	if title := doc.Title(); title != "" {
		return title
	}
	if len(inputs) == 0 {
		return "stdin"
	}
	return inputs[0].name()
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
