// Package viewer shows a rendered document in a scrollable terminal view.
package viewer

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"pkt.systems/mdview"
	"pkt.systems/mdview/internal/layout"
	"pkt.systems/mdview/internal/palette"
)

// Config configures a Viewer.
type Config struct {
	Document *mdview.Document
	Title    string
	Dark     bool
	Raw      bool
	Logger   *slog.Logger
}

// Viewer draws laid-out lines onto a tcell screen and scrolls them.
type Viewer struct {
	screen tcell.Screen
	doc    *mdview.Document
	title  string
	dark   bool
	raw    bool
	log    *slog.Logger

	lines  []layout.Line
	top    int
	width  int
	height int
}

// New returns a Viewer drawing on screen, which must already be initialised.
func New(screen tcell.Screen, cfg Config) *Viewer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Viewer{
		screen: screen,
		doc:    cfg.Document,
		title:  cfg.Title,
		dark:   cfg.Dark,
		raw:    cfg.Raw,
		log:    logger,
	}
}

// Relayout runs a fresh rendering pass at the current screen width.
func (v *Viewer) Relayout() error {
	v.width, v.height = v.screen.Size()
	p := palette.For(v.dark)
	if v.raw {
		v.lines = layout.PlainLines(string(v.doc.Source), v.width, p)
	} else {
		page := layout.NewPage(v.width, p)
		err := mdview.RenderDocument(v.doc, page,
			mdview.WithDarkMode(v.dark),
			mdview.WithLogger(v.log),
		)
		if err != nil {
			return fmt.Errorf("viewer: %w", err)
		}
		v.lines = page.Lines
	}
	v.log.Debug("relayout", "width", v.width, "lines", len(v.lines), "dark", v.dark, "raw", v.raw)
	v.scrollTo(v.top)
	return nil
}

// Lines returns the current laid-out lines.
func (v *Viewer) Lines() []layout.Line {
	return v.lines
}

// Top returns the index of the first visible line.
func (v *Viewer) Top() int {
	return v.top
}

func (v *Viewer) pageHeight() int {
	h := v.height - 1
	if h < 1 {
		h = 1
	}
	return h
}

func (v *Viewer) scrollTo(top int) {
	maxTop := len(v.lines) - v.pageHeight()
	if top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	v.top = top
}

// Draw paints the visible lines and the status row.
func (v *Viewer) Draw() {
	p := palette.For(v.dark)
	base := tcell.StyleDefault.Background(color(p.Background)).Foreground(color(p.Text))
	v.screen.SetStyle(base)
	v.screen.Clear()
	rows := v.pageHeight()
	for y := 0; y < rows && v.top+y < len(v.lines); y++ {
		x := 0
		for _, seg := range v.lines[v.top+y].Segments {
			x = v.drawText(x, y, seg.Text, segmentStyle(base, seg.Attr))
		}
	}
	v.drawStatus(base.Reverse(true))
	v.screen.Show()
}

func (v *Viewer) drawText(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > v.width {
			break
		}
		v.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

func (v *Viewer) drawStatus(style tcell.Style) {
	y := v.height - 1
	for x := 0; x < v.width; x++ {
		v.screen.SetContent(x, y, ' ', nil, style)
	}
	mode := "light"
	if v.dark {
		mode = "dark"
	}
	if v.raw {
		mode += " raw"
	}
	last := v.top + v.pageHeight()
	if last > len(v.lines) {
		last = len(v.lines)
	}
	right := fmt.Sprintf(" %d-%d/%d [%s] ", v.top+1, last, len(v.lines), mode)
	left := " " + v.title
	rightX := v.width - runewidth.StringWidth(right)
	if rightX < 0 {
		rightX = 0
	}
	leftMax := rightX
	x := 0
	for _, r := range left {
		w := runewidth.RuneWidth(r)
		if x+w > leftMax {
			break
		}
		v.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	v.drawText(rightX, y, right, style)
}

// HandleKey applies a key press and reports whether the viewer should quit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyDown, tcell.KeyEnter:
		v.scrollTo(v.top + 1)
	case tcell.KeyUp:
		v.scrollTo(v.top - 1)
	case tcell.KeyPgDn:
		v.scrollTo(v.top + v.pageHeight())
	case tcell.KeyPgUp:
		v.scrollTo(v.top - v.pageHeight())
	case tcell.KeyHome:
		v.scrollTo(0)
	case tcell.KeyEnd:
		v.scrollTo(len(v.lines))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true, nil
		case 'j':
			v.scrollTo(v.top + 1)
		case 'k':
			v.scrollTo(v.top - 1)
		case ' ', 'f':
			v.scrollTo(v.top + v.pageHeight())
		case 'b':
			v.scrollTo(v.top - v.pageHeight())
		case 'g':
			v.scrollTo(0)
		case 'G':
			v.scrollTo(len(v.lines))
		case 't':
			v.dark = !v.dark
			return false, v.Relayout()
		case 'r':
			v.raw = !v.raw
			v.top = 0
			return false, v.Relayout()
		}
	}
	return false, nil
}

// Run lays out, draws and processes events until the user quits.
func (v *Viewer) Run() error {
	if err := v.Relayout(); err != nil {
		return err
	}
	v.Draw()
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
			if err := v.Relayout(); err != nil {
				return err
			}
		case *tcell.EventKey:
			quit, err := v.HandleKey(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case *tcell.EventMouse:
			switch ev.Buttons() {
			case tcell.WheelDown:
				v.scrollTo(v.top + 3)
			case tcell.WheelUp:
				v.scrollTo(v.top - 3)
			}
		}
		v.Draw()
	}
}

func color(c palette.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func segmentStyle(base tcell.Style, attr layout.Attr) tcell.Style {
	st := base
	if attr.HasFG {
		st = st.Foreground(color(attr.FG))
	}
	if attr.HasBG {
		st = st.Background(color(attr.BG))
	}
	return st.Bold(attr.Bold).Italic(attr.Italic).StrikeThrough(attr.Strike).Dim(attr.Dim)
}
