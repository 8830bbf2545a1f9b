package report

import (
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rotisserie/eris"
)

// ColorMode controls whether ANSI styling is emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a color mode string from configuration.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	default:
		return "", eris.Errorf("report: unknown color mode %q (want auto, always or never)", s)
	}
}

// Palette
var (
	colorGreen  = lipgloss.Color("2")
	colorYellow = lipgloss.Color("3")
	colorOrange = lipgloss.Color("208")
	colorRed    = lipgloss.Color("1")
	colorGray   = lipgloss.Color("8")
)

type styles struct {
	label    lipgloss.Style
	dots     lipgloss.Style
	value    lipgloss.Style
	failure  lipgloss.Style
	skipped  lipgloss.Style
	match    lipgloss.Style
	mismatch lipgloss.Style
	unknown  lipgloss.Style
	warn     lipgloss.Style
	buckets  [5]lipgloss.Style
}

func newRenderer(w io.Writer, mode ColorMode) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	}
	return r
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		label:    r.NewStyle(),
		dots:     r.NewStyle().Faint(true),
		value:    r.NewStyle().Bold(true),
		failure:  r.NewStyle().Bold(true).Foreground(colorRed),
		skipped:  r.NewStyle().Faint(true),
		match:    r.NewStyle().Bold(true).Foreground(colorGreen),
		mismatch: r.NewStyle().Bold(true).Foreground(colorRed),
		unknown:  r.NewStyle().Foreground(colorYellow),
		warn:     r.NewStyle().Foreground(colorYellow),
		buckets: [5]lipgloss.Style{
			r.NewStyle().Foreground(colorGray),
			r.NewStyle().Foreground(colorGreen),
			r.NewStyle().Foreground(colorYellow),
			r.NewStyle().Foreground(colorOrange),
			r.NewStyle().Foreground(colorRed),
		},
	}
}

// Bucket classifies a duration by order of magnitude: 0 for under a
// microsecond, then millisecond, second and minute, 4 for anything longer.
func Bucket(d time.Duration) int {
	switch {
	case d < time.Microsecond:
		return 0
	case d < time.Millisecond:
		return 1
	case d < time.Second:
		return 2
	case d < time.Minute:
		return 3
	default:
		return 4
	}
}

func (s styles) duration(d time.Duration) lipgloss.Style {
	return s.buckets[Bucket(d)]
}
