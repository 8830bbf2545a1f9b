// Package report renders the run report: one dotted line per step, in the
// form "label (duration) ........ value".
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// DefaultWidth is the target width of the label/duration/dots segment.
const DefaultWidth = 40

// Status is the result of comparing a produced value with a known answer.
type Status int

const (
	// StatusUnknown means no known answer was available.
	StatusUnknown Status = iota
	// StatusMatch means the value equals the known answer.
	StatusMatch
	// StatusMismatch means the value differs from the known answer.
	StatusMismatch
)

func (s Status) String() string {
	switch s {
	case StatusMatch:
		return "match"
	case StatusMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Glyph returns the single-character marker for s.
func (s Status) Glyph() string {
	switch s {
	case StatusMatch:
		return "✓"
	case StatusMismatch:
		return "✗"
	default:
		return "?"
	}
}

// OutputKind selects how an output segment is styled.
type OutputKind int

const (
	OutputValue OutputKind = iota
	OutputFailure
	OutputSkipped
)

// Output is the status column of a line.
type Output struct {
	Text string
	Kind OutputKind
}

// Value, Failure and Skipped build outputs of the matching kind.
func Value(text string) *Output   { return &Output{Text: text, Kind: OutputValue} }
func Failure(text string) *Output { return &Output{Text: text, Kind: OutputFailure} }
func Skipped() *Output            { return &Output{Text: "skipped", Kind: OutputSkipped} }

// Line is one report entry. Nil fields are omitted from the rendering.
type Line struct {
	Label    string
	Duration *time.Duration
	Output   *Output
	Status   *Status
}

// Option configures a Printer.
type Option func(*Printer)

// WithWidth sets the target line width.
func WithWidth(width int) Option {
	return func(p *Printer) {
		if width > 0 {
			p.width = width
		}
	}
}

// WithColor forces or disables ANSI styling.
func WithColor(mode ColorMode) Option {
	return func(p *Printer) {
		p.color = mode
	}
}

// WithDiagnostics sets the writer used for warnings. Defaults to stderr.
func WithDiagnostics(w io.Writer) Option {
	return func(p *Printer) {
		p.diag = w
	}
}

// Printer writes report lines to an output stream.
type Printer struct {
	out   io.Writer
	diag  io.Writer
	width int
	color ColorMode
	st    styles
	wst   styles
}

// New creates a Printer writing to out.
func New(out io.Writer, opts ...Option) *Printer {
	p := &Printer{
		out:   out,
		diag:  os.Stderr,
		width: DefaultWidth,
		color: ColorAuto,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.st = newStyles(newRenderer(p.out, p.color))
	p.wst = newStyles(newRenderer(p.diag, p.color))
	return p
}

// Width returns the configured target width.
func (p *Printer) Width() int {
	return p.width
}

// FormatDuration renders d with two decimals in the largest unit below it,
// e.g. "512.00ns", "3.20µs", "12.34ms", "1.50s".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%.2fns", float64(d))
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d)/float64(time.Microsecond))
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

// DotCount returns how many dots separate the timing segment from the
// output for a line whose label and duration text occupy used cells.
func DotCount(width, used int) int {
	dots := width - min(width-5, used) - 2
	if dots < 0 {
		return 0
	}
	return dots
}

// Render formats l without the leading bullet.
func (p *Printer) Render(l Line) string {
	var b strings.Builder

	durText := ""
	if l.Duration != nil {
		durText = " (" + FormatDuration(*l.Duration) + ")"
	}

	b.WriteString(p.st.label.Render(l.Label))
	if l.Duration != nil {
		b.WriteString(p.st.duration(*l.Duration).Render(durText))
	}

	if l.Output == nil {
		if l.Status != nil {
			b.WriteString(" " + p.glyph(*l.Status))
		}
		return b.String()
	}

	used := runewidth.StringWidth(l.Label) + 1 + runewidth.StringWidth(durText)
	dots := DotCount(p.width, used)
	b.WriteString(" " + p.st.dots.Render(strings.Repeat(".", dots)))

	style := p.st.value
	switch l.Output.Kind {
	case OutputFailure:
		style = p.st.failure
	case OutputSkipped:
		style = p.st.skipped
	}

	if strings.Contains(l.Output.Text, "\n") {
		if l.Status != nil {
			b.WriteString(" " + p.glyph(*l.Status))
		}
		for _, line := range strings.Split(strings.Trim(l.Output.Text, "\n"), "\n") {
			b.WriteString("\n    " + style.Render(line))
		}
		return b.String()
	}

	b.WriteString(" " + style.Render(l.Output.Text))
	if l.Status != nil {
		b.WriteString(" " + p.glyph(*l.Status))
	}
	return b.String()
}

// Print writes l as a bulleted report line.
func (p *Printer) Print(l Line) {
	fmt.Fprintf(p.out, "  - %s\n", p.Render(l))
}

// Day writes the header that opens a day's section.
func (p *Printer) Day(n int) {
	fmt.Fprintf(p.out, "Day %d\n", n)
}

// Blank writes an empty separator line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.out)
}

// Warn writes a warning block to the diagnostics stream. Continuation
// lines are indented under the marker.
func (p *Printer) Warn(lines ...string) {
	for i, line := range lines {
		prefix := `/!\ `
		if i > 0 {
			prefix = "    "
		}
		fmt.Fprintln(p.diag, p.wst.warn.Render(prefix+line))
	}
}

func (p *Printer) glyph(s Status) string {
	switch s {
	case StatusMatch:
		return p.st.match.Render(s.Glyph())
	case StatusMismatch:
		return p.st.mismatch.Render(s.Glyph())
	default:
		return p.st.unknown.Render(s.Glyph())
	}
}
