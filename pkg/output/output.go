// Package output prints findr results and diagnostics.
//
// Results go to one stream, one path per line; diagnostics go to another.
// Colors come from lipgloss renderers bound to each stream, so a stream
// that is not a terminal receives plain text. Paths are only wrapped in
// escape sequences; their bytes are never re-laid-out.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/mlioz/findr/pkg/filesystem"
)

// ColorMode selects when output is styled.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
}

type stream struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	styled   bool
}

func newStream(w io.Writer, mode ColorMode) stream {
	r := lipgloss.NewRenderer(w)
	styled := true
	switch {
	case mode == ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case mode == ColorNever, !isTerminal(w):
		r.SetColorProfile(termenv.Ascii)
		styled = false
	}
	return stream{w: w, renderer: r, styled: styled}
}

// paint is a foreground color plus optional bold, applied around text
// without touching it. lipgloss.Style.Render would expand tabs and pad
// multi-line text, which must not happen to a path.
type paint struct {
	color lipgloss.Color
	bold  bool
}

func (s stream) render(p paint, text string) string {
	if !s.styled {
		return text
	}
	profile := s.renderer.ColorProfile()
	style := profile.String(text).Foreground(profile.Color(string(p.color)))
	if p.bold {
		style = style.Bold()
	}
	return style.String()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Printer writes matches to out and diagnostics to errOut.
// It satisfies search.Sink.
type Printer struct {
	out    stream
	errOut stream

	dirPaint     paint
	linkPaint    paint
	errorPaint   paint
	successStyle lipgloss.Style
}

// NewPrinter creates a Printer for the two streams.
func NewPrinter(out, errOut io.Writer, mode ColorMode) *Printer {
	p := &Printer{
		out:        newStream(out, mode),
		errOut:     newStream(errOut, mode),
		dirPaint:   paint{color: lipgloss.Color("12"), bold: true},
		linkPaint:  paint{color: lipgloss.Color("14")},
		errorPaint: paint{color: lipgloss.Color("9")},
	}

	p.successStyle = p.out.renderer.NewStyle().
		Foreground(lipgloss.Color("10")).
		Bold(true).
		TabWidth(lipgloss.NoTabConversion)
	return p
}

// Match prints one result line.
func (p *Printer) Match(entry filesystem.Entry) error {
	line := entry.Path
	switch entry.Type {
	case filesystem.Directory:
		line = p.out.render(p.dirPaint, line)
	case filesystem.SymbolicLink:
		line = p.out.render(p.linkPaint, line)
	}

	_, err := fmt.Fprintln(p.out.w, line)
	return err
}

// Diagnostic prints a traversal error on the diagnostic stream.
func (p *Printer) Diagnostic(err error) {
	fmt.Fprintln(p.errOut.w, p.errOut.render(p.errorPaint, err.Error()))
}

// Error prints a fatal message on the diagnostic stream.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.errOut.w, p.errOut.render(p.errorPaint, "findr: "+msg))
}

// Success prints a confirmation on the result stream.
func (p *Printer) Success(msg string) {
	if !p.out.styled {
		fmt.Fprintln(p.out.w, msg)
		return
	}
	fmt.Fprintln(p.out.w, p.successStyle.Render(msg))
}
