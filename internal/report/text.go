package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/phyten/termbg"
	"github.com/phyten/termbg/internal/colorutil"
	"github.com/phyten/termbg/internal/textutil"
)

var (
	labelColor = lipgloss.AdaptiveColor{Light: "#005f87", Dark: "#87d7ff"}
	errorColor = lipgloss.AdaptiveColor{Light: "#af0000", Dark: "#ff5f5f"}
)

// NewRenderer returns a renderer for w pinned to profile. Adaptive
// colors pick their dark variant when dark is set, so nothing is asked
// of the terminal while rendering.
func NewRenderer(w io.Writer, profile termenv.Profile, dark bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(dark)
	return r
}

// WriteText renders r as aligned label/value lines. A nil renderer
// writes unstyled output.
func WriteText(w io.Writer, r Result, renderer *lipgloss.Renderer) error {
	if renderer == nil {
		renderer = NewRenderer(io.Discard, termenv.Ascii, true)
	}
	labelStyle := renderer.NewStyle().Bold(true).Foreground(labelColor)
	errStyle := renderer.NewStyle().Foreground(errorColor)

	fs := fields(r)
	labels := make([]string, len(fs))
	for i, f := range fs {
		labels[i] = f.label
	}
	width := textutil.MaxWidth(labels...)

	var b strings.Builder
	for _, f := range fs {
		b.WriteString(labelStyle.Render(textutil.PadRight(f.label, width)))
		b.WriteString("  ")
		switch {
		case f.err:
			b.WriteString(errStyle.Render(f.value))
		case f.color != nil:
			b.WriteString(f.value)
			b.WriteString("  ")
			b.WriteString(swatch(renderer, *f.color))
		default:
			b.WriteString(f.value)
		}
		b.WriteByte('\n')
	}
	_, err := fmt.Fprint(w, b.String())
	return err
}

// swatch paints the color's hex code on the color itself, in whichever
// of black or white contrasts better.
func swatch(renderer *lipgloss.Renderer, c termbg.RGB) string {
	fg := colorutil.AutoTextColor(colorutil.RGB{R: c.R, G: c.G, B: c.B})
	fgHex := termbg.RGB{R: fg.R, G: fg.G, B: fg.B}.Hex()
	return renderer.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(fgHex)).
		Render(" " + c.Hex() + " ")
}
