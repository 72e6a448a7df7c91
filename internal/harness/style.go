package harness

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette colors report fragments. A disabled palette returns text unchanged,
// so colors never leak into pipes, files or CI logs.
type Palette struct {
	enabled bool
	red     lipgloss.Style
	green   lipgloss.Style
	yellow  lipgloss.Style
	dim     lipgloss.Style
}

// NewPalette returns a palette writing basic ANSI colors for w when enabled.
func NewPalette(w io.Writer, enabled bool) Palette {
	if !enabled {
		return Palette{}
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return Palette{
		enabled: true,
		red:     base.Foreground(lipgloss.Color("1")),
		green:   base.Foreground(lipgloss.Color("2")),
		yellow:  base.Foreground(lipgloss.Color("3")),
		dim:     base.Faint(true),
	}
}

// PlainPalette never colors.
func PlainPalette() Palette {
	return Palette{}
}

func (p Palette) render(s lipgloss.Style, text string) string {
	if !p.enabled {
		return text
	}
	return s.Render(text)
}

func (p Palette) Red(text string) string    { return p.render(p.red, text) }
func (p Palette) Green(text string) string  { return p.render(p.green, text) }
func (p Palette) Yellow(text string) string { return p.render(p.yellow, text) }
func (p Palette) Dim(text string) string    { return p.render(p.dim, text) }
