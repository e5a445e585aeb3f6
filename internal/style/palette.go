// Package style generalizes the teacher's fixed two-color border palette
// (focused/blurred/status) into an N-color boundary ramp, so a tab with
// an arbitrary number of panes can still give each one a visually
// distinct frame colour, downsampled to whatever the attached terminal
// actually supports.
package style

import (
	"image/color"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Catppuccin Mocha anchors, carried over from the teacher's styles.go.
var (
	ColorFocused = color.RGBA{R: 0xa6, G: 0xe3, B: 0xa1, A: 0xff} // #a6e3a1 green
	ColorBlurred = color.RGBA{R: 0x45, G: 0x47, B: 0x5a, A: 0xff} // #45475a dark gray
	ColorStatus  = color.RGBA{R: 0x6c, G: 0x70, B: 0x86, A: 0xff} // #6c7086 muted
)

// Palette assigns a stable boundary colour to every pane by index
// (State.BoundaryColorIndex), downsampled to the given colour profile.
type Palette struct {
	profile colorprofile.Profile
	ramp    []lipgloss.Color
	focused lipgloss.Color
}

// New builds a Palette with n ramp colours, evenly spaced around the
// Catppuccin hue wheel starting from ColorBlurred, for the given
// terminal colour profile.
func New(n int, profile colorprofile.Profile) *Palette {
	if n < 1 {
		n = 1
	}
	base, _ := colorful.MakeColor(ColorBlurred)
	ramp := make([]lipgloss.Color, n)
	for i := 0; i < n; i++ {
		h, s, l := base.Hsl()
		h = h + float64(i)*(360.0/float64(n))
		for h >= 360 {
			h -= 360
		}
		c := colorful.Hsl(h, s, l)
		ramp[i] = lipgloss.Color(c.Hex())
	}
	return &Palette{
		profile: profile,
		ramp:    ramp,
		focused: lipgloss.Color(rgbaHex(ColorFocused)),
	}
}

// Detect builds a Palette sized for n panes, auto-detecting the
// terminal's colour profile the way the teacher's render path checks
// isatty before emitting colour at all.
func Detect(n int) *Palette {
	return New(n, colorprofile.Detect(nil, nil))
}

// Border returns the boundary colour for the pane at ramp index idx.
// idx is taken modulo the ramp length so any pane count degrades
// gracefully instead of panicking.
func (p *Palette) Border(idx int) lipgloss.Color {
	if len(p.ramp) == 0 {
		return p.focused
	}
	i := idx % len(p.ramp)
	if i < 0 {
		i += len(p.ramp)
	}
	return p.ramp[i]
}

// Focused returns the colour used for the active pane's boundary,
// regardless of its ramp index.
func (p *Palette) Focused() lipgloss.Color { return p.focused }

// Downsample converts a lipgloss.Color to the ANSI sequence appropriate
// for the palette's detected profile (truecolor, 256-color, or 16-color),
// via termenv so low-fidelity terminals still get a readable distinction
// between panes instead of raw truecolor escapes they can't parse.
func (p *Palette) Downsample(c lipgloss.Color) string {
	col := termenv.RGBColor(string(c))
	switch p.profile {
	case colorprofile.TrueColor:
		return termenv.TrueColor.Convert(col).Sequence(false)
	case colorprofile.ANSI256:
		return termenv.ANSI256.Convert(col).Sequence(false)
	case colorprofile.ANSI:
		return termenv.ANSI.Convert(col).Sequence(false)
	default:
		return ""
	}
}

func rgbaHex(c color.RGBA) string {
	const hex = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	put := func(at int, v uint8) {
		b[at] = hex[v>>4]
		b[at+1] = hex[v&0xf]
	}
	put(1, c.R)
	put(3, c.G)
	put(5, c.B)
	return string(b)
}
