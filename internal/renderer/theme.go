package renderer

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/hexstorm/internal/renderer/backend"
)

// Theme is the set of styles the screen is drawn with.
type Theme struct {
	Text    backend.Style // unmodified bytes
	Address backend.Style // offset column
	Changed backend.Style // bytes touched by the overlay
	Filler  backend.Style // positions past the end of the file

	DiffDiffer  backend.Style // bytes disagreeing across files
	DiffMissing backend.Style // bytes absent from some file

	Status     backend.Style // status line
	StatusWarn backend.Style // transient error messages
	KeyNumber  backend.Style // function key numbers in the bar
	KeyLabel   backend.Style // function key labels in the bar
	Prompt     backend.Style // prompt line
}

// ThemeByName returns the named theme, defaulting to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// DarkTheme derives the default theme from a few anchor colors. Shades
// for the diff classes come from the anchors via HCL so they stay
// readable on the dark background.
func DarkTheme() Theme {
	fg := colorful.Color{R: 0.83, G: 0.83, B: 0.83}
	accent := colorful.Color{R: 0.96, G: 0.76, B: 0.22} // changed bytes
	differ := colorful.Color{R: 0.80, G: 0.25, B: 0.25}
	missing := colorful.Color{R: 0.30, G: 0.45, B: 0.75}

	return Theme{
		Text:    backend.Style{Fg: toBackend(fg)},
		Address: backend.Style{Fg: toBackend(shade(fg, 0.55))},
		Changed: backend.Style{Fg: toBackend(accent), Attr: backend.AttrBold},
		Filler:  backend.Style{Fg: toBackend(shade(fg, 0.35))},

		DiffDiffer:  backend.Style{Fg: toBackend(fg), Bg: toBackend(shade(differ, 0.45))},
		DiffMissing: backend.Style{Fg: toBackend(fg), Bg: toBackend(shade(missing, 0.45))},

		Status:     backend.Style{Attr: backend.AttrReverse},
		StatusWarn: backend.Style{Fg: toBackend(differ), Attr: backend.AttrReverse | backend.AttrBold},
		KeyNumber:  backend.Style{Fg: toBackend(fg)},
		KeyLabel:   backend.Style{Attr: backend.AttrReverse},
		Prompt:     backend.Style{Attr: backend.AttrBold},
	}
}

// LightTheme mirrors DarkTheme with anchors picked for light terminals.
func LightTheme() Theme {
	fg := colorful.Color{R: 0.13, G: 0.13, B: 0.13}
	accent := colorful.Color{R: 0.70, G: 0.40, B: 0.0}
	differ := colorful.Color{R: 0.85, G: 0.55, B: 0.55}
	missing := colorful.Color{R: 0.60, G: 0.72, B: 0.90}

	return Theme{
		Text:    backend.Style{Fg: toBackend(fg)},
		Address: backend.Style{Fg: toBackend(shade(fg, 2.5))},
		Changed: backend.Style{Fg: toBackend(accent), Attr: backend.AttrBold},
		Filler:  backend.Style{Fg: toBackend(shade(fg, 4.0))},

		DiffDiffer:  backend.Style{Fg: toBackend(fg), Bg: toBackend(differ)},
		DiffMissing: backend.Style{Fg: toBackend(fg), Bg: toBackend(missing)},

		Status:     backend.Style{Attr: backend.AttrReverse},
		StatusWarn: backend.Style{Fg: toBackend(colorful.Color{R: 0.7}), Attr: backend.AttrReverse | backend.AttrBold},
		KeyNumber:  backend.Style{Fg: toBackend(fg)},
		KeyLabel:   backend.Style{Attr: backend.AttrReverse},
		Prompt:     backend.Style{Attr: backend.AttrBold},
	}
}

// shade scales a color's luminance, keeping hue and chroma.
func shade(c colorful.Color, factor float64) colorful.Color {
	h, cc, l := c.Hcl()
	l *= factor
	if l > 1 {
		l = 1
	}
	return colorful.Hcl(h, cc, l).Clamped()
}

func toBackend(c colorful.Color) backend.Color {
	r, g, b := c.RGB255()
	return backend.RGB(r, g, b)
}
