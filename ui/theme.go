package ui

import (
	"CountDown/config"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CustomTheme is the default theme with a translucent, optionally recolored,
// window background.
type CustomTheme struct {
	fyne.Theme
	opacity    float64
	background color.Color
}

// NewCustomTheme creates a theme whose background alpha follows opacity
// (clamped to [0.1, 1]). background is a "#rrggbb" color; empty or invalid
// keeps the default background.
func NewCustomTheme(opacity float64, background string) fyne.Theme {
	t := &CustomTheme{Theme: theme.DefaultTheme(), opacity: clampOpacity(opacity)}
	if c, ok := config.ParseColor(background); ok {
		t.background = c
	}
	return t
}

// Color returns the default color, with the background replaced.
func (t *CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	c := t.Theme.Color(name, variant)
	if name == theme.ColorNameBackground {
		if t.background != nil {
			c = t.background
		}
		return withAlpha(c, uint8(t.opacity*255))
	}
	return c
}

func clampOpacity(v float64) float64 {
	switch {
	case v < 0.1:
		return 0.1
	case v > 1:
		return 1
	}
	return v
}

func withAlpha(c color.Color, alpha uint8) color.NRGBA {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}
