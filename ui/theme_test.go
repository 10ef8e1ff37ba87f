package ui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestCustomThemeBackgroundAlpha(t *testing.T) {
	tests := []struct {
		opacity float64
		alpha   uint8
	}{
		{1, 255},
		{0.5, 127},
		{0, 25},
		{3, 255},
	}
	for _, tt := range tests {
		th := NewCustomTheme(tt.opacity, "")
		c := color.NRGBAModel.Convert(th.Color(theme.ColorNameBackground, theme.VariantDark)).(color.NRGBA)
		assert.Equal(t, tt.alpha, c.A, "opacity %v", tt.opacity)
	}
}

func TestCustomThemeKeepsOtherColors(t *testing.T) {
	th := NewCustomTheme(0.3, "#102030")
	want := theme.DefaultTheme().Color(theme.ColorNameForeground, theme.VariantLight)
	assert.Equal(t, want, th.Color(theme.ColorNameForeground, theme.VariantLight))
}

func TestCustomThemeBackgroundColor(t *testing.T) {
	th := NewCustomTheme(0.5, "#102030")
	got := color.NRGBAModel.Convert(th.Color(theme.ColorNameBackground, theme.VariantDark)).(color.NRGBA)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 127}, got)

	def := withAlpha(theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantLight), 127)
	got = color.NRGBAModel.Convert(NewCustomTheme(0.5, "not a color").Color(theme.ColorNameBackground, theme.VariantLight)).(color.NRGBA)
	assert.Equal(t, def, got)
}

func TestBackgroundSwatch(t *testing.T) {
	test.NewTempApp(t)

	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, backgroundSwatch("#102030"))

	got := color.NRGBAModel.Convert(backgroundSwatch("")).(color.NRGBA)
	assert.Equal(t, uint8(0xff), got.A, "the default swatch is opaque")
}

func TestSettingsFormatting(t *testing.T) {
	assert.Equal(t, minVolume, clampVolume(-10))
	assert.Equal(t, maxVolume, clampVolume(5))
	assert.Equal(t, -1.5, clampVolume(-1.5))
	assert.Equal(t, "+0.0", gain(0))
	assert.Equal(t, "-2.5", gain(-2.5))
	assert.Equal(t, " 90%", percent(0.9))
}
