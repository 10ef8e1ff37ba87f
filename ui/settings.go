package ui

import (
	"CountDown/config"
	"CountDown/i18n"
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Settings is the part of the application the settings dialog edits. Every
// setter persists the change.
type Settings interface {
	Config() config.Config
	SoundNames() []string
	SelectSound(name string)
	PreviewSound(name string)
	SetVolume(v float64)
	SetBackgroundOpacity(v float64)
	// SetBackgroundColor takes "#rrggbb", or "" for the theme's background.
	SetBackgroundColor(hex string)
	SetShowInTray(show bool)
}

// ShowSettingsDialog opens the sound and appearance settings over w.
func ShowSettingsDialog(s Settings, w fyne.Window) {
	cfg := s.Config()

	soundSelect := widget.NewSelect(s.SoundNames(), nil)
	soundSelect.SetSelected(cfg.Sound.Completion)
	soundSelect.OnChanged = func(name string) {
		s.SelectSound(name)
		s.PreviewSound(name)
	}
	previewButton := widget.NewButtonWithIcon(i18n.T("Preview"), theme.MediaPlayIcon(), func() {
		s.PreviewSound(soundSelect.Selected)
	})

	volumeValue := widget.NewLabel(gain(cfg.Sound.Volume))
	volume := widget.NewSlider(minVolume, maxVolume)
	volume.Step = 0.5
	volume.Value = clampVolume(cfg.Sound.Volume)
	volume.OnChanged = func(v float64) {
		volumeValue.SetText(gain(v))
	}
	volume.OnChangeEnded = s.SetVolume

	opacityValue := widget.NewLabel(percent(cfg.Appearance.BackgroundOpacity))
	opacity := widget.NewSlider(0.1, 1)
	opacity.Step = 0.05
	opacity.Value = clampOpacity(cfg.Appearance.BackgroundOpacity)
	opacity.OnChanged = func(v float64) {
		opacityValue.SetText(percent(v))
	}
	opacity.OnChangeEnded = s.SetBackgroundOpacity

	swatch := canvas.NewRectangle(backgroundSwatch(cfg.Appearance.BackgroundColor))
	swatch.SetMinSize(fyne.NewSize(24, 24))
	swatch.CornerRadius = 4
	chooseColor := widget.NewButton(i18n.T("Choose"), func() {
		picker := dialog.NewColorPicker(i18n.T("Background Color"), "", func(c color.Color) {
			hex := config.FormatColor(c)
			s.SetBackgroundColor(hex)
			swatch.FillColor = backgroundSwatch(hex)
			swatch.Refresh()
		}, w)
		picker.Advanced = true
		picker.SetColor(swatch.FillColor)
		picker.Show()
	})
	defaultColor := widget.NewButton(i18n.T("Default"), func() {
		s.SetBackgroundColor("")
		swatch.FillColor = backgroundSwatch("")
		swatch.Refresh()
	})

	tray := widget.NewCheck(i18n.T("Show in Menu Bar"), nil)
	tray.SetChecked(cfg.Appearance.ShowInTray)
	tray.OnChanged = s.SetShowInTray

	form := widget.NewForm(
		widget.NewFormItem(i18n.T("Completion Sound"), container.NewBorder(nil, nil, nil, previewButton, soundSelect)),
		widget.NewFormItem(i18n.T("Volume"), container.NewBorder(nil, nil, nil, volumeValue, volume)),
		widget.NewFormItem(i18n.T("Background Opacity"), container.NewBorder(nil, nil, nil, opacityValue, opacity)),
		widget.NewFormItem(i18n.T("Background Color"), container.NewHBox(swatch, chooseColor, defaultColor)),
		widget.NewFormItem("", tray),
	)

	d := dialog.NewCustom(i18n.T("Settings"), i18n.T("Close"), form, w)
	d.Resize(fyne.NewSize(360, 0))
	d.Show()
}

// Volume is a base-2 gain exponent; 0 plays sounds at their built-in level.
const (
	minVolume = -4.0
	maxVolume = 1.0
)

// backgroundSwatch is the opaque color shown for a saved background setting.
func backgroundSwatch(hex string) color.Color {
	if c, ok := config.ParseColor(hex); ok {
		return c
	}
	return withAlpha(theme.Color(theme.ColorNameBackground), 0xff)
}

func clampVolume(v float64) float64 {
	switch {
	case v < minVolume:
		return minVolume
	case v > maxVolume:
		return maxVolume
	}
	return v
}

func gain(v float64) string {
	return fmt.Sprintf("%+.1f", v)
}

func percent(v float64) string {
	return fmt.Sprintf("%3.0f%%", v*100)
}
