package ui

import (
	"CountDown/control"
	"CountDown/duration"
	"CountDown/i18n"
	"CountDown/timer"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// App is what the window needs from the application. Do waits briefly for
// the command loop to apply cmd.
type App interface {
	EnqueueCommand(cmd control.Command)
	Do(cmd control.Command) error
	Snapshot() timer.Snapshot
	HandleKeyRune(rune)
	ShowInfoDialog(title, contentFile string, minSize fyne.Size)
	Settings
}

// TimerView is the main window content: readout, progress, entry and buttons.
type TimerView struct {
	app App

	timeText        *canvas.Text
	progress        *widget.ProgressBar
	completionLabel *widget.Label
	statusText      *canvas.Text
	entry           *HistoryEntry
	toggleButton    *widget.Button
	resetButton     *widget.Button

	content fyne.CanvasObject
}

func NewTimerView(a App, w fyne.Window) *TimerView {
	v := &TimerView{app: a}

	v.timeText = canvas.NewText(duration.FormatDisplay(0), theme.Color(theme.ColorNameForeground))
	v.timeText.TextStyle.Monospace = true
	v.timeText.TextSize = timer.FontSizeTime
	v.timeText.Alignment = fyne.TextAlignCenter

	v.progress = widget.NewProgressBar()
	v.progress.TextFormatter = func() string { return "" }

	v.completionLabel = widget.NewLabel("")
	v.completionLabel.Alignment = fyne.TextAlignCenter
	v.completionLabel.TextStyle.Bold = true
	v.completionLabel.Hide()

	v.statusText = canvas.NewText("", theme.Color(theme.ColorNamePlaceHolder))
	v.statusText.TextSize = timer.FontSizeStatus
	v.statusText.Alignment = fyne.TextAlignCenter

	v.entry = NewHistoryEntry()
	v.entry.SetPlaceHolder(i18n.T("Duration (10m, 1h 30m, add 5m)"))
	v.entry.OnChanged = func(text string) {
		a.EnqueueCommand(control.Command{Type: control.CmdSetInput, Input: text})
	}
	v.entry.OnSubmitted = func(text string) { v.submit(text) }
	v.entry.OnHistoryPrevious = func() { v.recall(control.CmdHistoryPrevious) }
	v.entry.OnHistoryNext = func() { v.recall(control.CmdHistoryNext) }
	v.entry.OnToggle = v.toggle
	v.entry.OnReset = v.reset

	submitButton := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { v.submit(v.entry.Text) })

	v.toggleButton = widget.NewButtonWithIcon(i18n.T("Start"), theme.MediaPlayIcon(), v.toggle)
	v.toggleButton.Importance = widget.HighImportance
	v.resetButton = widget.NewButtonWithIcon(i18n.T("Reset"), theme.MediaReplayIcon(), v.reset)

	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		ShowSettingsDialog(a, w)
	})

	helpIcon := widget.NewIcon(theme.QuestionIcon())
	helpButton := NewTappableContainer(helpIcon, func() {
		a.ShowInfoDialog(i18n.T("Help"), "assets/help.txt", fyne.NewSize(420, 320))
	}, nil)

	gap := canvas.NewRectangle(color.Transparent)
	gap.SetMinSize(fyne.NewSize(0, timer.ProgressGap))

	inputRow := container.NewBorder(nil, nil, nil, submitButton, v.entry)
	controls := container.NewHBox(layout.NewSpacer(), v.toggleButton, v.resetButton, layout.NewSpacer())
	footer := container.NewBorder(nil, nil, helpButton, settingsButton, v.statusText)

	v.content = container.NewVBox(
		v.timeText,
		gap,
		v.progress,
		v.completionLabel,
		inputRow,
		controls,
		layout.NewSpacer(),
		footer,
	)
	return v
}

func (v *TimerView) CanvasObject() fyne.CanvasObject { return container.NewPadded(v.content) }

func (v *TimerView) submit(text string) {
	// Errors are reported through the status message.
	_ = v.app.Do(control.Command{Type: control.CmdSubmit, Input: text})
	s := v.app.Snapshot()
	if s.Input == "" {
		v.entry.SetTextQuiet("")
	}
	v.UpdateDisplay(s)
}

func (v *TimerView) recall(t control.CommandType) {
	if err := v.app.Do(control.Command{Type: t}); err != nil {
		return
	}
	v.entry.SetTextQuiet(v.app.Snapshot().Input)
}

func (v *TimerView) toggle() {
	_ = v.app.Do(control.Command{Type: control.CmdToggle})
	v.UpdateDisplay(v.app.Snapshot())
}

func (v *TimerView) reset() {
	_ = v.app.Do(control.Command{Type: control.CmdReset})
	v.UpdateDisplay(v.app.Snapshot())
}

// UpdateDisplay renders s. It is safe to call from any goroutine.
func (v *TimerView) UpdateDisplay(s timer.Snapshot) {
	fyne.Do(func() {
		v.timeText.Text = duration.FormatDisplay(s.Remaining)
		v.timeText.Refresh()

		v.progress.SetValue(s.Progress)

		if s.CompletionMessage != "" {
			v.completionLabel.SetText(s.CompletionMessage)
			v.completionLabel.Show()
		} else {
			v.completionLabel.Hide()
		}

		v.statusText.Text = s.Status
		v.statusText.Refresh()

		if s.Running {
			v.toggleButton.SetText(i18n.T("Pause"))
			v.toggleButton.SetIcon(theme.MediaPauseIcon())
		} else {
			v.toggleButton.SetText(i18n.T("Start"))
			v.toggleButton.SetIcon(theme.MediaPlayIcon())
		}
		if s.Remaining > 0 || s.Running {
			v.toggleButton.Enable()
		} else {
			v.toggleButton.Disable()
		}
	})
}

// CreateMainWindow builds the window and wires the keyboard handlers.
func CreateMainWindow(a App, fyneApp fyne.App, size fyne.Size) (fyne.Window, *TimerView) {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = i18n.T("Countdown Timer")
	}
	w := fyneApp.NewWindow(title)

	v := NewTimerView(a, w)

	w.Canvas().SetOnTypedRune(a.HandleKeyRune)
	w.Canvas().AddShortcut(ResetShortcut, func(fyne.Shortcut) { v.reset() })

	w.SetContent(v.CanvasObject())
	w.Resize(size)
	w.Canvas().Focus(v.entry)

	v.UpdateDisplay(a.Snapshot())
	return w, v
}

type TappableContainer struct {
	widget.BaseWidget
	Content           fyne.CanvasObject
	OnTappedPrimary   func()
	OnTappedSecondary func(e *fyne.PointEvent)
}

func NewTappableContainer(c fyne.CanvasObject, onP func(), onS func(e *fyne.PointEvent)) *TappableContainer {
	t := &TappableContainer{
		Content:           c,
		OnTappedPrimary:   onP,
		OnTappedSecondary: onS,
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *TappableContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewCenter(t.Content))
}

func (t *TappableContainer) Tapped(_ *fyne.PointEvent) {
	if t.OnTappedPrimary != nil {
		t.OnTappedPrimary()
	}
}

func (t *TappableContainer) TappedSecondary(e *fyne.PointEvent) {
	if t.OnTappedSecondary != nil {
		t.OnTappedSecondary(e)
	}
}
