// Package main contains the desktop application wiring and the AppManager,
// which connects the countdown engine, its command loop, audio, system
// notifications, settings and the UI.
//
// Maintenance notes / tips:
//   - Concurrency model: the engine is owned by control.Loop and only touched
//     from its goroutine. The UI talks to it exclusively through commands
//     (EnqueueCommand for fire-and-forget, Do when the caller needs the
//     result) and renders the snapshots the loop publishes.
//   - The loop publishes a snapshot before replying to a command, so after Do
//     returns Snapshot() already reflects the command.
//   - Settings are persisted through config.Manager on every change.
package main

import (
	"CountDown/audio"
	"CountDown/config"
	"CountDown/control"
	"CountDown/i18n"
	"CountDown/timer"
	"CountDown/ui"
	"context"
	"embed"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// replyTimeout bounds how long the UI waits for the loop to apply a command.
const replyTimeout = 200 * time.Millisecond

// AppManager is the main application struct, holding all state.
type AppManager struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	view       *ui.TimerView

	cfg    *config.Manager
	player *audio.Player
	engine *timer.Engine
	loop   *control.Loop

	snapLock sync.RWMutex
	snapshot timer.Snapshot

	trayMenu  *fyne.Menu
	trayItem  *fyne.MenuItem
	trayLabel string

	content assetReader
}

// assetReader is the subset of embed.FS the manager reads assets through.
type assetReader interface {
	ReadFile(name string) ([]byte, error)
}

var _ assetReader = embed.FS{}

// NewAppManager creates the engine and its loop from the saved settings.
func NewAppManager(fyneApp fyne.App, cfg *config.Manager, content assetReader) *AppManager {
	a := &AppManager{fyneApp: fyneApp, cfg: cfg, content: content}
	settings := cfg.Get()

	i18n.SetLang(settings.Language)

	a.player = audio.NewPlayer(settings.Sound.Volume)
	a.player.SetEnabled(settings.Sound.Enabled)
	if settings.Sound.Directory != "" {
		if err := a.player.LoadDir(settings.Sound.Directory); err != nil {
			log.Printf("Failed to load sounds from %s: %v", settings.Sound.Directory, err)
		}
	}

	a.engine = timer.NewEngine(
		timer.WithSoundPlayer(a.player),
		timer.WithNotifier(a),
		timer.WithCompletionSound(settings.Sound.Completion),
		timer.WithMessages(i18n.EngineMessages()),
	)
	a.snapshot = a.engine.Snapshot()

	a.loop = control.NewLoop(a.engine,
		control.WithInterval(settings.Timer.TickInterval),
		control.WithUpdateHandler(a.onUpdate),
	)
	return a
}

// Run drives the command loop until ctx is cancelled.
func (a *AppManager) Run(ctx context.Context) {
	a.loop.Run(ctx)
}

// EnqueueCommand posts a command to the command loop.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	a.loop.Enqueue(cmd)
}

// Do posts a command and waits briefly for the loop to apply it.
func (a *AppManager) Do(cmd control.Command) error {
	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()
	return a.loop.Do(ctx, cmd)
}

// Snapshot returns the last state published by the loop.
func (a *AppManager) Snapshot() timer.Snapshot {
	a.snapLock.RLock()
	defer a.snapLock.RUnlock()
	return a.snapshot
}

func (a *AppManager) onUpdate(s timer.Snapshot) {
	a.snapLock.Lock()
	a.snapshot = s
	a.snapLock.Unlock()

	if a.view != nil {
		a.view.UpdateDisplay(s)
	}
	a.updateTray(s)
}

// Notify implements timer.Notifier with a system notification.
func (a *AppManager) Notify(title, body string) {
	if !a.cfg.Get().Notification.Enabled {
		return
	}
	fyne.Do(func() {
		a.fyneApp.SendNotification(fyne.NewNotification(title, body))
	})
}

// SetupTray installs the system tray menu when the driver supports one and
// reports whether it did.
func (a *AppManager) SetupTray() bool {
	if !a.cfg.Get().Appearance.ShowInTray {
		return false
	}
	desk, ok := a.fyneApp.(desktop.App)
	if !ok {
		return false
	}

	a.trayItem = fyne.NewMenuItem(timer.FormatTime(a.Snapshot().Remaining), nil)
	a.trayItem.Disabled = true
	a.trayLabel = a.trayItem.Label

	a.trayMenu = fyne.NewMenu(i18n.T("Countdown Timer"),
		a.trayItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("Show"), func() {
			if a.mainWindow != nil {
				a.mainWindow.Show()
				a.mainWindow.RequestFocus()
			}
		}),
		fyne.NewMenuItem(i18n.T("Start/Pause"), func() {
			a.EnqueueCommand(control.Command{Type: control.CmdToggle})
		}),
		fyne.NewMenuItem(i18n.T("Reset"), func() {
			a.EnqueueCommand(control.Command{Type: control.CmdReset})
		}),
	)
	desk.SetSystemTrayMenu(a.trayMenu)
	return true
}

func (a *AppManager) updateTray(s timer.Snapshot) {
	if a.trayMenu == nil {
		return
	}
	label := timer.FormatTime(s.Remaining)
	fyne.Do(func() {
		if label == a.trayLabel {
			return
		}
		a.trayLabel = label
		a.trayItem.Label = label
		a.trayMenu.Refresh()
	})
}

// HandleKeyRune handles key presses while no widget has focus.
func (a *AppManager) HandleKeyRune(r rune) {
	switch r {
	case ' ':
		a.EnqueueCommand(control.Command{Type: control.CmdToggle})
	case 'r', 'R':
		a.EnqueueCommand(control.Command{Type: control.CmdReset})
	}
}

// ShowInfoDialog shows a dialog with the given title and the text of an
// embedded file.
func (a *AppManager) ShowInfoDialog(title, contentFile string, minSize fyne.Size) {
	bytes, err := a.content.ReadFile(contentFile)
	if err != nil {
		dialog.ShowError(err, a.mainWindow)
		return
	}

	text := widget.NewLabel(string(bytes))
	text.Wrapping = fyne.TextWrapWord

	scrollableContent := container.NewVScroll(text)
	scrollableContent.SetMinSize(minSize)

	dialog.ShowCustom(title, i18n.T("Close"), scrollableContent, a.mainWindow)
}

// Config returns the current settings.
func (a *AppManager) Config() config.Config {
	return a.cfg.Get()
}

// SoundNames lists the sounds the player can play.
func (a *AppManager) SoundNames() []string {
	return a.player.Names()
}

// SelectSound makes name the completion sound and saves it.
func (a *AppManager) SelectSound(name string) {
	a.EnqueueCommand(control.Command{Type: control.CmdSetCompletionSound, Input: name})
	a.saveSettings(func(c *config.Config) { c.Sound.Completion = name })
}

// PreviewSound plays name once.
func (a *AppManager) PreviewSound(name string) {
	a.player.Play(name)
}

// SetVolume changes the master volume and saves it.
func (a *AppManager) SetVolume(v float64) {
	a.player.SetVolume(v)
	a.saveSettings(func(c *config.Config) { c.Sound.Volume = v })
}

// SetBackgroundOpacity saves the opacity and re-themes the app.
func (a *AppManager) SetBackgroundOpacity(v float64) {
	a.saveSettings(func(c *config.Config) { c.Appearance.BackgroundOpacity = v })
	a.applyTheme()
}

// SetBackgroundColor saves the background color and re-themes the app.
func (a *AppManager) SetBackgroundColor(hex string) {
	a.saveSettings(func(c *config.Config) {
		c.Appearance.BackgroundColor = hex
		c.Validate()
	})
	a.applyTheme()
}

func (a *AppManager) applyTheme() {
	appearance := a.cfg.Get().Appearance
	a.fyneApp.Settings().SetTheme(ui.NewCustomTheme(appearance.BackgroundOpacity, appearance.BackgroundColor))
}

// SetShowInTray saves the tray setting. Turning it on installs the tray and
// makes closing the window hide it; turning it off makes closing the window
// quit again, and the tray icon is gone on the next start.
func (a *AppManager) SetShowInTray(show bool) {
	a.saveSettings(func(c *config.Config) { c.Appearance.ShowInTray = show })
	if show && a.trayMenu == nil {
		a.SetupTray()
	}
	a.interceptClose()
}

// interceptClose hides the window instead of closing it while a tray menu
// can bring it back.
func (a *AppManager) interceptClose() {
	if a.mainWindow == nil {
		return
	}
	if a.trayMenu != nil && a.cfg.Get().Appearance.ShowInTray {
		a.mainWindow.SetCloseIntercept(a.mainWindow.Hide)
		return
	}
	a.mainWindow.SetCloseIntercept(nil)
}

func (a *AppManager) saveSettings(fn func(*config.Config)) {
	if err := a.cfg.Update(fn); err != nil {
		log.Printf("Failed to save settings: %v", err)
		if a.mainWindow != nil {
			dialog.ShowError(err, a.mainWindow)
		}
	}
}
