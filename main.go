package main

import (
	"CountDown/config"
	"CountDown/ui"
	"context"
	"embed"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

//go:embed assets/*
var content embed.FS

func main() {
	fyneApp := app.NewWithID("io.github.countdown")

	if iconBytes, err := content.ReadFile("assets/icon.svg"); err == nil {
		fyneApp.SetIcon(fyne.NewStaticResource("icon.svg", iconBytes))
	} else {
		log.Printf("Failed to load icon. %v", err)
	}

	cfg, err := config.NewManager("")
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	settings := cfg.Get()

	fyneApp.Settings().SetTheme(ui.NewCustomTheme(settings.Appearance.BackgroundOpacity, settings.Appearance.BackgroundColor))

	a := NewAppManager(fyneApp, cfg, content)

	size := fyne.NewSize(float32(settings.Appearance.WindowWidth), float32(settings.Appearance.WindowHeight))
	w, view := ui.CreateMainWindow(a, fyneApp, size)
	a.mainWindow = w
	a.view = view

	ctx, cancel := context.WithCancel(context.Background())
	// With a tray the countdown keeps running there; Quit comes from the tray menu.
	a.SetupTray()
	a.interceptClose()
	w.SetOnClosed(func() {
		cancel()
	})

	go a.Run(ctx)

	w.ShowAndRun()
}
