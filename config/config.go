// Package config loads and saves the user settings file.
package config

import (
	"CountDown/timer"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// AppName names the settings directory.
const AppName = "countdown"

type Config struct {
	Language     string             `yaml:"language"`
	Timer        TimerConfig        `yaml:"timer"`
	Sound        SoundConfig        `yaml:"sound"`
	Notification NotificationConfig `yaml:"notification"`
	Appearance   AppearanceConfig   `yaml:"appearance"`
}

type TimerConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

type SoundConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Completion string  `yaml:"completion"`
	Volume     float64 `yaml:"volume"`
	Directory  string  `yaml:"directory"`
}

type NotificationConfig struct {
	Enabled bool `yaml:"enabled"`
}

type AppearanceConfig struct {
	BackgroundOpacity float64 `yaml:"background_opacity"`
	// BackgroundColor is "#rrggbb", or empty for the theme's background.
	BackgroundColor string `yaml:"background_color"`
	ShowInTray      bool   `yaml:"show_in_tray"`
	WindowWidth     int    `yaml:"window_width"`
	WindowHeight    int    `yaml:"window_height"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			TickInterval: timer.DefaultTickInterval,
		},
		Sound: SoundConfig{
			Enabled:    true,
			Completion: timer.DefaultCompletionSound,
		},
		Notification: NotificationConfig{
			Enabled: true,
		},
		Appearance: AppearanceConfig{
			BackgroundOpacity: 0.9,
			ShowInTray:        true,
			WindowWidth:       timer.WindowWidth,
			WindowHeight:      timer.WindowHeight,
		},
	}
}

// Validate replaces out-of-range values with usable ones.
func (c *Config) Validate() {
	d := DefaultConfig()
	if c.Timer.TickInterval <= 0 {
		c.Timer.TickInterval = d.Timer.TickInterval
	}
	if c.Sound.Completion == "" {
		c.Sound.Completion = d.Sound.Completion
	}
	if c.Appearance.BackgroundOpacity < 0 {
		c.Appearance.BackgroundOpacity = 0
	}
	if c.Appearance.BackgroundOpacity > 1 {
		c.Appearance.BackgroundOpacity = 1
	}
	if _, ok := ParseColor(c.Appearance.BackgroundColor); !ok {
		c.Appearance.BackgroundColor = ""
	}
	if c.Appearance.WindowWidth <= 0 {
		c.Appearance.WindowWidth = d.Appearance.WindowWidth
	}
	if c.Appearance.WindowHeight <= 0 {
		c.Appearance.WindowHeight = d.Appearance.WindowHeight
	}
}

// Manager owns the settings file.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	path   string
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, AppName, "config.yaml"), nil
}

// NewManager loads the file at path, or DefaultPath when path is empty. A
// missing file is created with the defaults. A file that cannot be read or
// decoded is left alone and the defaults are used in memory.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	m := &Manager{path: path}
	if err := m.load(); err != nil {
		m.config = DefaultConfig()
		if !os.IsNotExist(err) {
			log.Printf("Config %s unusable, using defaults: %v", path, err)
			return m, nil
		}
		if err := m.Save(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode %s: %w", m.path, err)
	}
	cfg.Validate()

	m.config = cfg
	return nil
}

// Save writes the current settings to disk.
func (m *Manager) Save() error {
	m.mu.RLock()
	data, err := yaml.Marshal(m.config)
	m.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.config
}

// Update applies fn to the settings, validates and saves them.
func (m *Manager) Update(fn func(*Config)) error {
	m.mu.Lock()
	fn(m.config)
	m.config.Validate()
	m.mu.Unlock()
	return m.Save()
}

// Path returns the settings file location.
func (m *Manager) Path() string { return m.path }
