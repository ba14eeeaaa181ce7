package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	Display DisplayConfig `yaml:"display"`
	Sound   SoundConfig   `yaml:"sound"`
	Theme   ThemeConfig   `yaml:"theme"`
	Log     LogConfig     `yaml:"log"`
}

type AppConfig struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
}

type DisplayConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"` // readout refresh period
	FontSize     float32       `yaml:"font_size"`
	ShowLapDelta bool          `yaml:"show_lap_delta"`
}

type SoundConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`      // beep volume, base 2 exponent; 0 is unchanged
	SplitSound string  `yaml:"split_sound"` // optional wav file played on split
}

type ThemeConfig struct {
	DarkMode bool `yaml:"dark_mode"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

const (
	MinTickInterval = time.Millisecond
	MaxTickInterval = time.Second
)

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:         "Stopwatch",
			Version:      "1.0.0",
			WindowWidth:  550,
			WindowHeight: 550,
		},
		Display: DisplayConfig{
			TickInterval: 10 * time.Millisecond,
			FontSize:     40,
			ShowLapDelta: true,
		},
		Sound: SoundConfig{
			Enabled: true,
			Volume:  0,
		},
		Theme: ThemeConfig{
			DarkMode: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.App.WindowWidth <= 0 || c.App.WindowHeight <= 0 {
		return errors.Errorf("invalid window size %dx%d", c.App.WindowWidth, c.App.WindowHeight)
	}
	if c.Display.TickInterval < MinTickInterval || c.Display.TickInterval > MaxTickInterval {
		return errors.Errorf("tick_interval %v out of range [%v, %v]",
			c.Display.TickInterval, MinTickInterval, MaxTickInterval)
	}
	if c.Display.FontSize <= 0 {
		return errors.Errorf("invalid font_size %v", c.Display.FontSize)
	}
	if c.Sound.Volume < -10 || c.Sound.Volume > 10 {
		return errors.Errorf("volume %v out of range [-10, 10]", c.Sound.Volume)
	}
	return nil
}

type Manager struct {
	config     *Config
	configPath string
}

// NewManager loads the config at path, or at the default location if path is
// empty. A missing file is created with the default settings.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		configDir, err := getConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(configDir, "config.yaml")
	}

	path, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "expand %s", path)
	}

	manager := &Manager{
		configPath: path,
	}

	err = manager.loadConfig()
	switch {
	case errors.Is(err, os.ErrNotExist):
		manager.config = DefaultConfig()
		if err := manager.SaveConfig(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	return manager, nil
}

func (m *Manager) loadConfig() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return errors.Wrapf(err, "read %s", m.configPath)
	}

	// keys absent from the file keep their defaults
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return errors.Wrapf(err, "parse %s", m.configPath)
	}
	if err := config.Validate(); err != nil {
		return errors.Wrapf(err, "invalid config %s", m.configPath)
	}

	m.config = config
	return nil
}

func (m *Manager) SaveConfig() error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}

	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.Wrapf(err, "create %s", configDir)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", m.configPath)
	}
	return nil
}

func (m *Manager) GetConfig() *Config {
	return m.config
}

func (m *Manager) Path() string {
	return m.configPath
}

func getConfigDir() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "locate home directory")
	}
	return filepath.Join(homeDir, ".stopwatch"), nil
}

func (m *Manager) UpdateDisplayConfig(config DisplayConfig) error {
	return m.update(func(c *Config) { c.Display = config })
}

func (m *Manager) UpdateSoundConfig(config SoundConfig) error {
	return m.update(func(c *Config) { c.Sound = config })
}

func (m *Manager) UpdateThemeConfig(config ThemeConfig) error {
	return m.update(func(c *Config) { c.Theme = config })
}

// update applies fn to a copy and only commits it if the result validates
// and is written to disk.
func (m *Manager) update(fn func(*Config)) error {
	next := *m.config
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	prev := m.config
	m.config = &next
	if err := m.SaveConfig(); err != nil {
		m.config = prev
		return err
	}
	return nil
}
