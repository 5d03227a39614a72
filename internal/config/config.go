package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/idilsaglam/countdown/internal/countdown"
)

// Config holds the process-wide settings, read once at startup.
type Config struct {
	Countdown CountdownConfig `mapstructure:"countdown"`
	UI        UIConfig        `mapstructure:"ui"`
	Store     StoreConfig     `mapstructure:"store"`
}

// CountdownConfig are the widget defaults layered over the built-ins.
type CountdownConfig struct {
	Text       string `mapstructure:"text"`
	Pad        bool   `mapstructure:"pad"`
	Fast       bool   `mapstructure:"fast"`
	AutoStart  bool   `mapstructure:"auto_start"`
	DaysBefore int    `mapstructure:"days_before"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// StoreConfig says where saved events live.
type StoreConfig struct {
	Dir string `mapstructure:"dir"`
}

func configHome() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "countdown")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "countdown")
}

// Path is the config file in use: $COUNTDOWN_CONFIG or config.toml in the
// user config dir.
func Path() string {
	if p := os.Getenv("COUNTDOWN_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configHome(), "config.toml")
}

// Load reads configuration from file and env. Env var overrides use
// prefix COUNTDOWN_, e.g. COUNTDOWN_COUNTDOWN_DAYS_BEFORE=3.
func Load() (Config, error) {
	v := viper.New()

	def := countdown.DefaultOptions()
	v.SetDefault("countdown.text", def.Text)
	v.SetDefault("countdown.pad", def.Pad)
	v.SetDefault("countdown.fast", def.Fast)
	v.SetDefault("countdown.auto_start", def.AutoStart)
	v.SetDefault("countdown.days_before", def.DaysBefore)
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("store.dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "countdown"))

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("COUNTDOWN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !missingConfig(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func missingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Save writes cfg to Path, creating the directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("countdown.text", cfg.Countdown.Text)
	v.Set("countdown.pad", cfg.Countdown.Pad)
	v.Set("countdown.fast", cfg.Countdown.Fast)
	v.Set("countdown.auto_start", cfg.Countdown.AutoStart)
	v.Set("countdown.days_before", cfg.Countdown.DaysBefore)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("store.dir", cfg.Store.Dir)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Defaults converts the countdown section into widget options. The end
// callback is per widget and stays unset.
func (c Config) Defaults() countdown.Options {
	o := countdown.DefaultOptions()
	if c.Countdown.Text != "" {
		o.Text = c.Countdown.Text
	}
	o.Pad = c.Countdown.Pad
	o.Fast = c.Countdown.Fast
	o.AutoStart = c.Countdown.AutoStart
	if c.Countdown.DaysBefore >= 0 {
		o.DaysBefore = c.Countdown.DaysBefore
	}
	return o
}
