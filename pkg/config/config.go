// Package config loads daybook settings from the .daybook file, DAYBOOK_*
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/daybook/pkg/anchor"
	"tableflip.dev/daybook/pkg/imagecache"
	"tableflip.dev/daybook/pkg/visibility"
	"tableflip.dev/daybook/pkg/window"
)

// Config is the decoded configuration. Distances are terminal rows.
type Config struct {
	Path        string `mapstructure:"path" validate:"required"`
	LogLevel    string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFile     string `mapstructure:"log_file"`
	LogFormat   string `mapstructure:"log_format" validate:"oneof=json console"`
	MetricsAddr string `mapstructure:"metrics_addr"`

	Window WindowConfig `mapstructure:"window"`
	Scroll ScrollConfig `mapstructure:"scroll"`
	Focus  FocusConfig  `mapstructure:"focus"`
	Images ImageConfig  `mapstructure:"images"`
}

type WindowConfig struct {
	Capacity     int    `mapstructure:"capacity" validate:"min=1"`
	Batch        int    `mapstructure:"batch" validate:"min=1,ltefield=Capacity"`
	Before       int    `mapstructure:"before" validate:"min=0"`
	After        int    `mapstructure:"after" validate:"min=0"`
	BootstrapMin int    `mapstructure:"bootstrap_min" validate:"min=0"`
	TrimPolicy   string `mapstructure:"trim_policy" validate:"oneof=opposite front"`
}

type ScrollConfig struct {
	TopThreshold    int           `mapstructure:"top_threshold" validate:"min=0"`
	BottomThreshold int           `mapstructure:"bottom_threshold" validate:"min=0"`
	HeaderHeight    int           `mapstructure:"header_height" validate:"min=0"`
	SettleDelay     time.Duration `mapstructure:"settle_delay" validate:"gt=0"`
	ReleaseOnCommit bool          `mapstructure:"release_on_commit"`
	RetryAttempts   int           `mapstructure:"retry_attempts" validate:"min=1"`
	RetryInterval   time.Duration `mapstructure:"retry_interval" validate:"gt=0"`
}

type FocusConfig struct {
	MinOverlap    int           `mapstructure:"min_overlap" validate:"min=1"`
	Debounce      time.Duration `mapstructure:"debounce" validate:"gt=0"`
	FrameInterval time.Duration `mapstructure:"frame_interval" validate:"gt=0"`
}

type ImageConfig struct {
	Capacity    int           `mapstructure:"capacity" validate:"min=1"`
	EvictBatch  int           `mapstructure:"evict_batch" validate:"min=1"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Concurrency int           `mapstructure:"concurrency" validate:"min=1"`
}

// SetDefaults registers every key's default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("path", "~/.daybook/entries")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "~/.daybook/daybook.log")
	v.SetDefault("log_format", "json")
	v.SetDefault("metrics_addr", "")

	v.SetDefault("window.capacity", window.DefaultCapacity)
	v.SetDefault("window.batch", 6)
	v.SetDefault("window.before", 3)
	v.SetDefault("window.after", 3)
	v.SetDefault("window.bootstrap_min", 10)
	v.SetDefault("window.trim_policy", string(window.TrimOpposite))

	v.SetDefault("scroll.top_threshold", 20)
	v.SetDefault("scroll.bottom_threshold", 20)
	v.SetDefault("scroll.header_height", 0)
	v.SetDefault("scroll.settle_delay", "200ms")
	v.SetDefault("scroll.release_on_commit", true)
	v.SetDefault("scroll.retry_attempts", 30)
	v.SetDefault("scroll.retry_interval", "50ms")

	v.SetDefault("focus.min_overlap", 4)
	v.SetDefault("focus.debounce", "150ms")
	v.SetDefault("focus.frame_interval", "16ms")

	v.SetDefault("images.capacity", imagecache.DefaultCapacity)
	v.SetDefault("images.evict_batch", imagecache.DefaultEvictBatch)
	v.SetDefault("images.timeout", "10s")
	v.SetDefault("images.concurrency", imagecache.DefaultConcurrency)
}

// envReplacer maps nested keys like window.capacity to DAYBOOK_WINDOW_CAPACITY.
var envReplacer = strings.NewReplacer(".", "_")

// New returns a viper instance configured for daybook: the .daybook file is
// searched for in $DAYBOOK_CONFIG_PATH, ./ and ~/.daybook, and DAYBOOK_*
// variables override it.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigName(".daybook") // .yaml is implicit
	v.SetEnvPrefix("DAYBOOK")
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	if override := os.Getenv("DAYBOOK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".daybook"))
	}
	return v
}

// Load reads the config file (a missing file is fine) and decodes v.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = New()
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	return Decode(v)
}

// Decode unmarshals and validates v without touching the filesystem.
func Decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	var err error
	if cfg.Path, err = homedir.Expand(cfg.Path); err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	if cfg.LogFile, err = homedir.Expand(cfg.LogFile); err != nil {
		return nil, fmt.Errorf("config: expand log_file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration built from defaults alone.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Decode(v)
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

var validate = validator.New()

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// BasePath implements store.Config.
func (c *Config) BasePath() string { return c.Path }

// WindowOptions maps the window section onto window.Options.
func (c *Config) WindowOptions() window.Options {
	policy, _ := window.ParseTrimPolicy(c.Window.TrimPolicy)
	return window.Options{Capacity: c.Window.Capacity, Policy: policy}
}

// AnchorConfig maps the window and scroll sections onto anchor.Config.
func (c *Config) AnchorConfig() anchor.Config {
	return anchor.Config{
		TopThreshold:    c.Scroll.TopThreshold,
		BottomThreshold: c.Scroll.BottomThreshold,
		BootstrapMin:    c.Window.BootstrapMin,
		Batch:           c.Window.Batch,
		SettleDelay:     c.Scroll.SettleDelay,
		ReleaseOnCommit: c.Scroll.ReleaseOnCommit,
		HeaderHeight:    c.Scroll.HeaderHeight,
		RetryAttempts:   c.Scroll.RetryAttempts,
		RetryInterval:   c.Scroll.RetryInterval,
	}
}

// VisibilityConfig maps the focus section onto visibility.Config.
func (c *Config) VisibilityConfig() visibility.Config {
	return visibility.Config{
		MinOverlap:    c.Focus.MinOverlap,
		Debounce:      c.Focus.Debounce,
		FrameInterval: c.Focus.FrameInterval,
	}
}

// ImageOptions maps the images section onto imagecache.Options.
func (c *Config) ImageOptions() imagecache.Options {
	return imagecache.Options{
		Capacity:    c.Images.Capacity,
		EvictBatch:  c.Images.EvictBatch,
		Timeout:     c.Images.Timeout,
		Concurrency: c.Images.Concurrency,
	}
}
