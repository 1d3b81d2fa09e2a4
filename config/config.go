package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/neurlang/spectrograph/render"
	"github.com/neurlang/spectrograph/spectrogram"
	"github.com/neurlang/spectrograph/window"
)

// EnvPrefix prefixes environment overrides, e.g. SPECTROGRAPH_CHUNK_SIZE.
const EnvPrefix = "SPECTROGRAPH"

// Config holds every setting of a render run.
type Config struct {
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`

	ChunkSize int     `mapstructure:"chunk_size"`
	Overlap   float64 `mapstructure:"overlap"`
	Window    string  `mapstructure:"window"`
	Engine    string  `mapstructure:"engine"`
	Backend   string  `mapstructure:"backend"`
	Workers   int     `mapstructure:"workers"`
	NoCache   bool    `mapstructure:"no_cache"`

	Width     int     `mapstructure:"width"`
	Height    int     `mapstructure:"height"`
	LogMode   bool    `mapstructure:"log_mode"`
	Mel       bool    `mapstructure:"mel"`
	Threshold float64 `mapstructure:"threshold"`
	TopDown   bool    `mapstructure:"top_down"`

	HalfOutput string `mapstructure:"half_output"`
	Report     string `mapstructure:"report"`
	LogLevel   string `mapstructure:"log_level"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input", "")
	v.SetDefault("output", "")
	v.SetDefault("half_output", "")
	v.SetDefault("report", "")

	v.SetDefault("chunk_size", 1024)
	v.SetDefault("overlap", 0.5)
	v.SetDefault("window", "hann")
	v.SetDefault("engine", "iterative")
	v.SetDefault("backend", "radix2")
	v.SetDefault("workers", 0)
	v.SetDefault("no_cache", false)

	v.SetDefault("width", 1024)
	v.SetDefault("height", 512)
	v.SetDefault("log_mode", false)
	v.SetDefault("mel", false)
	v.SetDefault("threshold", render.DefaultThreshold)
	v.SetDefault("top_down", false)

	v.SetDefault("log_level", "info")
}

// New returns a viper instance with defaults and environment overrides.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges a YAML (or any viper supported) config file into v.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks every option before any audio is read.
func (c *Config) Validate() error {
	if _, err := c.SpectrogramOptions(); err != nil {
		return err
	}
	if err := c.RenderOptions().Validate(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SpectrogramOptions converts the analysis settings.
func (c *Config) SpectrogramOptions() (spectrogram.Options, error) {
	w, err := window.ByName(c.Window)
	if err != nil {
		return spectrogram.Options{}, &spectrogram.ConfigError{Field: "window", Value: c.Window, Err: err}
	}
	opts := spectrogram.Options{
		ChunkSize:           c.ChunkSize,
		Overlap:             c.Overlap,
		Window:              w,
		Engine:              c.Engine,
		Backend:             c.Backend,
		Workers:             c.Workers,
		DisableTwiddleCache: c.NoCache,
	}
	return opts, opts.Validate()
}

// RenderOptions converts the drawing settings.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Height:    c.Height,
		LogMode:   c.LogMode,
		Mel:       c.Mel,
		Threshold: c.Threshold,
		TopDown:   c.TopDown,
		Workers:   c.Workers,
	}
}

// OutputPath is Output, or the input name with a .png suffix.
func (c *Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return c.Input + ".png"
}
