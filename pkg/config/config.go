package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// EnvPrefix is prepended to every environment variable override,
// e.g. RAYTRACER_MAX_DEPTH
const EnvPrefix = "RAYTRACER"

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of one render invocation
type Config struct {
	Scene     string  `mapstructure:"scene"`      // Scene file path or built-in scene name
	Output    string  `mapstructure:"output"`     // Output image path (.ppm or .png)
	Width     int     `mapstructure:"width"`      // Image width in pixels
	Height    int     `mapstructure:"height"`     // Image height in pixels
	Samples   int     `mapstructure:"samples"`    // Samples per pixel
	MaxDepth  int     `mapstructure:"max-depth"`  // Maximum ray bounce depth
	Gamma     float64 `mapstructure:"gamma"`      // Output gamma, 1 disables correction
	Workers   int     `mapstructure:"workers"`    // Worker goroutines, 0 means one per CPU
	Seed      int64   `mapstructure:"seed"`       // Root random seed
	ScenesDir string  `mapstructure:"scenes-dir"` // Directory searched for scene files
}

// Default returns the default configuration
func Default() *Config {
	sampling := renderer.DefaultSamplingConfig()
	return &Config{
		Scene:     "default",
		Output:    "render.ppm",
		Width:     sampling.Width,
		Height:    sampling.Height,
		Samples:   sampling.SamplesPerPixel,
		MaxDepth:  sampling.MaxDepth,
		Gamma:     1.0,
		Workers:   sampling.NumWorkers,
		Seed:      sampling.Seed,
		ScenesDir: "scenes",
	}
}

// New creates a viper instance carrying the defaults and environment overrides
func New() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("scene", d.Scene)
	v.SetDefault("output", d.Output)
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("samples", d.Samples)
	v.SetDefault("max-depth", d.MaxDepth)
	v.SetDefault("gamma", d.Gamma)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("scenes-dir", d.ScenesDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// AddFlags registers one flag per setting on flags
func AddFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.String("scene", d.Scene, "scene file or built-in scene name")
	flags.StringP("output", "o", d.Output, "output image (.ppm or .png)")
	flags.Int("width", d.Width, "image width in pixels")
	flags.Int("height", d.Height, "image height in pixels")
	flags.Int("samples", d.Samples, "samples per pixel")
	flags.Int("max-depth", d.MaxDepth, "maximum ray bounce depth")
	flags.Float64("gamma", d.Gamma, "output gamma (1 disables correction, 2.2 is typical)")
	flags.Int("workers", d.Workers, "render workers (0 uses every CPU)")
	flags.Int64("seed", d.Seed, "random seed for pixel jitter")
	flags.String("scenes-dir", d.ScenesDir, "directory searched for scene files")
}

// BindFlags makes explicitly set flags override file and environment values
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			bindErr = fmt.Errorf("while binding flag %q: %w", f.Name, err)
		}
	})
	return bindErr
}

// Load reads the config file into v and decodes the result. Without an
// explicit configFile, raytracer.yaml in the working directory is used if present.
// Precedence is flag, environment, config file, default.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("raytracer")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("while reading config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("while decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects settings that cannot produce an image
func (c *Config) Validate() error {
	var problems []string
	if c.Width < 2 || c.Height < 2 {
		problems = append(problems, fmt.Sprintf("image must be at least 2x2, got %dx%d", c.Width, c.Height))
	}
	if c.Samples < 1 {
		problems = append(problems, fmt.Sprintf("samples must be positive, got %d", c.Samples))
	}
	if c.MaxDepth < 0 {
		problems = append(problems, fmt.Sprintf("max-depth must not be negative, got %d", c.MaxDepth))
	}
	if !(c.Gamma > 0) {
		problems = append(problems, fmt.Sprintf("gamma must be positive, got %v", c.Gamma))
	}
	if c.Workers < 0 {
		problems = append(problems, fmt.Sprintf("workers must not be negative, got %d", c.Workers))
	}
	if c.Scene == "" {
		problems = append(problems, "no scene given")
	}
	if c.Output == "" {
		problems = append(problems, "no output given")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// SamplingConfig returns the renderer settings of this configuration
func (c *Config) SamplingConfig() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		Width:           c.Width,
		Height:          c.Height,
		SamplesPerPixel: c.Samples,
		MaxDepth:        c.MaxDepth,
		NumWorkers:      c.Workers,
		Seed:            c.Seed,
	}
}
