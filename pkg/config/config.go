// Package config loads render settings from defaults, an optional YAML
// config file, RAYTRACER_* environment variables and command line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes environment variables, e.g. RAYTRACER_WIDTH
const EnvPrefix = "RAYTRACER"

// Config contains every setting of a render run
type Config struct {
	Width           int    `mapstructure:"width" yaml:"width"`
	Height          int    `mapstructure:"height" yaml:"height"`
	SamplesPerPixel int    `mapstructure:"samples" yaml:"samples"` // 0 = scene suggestion
	MaxDepth        int    `mapstructure:"depth" yaml:"depth"`     // -1 = scene suggestion
	Workers         int    `mapstructure:"workers" yaml:"workers"` // 0 = one per CPU
	Seed            uint64 `mapstructure:"seed" yaml:"seed"`
	Scene           string `mapstructure:"scene" yaml:"scene"`
	SceneFile       string `mapstructure:"scene-file" yaml:"scene-file"`
	ScenesDir       string `mapstructure:"scenes-dir" yaml:"scenes-dir"`
	Output          string `mapstructure:"output" yaml:"output"`
	JPEGQuality     int    `mapstructure:"jpeg-quality" yaml:"jpeg-quality"`
	LogLevel        string `mapstructure:"log-level" yaml:"log-level"`
	Quiet           bool   `mapstructure:"quiet" yaml:"quiet"`
	Camera          Camera `mapstructure:"camera" yaml:"camera"`
}

// Camera holds optional overrides of the scene camera. Zero values and
// empty strings keep the scene's setting.
type Camera struct {
	Center        string  `mapstructure:"center" yaml:"center"`  // "x,y,z"
	LookAt        string  `mapstructure:"look-at" yaml:"look-at"` // "x,y,z"
	VFov          float32 `mapstructure:"vfov" yaml:"vfov"`
	Aperture      float32 `mapstructure:"aperture" yaml:"aperture"`
	FocusDistance float32 `mapstructure:"focus-distance" yaml:"focus-distance"`
}

// Default returns the configuration used when nothing else is set
func Default() Config {
	return Config{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 0,
		MaxDepth:        -1,
		Workers:         0,
		Seed:            1,
		Scene:           "default",
		ScenesDir:       "scenes",
		Output:          filepath.Join("output", "render.png"),
		JPEGQuality:     90,
		LogLevel:        "info",
	}
}

// SetDefaults registers every key with its default so that environment
// variables are seen by Unmarshal
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("samples", d.SamplesPerPixel)
	v.SetDefault("depth", d.MaxDepth)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("scene", d.Scene)
	v.SetDefault("scene-file", d.SceneFile)
	v.SetDefault("scenes-dir", d.ScenesDir)
	v.SetDefault("output", d.Output)
	v.SetDefault("jpeg-quality", d.JPEGQuality)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("quiet", d.Quiet)
	v.SetDefault("camera.center", d.Camera.Center)
	v.SetDefault("camera.look-at", d.Camera.LookAt)
	v.SetDefault("camera.vfov", d.Camera.VFov)
	v.SetDefault("camera.aperture", d.Camera.Aperture)
	v.SetDefault("camera.focus-distance", d.Camera.FocusDistance)
}

// BindFlags defines the render flags on flags and binds them to v
func BindFlags(flags *pflag.FlagSet, v *viper.Viper) error {
	d := Default()
	flags.IntP("width", "W", d.Width, "image width in pixels")
	flags.IntP("height", "H", d.Height, "image height in pixels")
	flags.IntP("samples", "s", d.SamplesPerPixel, "samples per pixel (0 = scene suggestion)")
	flags.IntP("depth", "d", d.MaxDepth, "maximum bounce depth (-1 = scene suggestion)")
	flags.IntP("workers", "j", d.Workers, "render goroutines (0 = one per CPU)")
	flags.Uint64("seed", d.Seed, "random seed for sampling and procedural scenes")
	flags.String("scene", d.Scene, "built-in scene name")
	flags.String("scene-file", d.SceneFile, "YAML scene file (overrides --scene)")
	flags.String("scenes-dir", d.ScenesDir, "directory searched for YAML scene files")
	flags.StringP("output", "o", d.Output, "output image path (.png, .jpg or .jpeg)")
	flags.Int("jpeg-quality", d.JPEGQuality, "JPEG quality 1-100")
	flags.String("log-level", d.LogLevel, "log level (trace, debug, info, warn, error)")
	flags.BoolP("quiet", "q", d.Quiet, "hide the progress bar")
	flags.String("from", "", `camera position override "x,y,z"`)
	flags.String("at", "", `camera look-at override "x,y,z"`)
	flags.Float32("vfov", 0, "vertical field of view override in degrees")
	flags.Float32("aperture", 0, "lens aperture override")
	flags.Float32("focus-distance", 0, "focus distance override")

	keys := map[string]string{
		"from":           "camera.center",
		"at":             "camera.look-at",
		"vfov":           "camera.vfov",
		"aperture":       "camera.aperture",
		"focus-distance": "camera.focus-distance",
	}
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		key := f.Name
		if mapped, ok := keys[key]; ok {
			key = mapped
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = errors.Join(bindErr, fmt.Errorf("bind flag %s: %w", f.Name, err))
		}
	})
	return bindErr
}

// Load reads the configuration from v. configFile, when non-empty, must
// exist; otherwise raytracer.yaml is looked for in the working directory
// and ~/.config/raytracer and skipped if absent.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("raytracer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "raytracer"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every problem with the configuration at once
func (c *Config) Validate() error {
	var problems []string
	if c.Width <= 0 || c.Height <= 0 {
		problems = append(problems, fmt.Sprintf("image size %dx%d must be positive", c.Width, c.Height))
	}
	if c.SamplesPerPixel < 0 {
		problems = append(problems, fmt.Sprintf("samples %d must not be negative", c.SamplesPerPixel))
	}
	if c.MaxDepth < -1 {
		problems = append(problems, fmt.Sprintf("depth %d must be -1 or more", c.MaxDepth))
	}
	if c.Workers < 0 {
		problems = append(problems, fmt.Sprintf("workers %d must not be negative", c.Workers))
	}
	if c.Output == "" {
		problems = append(problems, "output path is empty")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		problems = append(problems, fmt.Sprintf("jpeg quality %d must be in 1-100", c.JPEGQuality))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("log level %q is unknown", c.LogLevel))
	}
	if c.Camera.VFov < 0 || c.Camera.VFov >= 180 {
		problems = append(problems, fmt.Sprintf("vfov %v must be below 180", c.Camera.VFov))
	}
	if c.Camera.Aperture < 0 {
		problems = append(problems, fmt.Sprintf("aperture %v must not be negative", c.Camera.Aperture))
	}
	if _, err := c.CameraOverride(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Level returns the parsed log level
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// CameraOverride converts the camera settings into a renderer override
func (c *Config) CameraOverride() (renderer.CameraConfig, error) {
	override := renderer.CameraConfig{
		VFov:          c.Camera.VFov,
		Aperture:      c.Camera.Aperture,
		FocusDistance: c.Camera.FocusDistance,
	}
	var err error
	if c.Camera.Center != "" {
		if override.Center, err = ParseVec3(c.Camera.Center); err != nil {
			return renderer.CameraConfig{}, fmt.Errorf("camera center: %w", err)
		}
	}
	if c.Camera.LookAt != "" {
		if override.LookAt, err = ParseVec3(c.Camera.LookAt); err != nil {
			return renderer.CameraConfig{}, fmt.Errorf("camera look-at: %w", err)
		}
	}
	return override, nil
}

// ResolveSampling applies the configured sampling over a scene's suggestion
func (c *Config) ResolveSampling(hint renderer.SamplingConfig) renderer.SamplingConfig {
	result := hint
	if c.SamplesPerPixel > 0 {
		result.SamplesPerPixel = c.SamplesPerPixel
	}
	if c.MaxDepth >= 0 {
		result.MaxDepth = c.MaxDepth
	}
	if result.SamplesPerPixel <= 0 {
		result.SamplesPerPixel = renderer.DefaultSamplingConfig().SamplesPerPixel
	}
	return result
}

// ParseVec3 parses "x,y,z"
func ParseVec3(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("vector %q must have three comma separated components", s)
	}
	var xyz [3]core.Scalar
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("vector %q: %w", s, err)
		}
		xyz[i] = core.Scalar(f)
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}
