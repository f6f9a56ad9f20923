package luminal

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds window, font and camera settings. It is read from YAML;
// fields absent from the file keep their defaults.
type Config struct {
	Width       int        `yaml:"width"`
	Height      int        `yaml:"height"`
	Title       string     `yaml:"title"`
	Samples     int        `yaml:"samples"` // MSAA samples, 0 disables
	VSync       bool       `yaml:"vsync"`
	Transparent bool       `yaml:"transparent"` // Transparent framebuffer
	Resizable   bool       `yaml:"resizable"`
	DebugOutput bool       `yaml:"debug_output"` // Install the driver debug hook
	ClearColor  [4]float32 `yaml:"clear_color"`

	// FullscreenKey is a KeyName, for example "F11".
	FullscreenKey string `yaml:"fullscreen_key"`

	Font        string  `yaml:"font"` // Resource name, e.g. "gofont:regular"
	FontSize    float32 `yaml:"font_size"`
	AtlasWidth  int     `yaml:"atlas_width"`
	AtlasHeight int     `yaml:"atlas_height"`

	FOV  float32 `yaml:"fov"` // Vertical field of view, degrees
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`

	AssetRoot string `yaml:"asset_root"` // Filesystem root for resources
	Verbose   bool   `yaml:"verbose"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Width:         800,
		Height:        600,
		Title:         "luminal",
		Samples:       4,
		VSync:         true,
		Transparent:   true,
		Resizable:     true,
		DebugOutput:   true,
		FullscreenKey: "F11",
		Font:          BuiltinFontPrefix + "regular",
		FontSize:      28,
		AtlasWidth:    DefaultAtlasWidth,
		AtlasHeight:   DefaultAtlasHeight,
		FOV:           45,
		Near:          0.1,
		Far:           100,
	}
}

// LoadConfig reads path over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Samples < 0 {
		errs = append(errs, fmt.Errorf("samples must not be negative, got %d", c.Samples))
	}
	if _, ok := ParseKey(c.FullscreenKey); !ok {
		errs = append(errs, fmt.Errorf("unknown fullscreen key %q", c.FullscreenKey))
	}
	if c.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("font size must be positive, got %g", c.FontSize))
	}
	if c.AtlasWidth <= 0 || c.AtlasHeight <= 0 {
		errs = append(errs, fmt.Errorf("atlas size must be positive, got %dx%d", c.AtlasWidth, c.AtlasHeight))
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov must be in (0, 180), got %g", c.FOV))
	}
	if c.Near <= 0 || c.Far <= c.Near {
		errs = append(errs, fmt.Errorf("clip planes must satisfy 0 < near < far, got %g, %g", c.Near, c.Far))
	}
	return errors.Join(errs...)
}

// ClearColorValue returns ClearColor as a Color.
func (c Config) ClearColorValue() Color {
	return Color{R: c.ClearColor[0], G: c.ClearColor[1], B: c.ClearColor[2], A: c.ClearColor[3]}
}

// FullscreenKeyValue returns the parsed FullscreenKey, or F11 if invalid.
func (c Config) FullscreenKeyValue() Key {
	if k, ok := ParseKey(c.FullscreenKey); ok {
		return k
	}
	return KeyF11
}

// AtlasOptions returns the atlas options implied by the config.
func (c Config) AtlasOptions() []AtlasOption {
	return []AtlasOption{WithAtlasSize(c.AtlasWidth, c.AtlasHeight)}
}
