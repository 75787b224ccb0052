// Package config provides configuration loading and access for the simulator.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulator configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Room       RoomConfig       `yaml:"room"`
	Racks      RackConfig       `yaml:"racks"`
	Reflectors ReflectorConfig  `yaml:"reflectors"`
	Beam       BeamConfig       `yaml:"beam"`
	Volume     VolumeConfig     `yaml:"volume"`
	Links      []LinkSpecConfig `yaml:"links"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds viewer display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// RoomConfig holds the room dimensions in meters.
// The floor spans [0, width] x [0, depth]; height is the ceiling.
type RoomConfig struct {
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
	Height float64 `yaml:"height"`
}

// RackConfig holds the procedural rack grid parameters.
// Racks sit on a CountX x CountZ floor grid; one transceiver endpoint
// is mounted on top of each rack.
type RackConfig struct {
	CountX   int     `yaml:"count_x"`
	CountZ   int     `yaml:"count_z"`
	SpacingX float64 `yaml:"spacing_x"` // center-to-center, meters
	SpacingZ float64 `yaml:"spacing_z"`
	Width    float64 `yaml:"width"`
	Depth    float64 `yaml:"depth"`
	Height   float64 `yaml:"height"`
	MarginX  float64 `yaml:"margin_x"` // first rack center offset from the room origin
	MarginZ  float64 `yaml:"margin_z"`
}

// ReflectorConfig holds the ceiling reflector grid parameters.
// Reflecting elements hang at a fixed height on a CountX x CountZ grid,
// addressed by row-major index.
type ReflectorConfig struct {
	CountX  int     `yaml:"count_x"`
	CountZ  int     `yaml:"count_z"`
	Height  float64 `yaml:"height"`
	MarginX float64 `yaml:"margin_x"`
	MarginZ float64 `yaml:"margin_z"`
}

// BeamConfig holds the Gaussian beam parameters shared by all links.
type BeamConfig struct {
	Waist      float64 `yaml:"waist"`      // beam waist w0, meters
	Wavelength float64 `yaml:"wavelength"` // meters
	Power      float64 `yaml:"power"`      // watts, used for intensity queries
}

// VolumeConfig holds collision volume fidelity settings.
// Segment counts affect mesh resolution only, not physical correctness.
type VolumeConfig struct {
	AxialSegments  int `yaml:"axial_segments"`
	RadialSegments int `yaml:"radial_segments"`
}

// LinkSpecConfig declares one link between two transceiver endpoints.
// Reflector -1 means a direct single-segment link; any other value is a
// row-major index into the ceiling reflector grid and yields a
// two-segment reflected link.
type LinkSpecConfig struct {
	Transmitter int `yaml:"transmitter"`
	Receiver    int `yaml:"receiver"`
	Reflector   int `yaml:"reflector"`
}

// TelemetryConfig holds telemetry output settings.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // empty = CSV output disabled
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	EndpointCount  int     // Racks.CountX * Racks.CountZ
	ReflectorCount int     // Reflectors.CountX * Reflectors.CountZ
	ScreenW32      float32 // Screen.Width as float32
	ScreenH32      float32 // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the engine cannot run with.
func (c *Config) validate() error {
	if c.Beam.Waist <= 0 {
		return fmt.Errorf("config: beam waist must be > 0, got %g", c.Beam.Waist)
	}
	if c.Beam.Wavelength <= 0 {
		return fmt.Errorf("config: beam wavelength must be > 0, got %g", c.Beam.Wavelength)
	}
	if c.Volume.AxialSegments < 1 {
		return fmt.Errorf("config: volume axial_segments must be >= 1, got %d", c.Volume.AxialSegments)
	}
	if c.Volume.RadialSegments < 3 {
		return fmt.Errorf("config: volume radial_segments must be >= 3, got %d", c.Volume.RadialSegments)
	}
	if c.Racks.CountX < 1 || c.Racks.CountZ < 1 {
		return fmt.Errorf("config: rack grid must be at least 1x1, got %dx%d", c.Racks.CountX, c.Racks.CountZ)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.EndpointCount = c.Racks.CountX * c.Racks.CountZ
	c.Derived.ReflectorCount = c.Reflectors.CountX * c.Reflectors.CountZ
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML saves the configuration to the given path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
