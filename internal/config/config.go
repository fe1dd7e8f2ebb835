package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/termfolio/internal/glyphgrid"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEndpoint    = "https://ai-portfolio-backend-v8f1.onrender.com/chat"
	DefaultTimeout     = 30 * time.Second
	DefaultTheme       = "terminal"
	DefaultFPS         = 60
	DefaultLoaderDelay = 900 * time.Millisecond
	DefaultDataDir     = ".termfolio"
	DefaultLogFile     = "termfolio.log"
	DefaultAddr        = ":8000"
	DefaultDatabase    = "database.db"
	DefaultResume      = "resume.json"
	DefaultModel       = "gemini-2.0-flash"

	EnvEndpoint = "TERMFOLIO_ENDPOINT"
	EnvTheme    = "TERMFOLIO_THEME"
	EnvAPIKey   = "GEMINI_API_KEY"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

type Config struct {
	Endpoint    string        `yaml:"endpoint"`
	Timeout     time.Duration `yaml:"timeout"`
	Theme       string        `yaml:"theme"`
	FPS         int           `yaml:"fps"`
	Route       string        `yaml:"route"`
	LoaderDelay time.Duration `yaml:"loader_delay"`
	DataDir     string        `yaml:"data_dir"`
	Content     string        `yaml:"content"`
	Preset      string        `yaml:"preset"`
	Grid        GridConfig    `yaml:"grid"`
	Log         LogConfig     `yaml:"log"`
	Backend     BackendConfig `yaml:"backend"`
}

type GridConfig struct {
	CellSize       float64 `yaml:"cell_size"`
	MaxPixelRatio  float64 `yaml:"max_pixel_ratio"`
	Radius         float64 `yaml:"radius"`
	Decay          float64 `yaml:"decay"`
	ScrambleChance float64 `yaml:"scramble_chance"`
	FlickerChance  float64 `yaml:"flicker_chance"`
	FlickerFloor   float64 `yaml:"flicker_floor"`
	Threshold      float64 `yaml:"threshold"`
	Charset        string  `yaml:"charset"`
}

type LogConfig struct {
	File    string `yaml:"file"`
	Verbose bool   `yaml:"verbose"`
}

type BackendConfig struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Resume   string `yaml:"resume"`
	Model    string `yaml:"model"`
	// APIKey is only read from the environment.
	APIKey string `yaml:"-"`
}

func DefaultGrid() GridConfig {
	return GridConfig{
		CellSize:       glyphgrid.DefaultCellSize,
		MaxPixelRatio:  glyphgrid.DefaultMaxPixelRatio,
		Radius:         glyphgrid.DefaultRadius,
		Decay:          glyphgrid.DefaultDecay,
		ScrambleChance: glyphgrid.DefaultScrambleChance,
		FlickerChance:  glyphgrid.DefaultFlickerChance,
		FlickerFloor:   glyphgrid.DefaultFlickerFloor,
		Threshold:      glyphgrid.DefaultThreshold,
		Charset:        glyphgrid.DefaultCharset,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Endpoint:    DefaultEndpoint,
		Timeout:     DefaultTimeout,
		Theme:       DefaultTheme,
		FPS:         DefaultFPS,
		Route:       "/",
		LoaderDelay: DefaultLoaderDelay,
		DataDir:     DefaultDataDir,
		Preset:      "default",
		Grid:        DefaultGrid(),
		Log:         LogConfig{File: DefaultLogFile},
		Backend: BackendConfig{
			Addr:     DefaultAddr,
			Database: DefaultDatabase,
			Resume:   DefaultResume,
			Model:    DefaultModel,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from the environment through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := getenv(EnvTheme); v != "" {
		c.Theme = v
	}
	if v := getenv(EnvAPIKey); v != "" {
		c.Backend.APIKey = v
	}
}

// UsePreset replaces the grid tuning with a named preset.
func (c *Config) UsePreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	c.Preset = name
	c.Grid = *p
	return nil
}

// LogPath resolves the log file against the data directory.
func (c *Config) LogPath() string { return c.resolve(c.Log.File) }

// DatabasePath resolves the backend database against the data directory.
func (c *Config) DatabasePath() string { return c.resolve(c.Backend.Database) }

func (c *Config) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// Params merges the grid tuning into base, keeping base colors.
func (g GridConfig) Params(base glyphgrid.Params) glyphgrid.Params {
	base.CellSize = g.CellSize
	base.MaxPixelRatio = g.MaxPixelRatio
	base.Radius = g.Radius
	base.Decay = g.Decay
	base.ScrambleChance = g.ScrambleChance
	base.FlickerChance = g.FlickerChance
	base.FlickerFloor = g.FlickerFloor
	base.Threshold = g.Threshold
	if g.Charset != "" {
		base.Charset = g.Charset
	}
	return base
}
