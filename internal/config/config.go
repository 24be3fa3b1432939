// Package config provides configuration for the editor agent. Server
// settings come from environment variables with sensible defaults; editor
// tuning knobs may additionally be overridden by an editor.yaml file in the
// data directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// Default values
	DefaultPort     = 8690
	DefaultLogLevel = "info"
	DefaultDataDir  = ".video-editor"

	// Environment variable names
	EnvPort     = "VEDITOR_PORT"
	EnvLogLevel = "VEDITOR_LOG_LEVEL"
	EnvDataDir  = "VEDITOR_DATA_DIR"
	EnvHeadless = "VEDITOR_HEADLESS"

	// Database filename
	DBFilename = "editor.db"

	// Tuning filename, read from the data directory when present
	TuningFilename = "editor.yaml"

	// Editor tuning defaults
	DefaultPixelsPerSecond = 50.0
	DefaultHistoryDepth    = 50
	DefaultExportFrameRate = 30.0
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	DataDir() string
	DBPath() string
	PixelsPerSecond() float64
	HistoryDepth() int
	ExportFrameRate() float64
	Headless() bool
}

// Tuning are the editor knobs the yaml file may override.
type Tuning struct {
	PixelsPerSecond float64 `yaml:"pixels_per_second"`
	HistoryDepth    int     `yaml:"history_depth"`
	ExportFrameRate float64 `yaml:"export_frame_rate"`
}

// EnvConfig reads configuration from environment variables plus the optional
// tuning file.
type EnvConfig struct {
	port     int
	logLevel string
	dataDir  string
	headless bool
	tuning   Tuning
}

// New creates a new EnvConfig with defaults, environment variable overrides,
// and tuning-file overrides.
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		port:     DefaultPort,
		logLevel: DefaultLogLevel,
		dataDir:  defaultDataDir(),
		tuning: Tuning{
			PixelsPerSecond: DefaultPixelsPerSecond,
			HistoryDepth:    DefaultHistoryDepth,
			ExportFrameRate: DefaultExportFrameRate,
		},
	}

	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		cfg.port = port
	}

	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}

	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	if h := os.Getenv(EnvHeadless); h == "1" || h == "true" {
		cfg.headless = true
	}

	if err := cfg.loadTuning(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadTuning merges editor.yaml over the defaults. A missing file is fine; a
// malformed one is a startup error rather than silently ignored knobs.
func (c *EnvConfig) loadTuning() error {
	path := filepath.Join(c.dataDir, TuningFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", TuningFilename, err)
	}

	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("invalid %s: %w", TuningFilename, err)
	}

	if t.PixelsPerSecond > 0 {
		c.tuning.PixelsPerSecond = t.PixelsPerSecond
	}
	if t.HistoryDepth > 0 {
		c.tuning.HistoryDepth = t.HistoryDepth
	}
	if t.ExportFrameRate > 0 {
		c.tuning.ExportFrameRate = t.ExportFrameRate
	}
	return nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory path
func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite database file
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// PixelsPerSecond returns the ruler scale at 100% zoom
func (c *EnvConfig) PixelsPerSecond() float64 {
	return c.tuning.PixelsPerSecond
}

// HistoryDepth returns the undo stack bound
func (c *EnvConfig) HistoryDepth() int {
	return c.tuning.HistoryDepth
}

// ExportFrameRate returns the frame rate used for EDL timecode
func (c *EnvConfig) ExportFrameRate() float64 {
	return c.tuning.ExportFrameRate
}

// Headless reports whether the system tray should be skipped
func (c *EnvConfig) Headless() bool {
	return c.headless
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
