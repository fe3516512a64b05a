// Package config provides configuration management for frame operations
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Config holds the tunable defaults of the library. All fields are
// optional; zero values fall back to the built-in defaults.
type Config struct {
	// CSVDelimiter is the default field delimiter for the CSV codec
	CSVDelimiter rune `json:"csv_delimiter" yaml:"csv_delimiter"`
	// CSVHeader controls whether CSV files carry a header row by default
	CSVHeader bool `json:"csv_header" yaml:"csv_header"`
	// InferenceSampleRows bounds how many rows CSV type inference
	// examines (0 = all rows)
	InferenceSampleRows int `json:"inference_sample_rows" yaml:"inference_sample_rows"`
	// HistogramBins is the default bin count for histograms
	HistogramBins int `json:"histogram_bins" yaml:"histogram_bins"`
	// RenderMaxRows caps how many rows frame rendering prints by
	// default (0 = all rows)
	RenderMaxRows int `json:"render_max_rows" yaml:"render_max_rows"`
}

// Default configuration values
const (
	DefaultHistogramBins = 10
	DefaultRenderMaxRows = 20
)

// Global configuration instance
var (
	globalConfig Config
	configMutex  sync.RWMutex
)

func init() {
	globalConfig = NewConfig()
}

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		CSVDelimiter:        ',',
		CSVHeader:           true,
		InferenceSampleRows: 0,
		HistogramBins:       DefaultHistogramBins,
		RenderMaxRows:       DefaultRenderMaxRows,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.CSVDelimiter == '"' || c.CSVDelimiter == '\r' || c.CSVDelimiter == '\n' {
		return fmt.Errorf("CSVDelimiter must not be a quote or line terminator")
	}
	if c.InferenceSampleRows < 0 {
		return fmt.Errorf("InferenceSampleRows must be non-negative, got %d", c.InferenceSampleRows)
	}
	if c.HistogramBins <= 0 {
		return fmt.Errorf("HistogramBins must be positive, got %d", c.HistogramBins)
	}
	if c.RenderMaxRows < 0 {
		return fmt.Errorf("RenderMaxRows must be non-negative, got %d", c.RenderMaxRows)
	}
	return nil
}

// WithDefaults returns a new configuration with default values filled in
// for zero values
func (c Config) WithDefaults() Config {
	defaults := NewConfig()
	if c.CSVDelimiter == 0 {
		c.CSVDelimiter = defaults.CSVDelimiter
	}
	if c.HistogramBins == 0 {
		c.HistogramBins = defaults.HistogramBins
	}
	if c.RenderMaxRows == 0 {
		c.RenderMaxRows = defaults.RenderMaxRows
	}
	return c
}

// Set replaces the global configuration
func Set(config Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = config
}

// Get returns the current global configuration
func Get() Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// LoadFromFile loads configuration from a file (supports JSON and YAML)
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	var config Config
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// LoadFromEnv loads configuration from DUCKFRAME_* environment variables,
// starting from the built-in defaults.
func LoadFromEnv() Config {
	config := NewConfig()

	if val := os.Getenv("DUCKFRAME_CSV_DELIMITER"); val != "" {
		runes := []rune(val)
		if len(runes) == 1 {
			config.CSVDelimiter = runes[0]
		}
	}
	if val := os.Getenv("DUCKFRAME_CSV_HEADER"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.CSVHeader = parsed
		}
	}
	if val := os.Getenv("DUCKFRAME_INFERENCE_SAMPLE_ROWS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed >= 0 {
			config.InferenceSampleRows = parsed
		}
	}
	if val := os.Getenv("DUCKFRAME_HISTOGRAM_BINS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			config.HistogramBins = parsed
		}
	}
	if val := os.Getenv("DUCKFRAME_RENDER_MAX_ROWS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed >= 0 {
			config.RenderMaxRows = parsed
		}
	}
	return config
}
