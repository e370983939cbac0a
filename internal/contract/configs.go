// Package contract holds the runtime configuration surface and small shared
// helpers used across commands, core and output layers.
package contract

import (
	"time"

	"github.com/demandlab/demandcast/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 2
	MaxHorizonDays   = 1096 // three years is the longest supported projection
	MaxClusters      = 64
)

// DateTimeFormat is the canonical timestamp representation for I/O.
var DateTimeFormat = time.RFC3339

// Config holds the validated runtime configuration for a pipeline run.
type Config struct {
	InputPath   string    // Path to the raw transactions CSV
	IngestQuery string    // Optional SQL query replacing the CSV input
	Snapshot    time.Time // RFM reference date (zero = max date + 1 day)

	HorizonDays    int     // Forecast length in days
	Clusters       int     // Number of customer segments (k)
	Seed           int64   // Clustering seed
	MinHistoryDays int     // Seasonal model history guard
	Confidence     float64 // Coverage of seasonal bounds, in (0, 1)

	Output     schema.OutputMode // text, csv or json
	OutputFile string            // Optional path instead of stdout
	Precision  int               // Decimal places for numeric columns
	Width      int               // Terminal width override (0 = auto-detect)
	UseColors  bool              // Enable colored labels in table output

	SinkBackend schema.DatabaseBackend // Where results are persisted
	SinkConnect string                 // Connection string; use env var, this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct before validation.
type ConfigRawInput struct {
	Input       string `mapstructure:"input"`
	IngestQuery string `mapstructure:"ingest-query"`
	Snapshot    string `mapstructure:"snapshot"`

	Horizon    int     `mapstructure:"horizon"`
	Clusters   int     `mapstructure:"clusters"`
	Seed       int64   `mapstructure:"seed"`
	MinHistory int     `mapstructure:"min-history"`
	Confidence float64 `mapstructure:"confidence"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	SinkBackend string `mapstructure:"sink-backend"`
	SinkConnect string `mapstructure:"sink-connect"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
