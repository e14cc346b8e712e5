// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers an optional YAML file and env vars.
// - All functions accept context.Context as the first parameter.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataPath is the CSV dataset file.
	DataPath string `koanf:"data_path"`

	// ModelPath is the exported random-forest artifact.
	ModelPath string `koanf:"model_path"`

	// ScalerPath is the exported feature-scaler artifact.
	ScalerPath string `koanf:"scaler_path"`

	// SampleRows is how many leading rows the overview tab shows.
	SampleRows int `koanf:"sample_rows"`

	// HistogramBins is the bin count for the PM2.5 distribution chart.
	HistogramBins int `koanf:"histogram_bins"`

	// PairplotWarnColumns is the selection size above which the pairplot
	// attaches a performance warning.
	PairplotWarnColumns int `koanf:"pairplot_warn_columns"`

	// PairplotMaxPoints caps the scatter points per pair.
	PairplotMaxPoints int `koanf:"pairplot_max_points"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8080",
		DataPath:            "data/merged_data.csv",
		ModelPath:           "artifacts/model_rf.json",
		ScalerPath:          "artifacts/scaler.json",
		SampleRows:          20,
		HistogramBins:       50,
		PairplotWarnColumns: 5,
		PairplotMaxPoints:   2000,
	}
}
