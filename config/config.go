// SPDX-License-Identifier: MIT

// Package config loads the settings of a trienrich run: CROW install and
// ranks, input files, report sizes, logging and metrics export.
//
// Precedence, lowest first: Default(), the YAML file, a .env file in the
// working directory, process environment (CROW_HOME, TRIENRICH_*). The
// result is checked with validator struct tags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/trienrich/crow"
	"github.com/katalvlaran/trienrich/dataio"
	"github.com/katalvlaran/trienrich/report"
)

// ErrInvalid wraps every validation and environment parsing failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Environment variables read by Load.
const (
	EnvDataDir         = "TRIENRICH_DATA_DIR"
	EnvLogLevel        = "TRIENRICH_LOG_LEVEL"
	EnvWorkers         = "TRIENRICH_WORKERS"
	EnvXLSX            = "TRIENRICH_XLSX"
	EnvMetricsTextfile = "TRIENRICH_METRICS_TEXTFILE"
)

// Config is the root of the YAML document.
type Config struct {
	Crow    CrowConfig    `yaml:"crow"`
	Data    DataConfig    `yaml:"data"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// CrowConfig locates the CROW install and sizes the factorization.
type CrowConfig struct {
	Home       string `yaml:"home"`
	Binary     string `yaml:"binary" validate:"required"`
	Iterations int    `yaml:"iterations" validate:"gte=1"`
	K1         int    `yaml:"k1" validate:"gte=1"`
	K2         int    `yaml:"k2" validate:"gte=1"`
	Blocks     string `yaml:"blocks" validate:"omitempty,blocks"` // "RxC"; empty means 1x<NumCPU>
}

// DataConfig names the input files, relative to Dir unless absolute.
type DataConfig struct {
	Dir       string `yaml:"dir"`
	Matrix    string `yaml:"matrix" validate:"required"`
	RowLabels string `yaml:"row_labels" validate:"required"`
	ColLabels string `yaml:"col_labels" validate:"required"`
	Delimiter string `yaml:"delimiter" validate:"len=1"`
	Comment   string `yaml:"comment"`
	TrimSpace bool   `yaml:"trim_space"`
}

// ReportConfig sizes the report and selects its sinks.
type ReportConfig struct {
	Interactions    int    `yaml:"interactions" validate:"gte=1"`
	GroupTopK       int    `yaml:"group_top_k" validate:"gte=1"`
	InteractionTopK int    `yaml:"interaction_top_k" validate:"gte=1"`
	Workers         int    `yaml:"workers" validate:"gte=1"`
	XLSX            string `yaml:"xlsx"`
	Latex           bool   `yaml:"latex"`
	Color           bool   `yaml:"color"`
}

// LoggingConfig selects the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// MetricsConfig enables the Prometheus textfile export when Textfile is set.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Default returns the settings of the standard TCGA methylation run.
func Default() *Config {
	return &Config{
		Crow: CrowConfig{
			Binary:     crow.DefaultBinary,
			Iterations: crow.DefaultIterations,
			K1:         crow.DefaultK1,
			K2:         crow.DefaultK2,
		},
		Data: DataConfig{
			Dir:       "data",
			Matrix:    "TCGA-Methyl-cancer.npz",
			RowLabels: "row-labels.csv",
			ColLabels: "col-labels.csv",
			Delimiter: string(dataio.DefaultDelimiter),
			Comment:   dataio.DefaultComment,
		},
		Report: ReportConfig{
			Interactions:    report.DefaultInteractions,
			GroupTopK:       report.DefaultGroupTopK,
			InteractionTopK: report.DefaultInteractionTopK,
			Workers:         1,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds a Config from path (optional; a missing file yields the
// defaults), .env and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config.Load: %w", err)
		default:
			if err = yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config.Load: parse %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(crow.EnvHome); v != "" {
		c.Crow.Home = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvWorkers, v, err)
		}
		c.Report.Workers = n
	}
	if v := os.Getenv(EnvXLSX); v != "" {
		c.Report.XLSX = v
	}
	if v := os.Getenv(EnvMetricsTextfile); v != "" {
		c.Metrics.Textfile = v
	}

	return nil
}

var blocksPattern = regexp.MustCompile(`^[1-9][0-9]*x[1-9][0-9]*$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("blocks", func(fl validator.FieldLevel) bool {
		return blocksPattern.MatchString(fl.Field().String())
	})

	return v
}

// Validate checks the struct tags; failures wrap ErrInvalid.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// Path resolves a data file name against Data.Dir.
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) || c.Data.Dir == "" {
		return name
	}

	return filepath.Join(c.Data.Dir, name)
}

// CrowHome resolves the install directory (CROW_HOME wins over crow.home).
func (c *Config) CrowHome() string {
	return crow.ResolveHome(c.Crow.Home)
}

// Request returns the factorization request for the configured matrix.
func (c *Config) Request() crow.Request {
	return crow.Request{
		Input:      c.Path(c.Data.Matrix),
		K1:         c.Crow.K1,
		K2:         c.Crow.K2,
		Iterations: c.Crow.Iterations,
		Blocks:     c.Crow.Blocks,
	}
}

// LabelOptions returns the reader settings for both label files.
func (c *Config) LabelOptions() dataio.LabelOptions {
	opts := dataio.DefaultLabelOptions()
	if r := []rune(c.Data.Delimiter); len(r) > 0 {
		opts.Delimiter = r[0]
	}
	opts.Comment = c.Data.Comment
	opts.TrimSpace = c.Data.TrimSpace

	return opts
}

// ReportOptions returns the report sizes with the standard titles.
func (c *Config) ReportOptions() report.Options {
	opts := report.DefaultOptions()
	opts.Interactions = c.Report.Interactions
	opts.GroupTopK = c.Report.GroupTopK
	opts.InteractionTopK = c.Report.InteractionTopK

	return opts
}
