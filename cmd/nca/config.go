package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	nca "github.com/openpkpd/go-nca"
	"github.com/openpkpd/go-nca/pkdataset"
)

// Config holds the CLI run configuration parsed from the yaml config file.
// Every field is optional; zero values fall back to library defaults.
type Config struct {
	Dataset  DatasetConfig  `yaml:"dataset"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
}

// DatasetConfig maps dataset columns to the fields the reader needs.
type DatasetConfig struct {
	// IDColumn names the subject identifier column (default "ID").
	IDColumn string `yaml:"id_column"`

	// TimeColumn names the sample time column in hours (default "TIME").
	TimeColumn string `yaml:"time_column"`

	// ConcColumn names the observed concentration column (default "DV").
	ConcColumn string `yaml:"conc_column"`

	// AmtColumn names the dose amount column (default "AMT").
	AmtColumn string `yaml:"amt_column"`

	// EvidColumn names the event id column flagging dose rows (default "EVID").
	EvidColumn string `yaml:"evid_column"`

	// WeightColumn names the body weight column (default "WT").
	WeightColumn string `yaml:"weight_column"`

	// MissingToken marks a missing observation (default ".").
	MissingToken string `yaml:"missing_token"`
}

// CSVOptions converts the config into reader options, filling in the
// NONMEM-convention defaults for unset columns.
func (d DatasetConfig) CSVOptions() *pkdataset.CSVOptions {
	opt := pkdataset.NewDefaultCSVOptions()
	if d.IDColumn != "" {
		opt.IDColumn = d.IDColumn
	}
	if d.TimeColumn != "" {
		opt.TimeColumn = d.TimeColumn
	}
	if d.ConcColumn != "" {
		opt.ConcColumn = d.ConcColumn
	}
	if d.AmtColumn != "" {
		opt.AmtColumn = d.AmtColumn
	}
	if d.EvidColumn != "" {
		opt.EvidColumn = d.EvidColumn
	}
	if d.WeightColumn != "" {
		opt.WeightColumn = d.WeightColumn
	}
	if d.MissingToken != "" {
		opt.MissingToken = d.MissingToken
	}
	return opt
}

// AnalysisConfig selects the NCA options for every subject.
type AnalysisConfig struct {
	// AUCMethod is "linear" or "linear_log" (default "linear_log").
	AUCMethod string `yaml:"auc_method"`

	// LOQ is the assay limit of quantification; zero disables BLQ
	// screening.
	LOQ float64 `yaml:"loq"`

	// BLQRule is "drop" or "zero" (default "drop").
	BLQRule string `yaml:"blq_rule"`

	// Dose is the fallback dose for subjects without dose rows in the
	// dataset.
	Dose float64 `yaml:"dose"`

	// MaxExtrapolationPct sets the AUC extrapolation warning threshold
	// (default 20).
	MaxExtrapolationPct float64 `yaml:"max_extrapolation_pct"`
}

// Options converts the config into analyzer options.
func (a AnalysisConfig) Options() *nca.Options {
	opt := nca.NewDefaultOptions()
	if a.AUCMethod != "" {
		opt.Method = nca.AUCMethod(a.AUCMethod)
	}
	if a.BLQRule != "" {
		opt.BLQRule = nca.BLQRule(a.BLQRule)
	}
	opt.LOQ = a.LOQ
	opt.Dose = a.Dose
	if a.MaxExtrapolationPct > 0 {
		opt.MaxExtrapolationPct = a.MaxExtrapolationPct
	}
	return opt
}

// OutputConfig controls where results land.
type OutputConfig struct {
	// Dir receives report.json and the per-subject plot files
	// (default "nca-out").
	Dir string `yaml:"dir"`

	// Plots enables per-subject html plots.
	Plots bool `yaml:"plots"`
}

func (o OutputConfig) EffectiveDir() string {
	if o.Dir == "" {
		return "nca-out"
	}
	return o.Dir
}

// LoadConfig reads the yaml config at path. An empty path returns the
// zero config, which maps entirely to library defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config, %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config, %w", err)
	}
	return &cfg, nil
}
