package nca

import "errors"

var (
	ErrUnknownAUCMethod = errors.New("unknown auc method")
	ErrUnknownBLQRule   = errors.New("unknown blq rule")
)

// AUCMethod selects the quadrature rule used for AUClast.
type AUCMethod string

const (
	// AUCLinear applies the linear trapezoid to every interval.
	AUCLinear AUCMethod = "linear"

	// AUCLinLog applies the linear trapezoid on rising or flat intervals
	// and the log trapezoid on declining ones.
	AUCLinLog AUCMethod = "linear_log"
)

// BLQRule selects how observations below the limit of quantification are
// treated before analysis.
type BLQRule string

const (
	// BLQDrop removes BLQ samples from the profile.
	BLQDrop BLQRule = "drop"

	// BLQZero keeps BLQ samples with a concentration of zero before the
	// first quantifiable sample and drops them after.
	BLQZero BLQRule = "zero"
)

const DefaultMaxExtrapolationPct = 20.0

// Options configures a single NCA run.
type Options struct {
	Method AUCMethod `json:"auc_method"`

	// LOQ is the assay limit of quantification. Zero disables BLQ
	// screening, in which case only NaN samples are dropped.
	LOQ     float64 `json:"loq"`
	BLQRule BLQRule `json:"blq_rule"`

	// Dose enables clearance, volume, and dose-normalized parameters
	// when positive.
	Dose float64 `json:"dose"`

	// LambdaZWindow overrides the automatic terminal window selection
	// with an explicit time range when set.
	LambdaZWindow *TimeWindow `json:"lambda_z_window,omitempty"`

	// MaxExtrapolationPct sets the threshold above which the AUC
	// extrapolation fraction is logged as a reliability warning.
	MaxExtrapolationPct float64 `json:"max_extrapolation_pct"`
}

// TimeWindow is a closed time range in hours.
type TimeWindow struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// NewDefaultOptions returns options for a linear-up/log-down analysis with
// BLQ dropping and the customary 20% extrapolation warning threshold.
func NewDefaultOptions() *Options {
	return &Options{
		Method:              AUCLinLog,
		BLQRule:             BLQDrop,
		MaxExtrapolationPct: DefaultMaxExtrapolationPct,
	}
}

// Validate checks enum fields, filling empty ones with defaults.
func (o *Options) Validate() error {
	switch o.Method {
	case AUCLinear, AUCLinLog:
	case "":
		o.Method = AUCLinLog
	default:
		return ErrUnknownAUCMethod
	}

	switch o.BLQRule {
	case BLQDrop, BLQZero:
	case "":
		o.BLQRule = BLQDrop
	default:
		return ErrUnknownBLQRule
	}

	if o.MaxExtrapolationPct <= 0 {
		o.MaxExtrapolationPct = DefaultMaxExtrapolationPct
	}
	return nil
}
