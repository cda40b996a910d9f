package nca

import (
	"math"

	"github.com/goccy/go-json"
	"github.com/openpkpd/go-nca/models"
)

// Metric is a float64 parameter value that may be undefined. Undefined
// values are NaN in memory and null on the wire, since JSON has no NaN.
type Metric float64

func (m Metric) Defined() bool {
	return !math.IsNaN(float64(m))
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(m)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(m))
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Metric(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*m = Metric(f)
	return nil
}

// Results holds the parameter set from one NCA run. Metrics that depend on
// the terminal fit (AUCInf, MRT, half-life, clearance) are undefined when
// no terminal phase could be characterized; Terminal is nil in that case.
// Dose-dependent metrics are undefined without a positive dose.
type Results struct {
	N int `json:"n"`

	Tlag  float64 `json:"tlag"`
	Tmax  float64 `json:"tmax"`
	Cmax  float64 `json:"cmax"`
	Tlast float64 `json:"tlast"`
	Clast float64 `json:"clast"`

	AUCLast       float64   `json:"auc_last"`
	AUMCLast      float64   `json:"aumc_last"`
	CumulativeAUC []float64 `json:"cumulative_auc"`

	AUCInf          Metric `json:"auc_inf"`
	PctExtrapolated Metric `json:"pct_extrapolated"`
	AUMCInf         Metric `json:"aumc_inf"`
	MRT             Metric `json:"mrt"`

	Terminal *models.TerminalFit `json:"terminal,omitempty"`
	HalfLife Metric              `json:"half_life"`

	Dose        float64 `json:"dose"`
	CLF         Metric  `json:"cl_f"`
	VzF         Metric  `json:"vz_f"`
	CmaxPerDose Metric  `json:"cmax_per_dose"`
	AUCPerDose  Metric  `json:"auc_per_dose"`
}
