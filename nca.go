// Package nca computes non-compartmental pharmacokinetic parameters from a
// single-subject concentration-time profile: peak exposure, area under the
// curve by trapezoidal quadrature, the terminal elimination constant by
// log-linear regression, and the dose-dependent parameters derived from
// them.
package nca

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/openpkpd/go-nca/integrate"
	"github.com/openpkpd/go-nca/models"
	"github.com/openpkpd/go-nca/pkdataset"
)

var (
	ErrUninitializedAnalyzer = errors.New("uninitialized analyzer")
	ErrInsufficientData      = errors.New("need at least 2 quantifiable samples")
	ErrEmptyRun              = errors.New("no analysis has been run")
)

// Analyzer runs non-compartmental analysis over concentration-time
// profiles. It keeps the screened profile and results of the most recent
// run for reporting and plotting.
type Analyzer struct {
	opt *Options

	runData    *pkdataset.Profile
	runResults *Results
}

// New creates an Analyzer with the provided options. If no options are
// provided a default is used.
func New(opt *Options) (*Analyzer, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if err := opt.Validate(); err != nil {
		return nil, fmt.Errorf("unable to validate analyzer options, %w", err)
	}
	return &Analyzer{opt: opt}, nil
}

// Run validates the raw time and concentration slices into a profile and
// analyzes it.
func (a *Analyzer) Run(t, c []float64) (*Results, error) {
	p, err := pkdataset.NewProfile(t, c)
	if err != nil {
		return nil, fmt.Errorf("unable to create profile, %w", err)
	}
	return a.RunProfile(p)
}

// RunProfile analyzes an already validated profile. Missing and BLQ
// samples are screened per options before any parameter is computed.
func (a *Analyzer) RunProfile(p *pkdataset.Profile) (*Results, error) {
	if a == nil {
		return nil, ErrUninitializedAnalyzer
	}

	clean := a.screen(p)
	if clean.Len() < 2 {
		return nil, fmt.Errorf("%d samples after screening, %w", clean.Len(), ErrInsufficientData)
	}

	lastIdx := clean.Len() - 1
	for lastIdx >= 0 && clean.C[lastIdx] <= 0 {
		lastIdx--
	}
	if lastIdx < 1 {
		return nil, fmt.Errorf("profile has no quantifiable span, %w", ErrInsufficientData)
	}

	res := &Results{
		N:     clean.Len(),
		Tlast: clean.T[lastIdx],
		Clast: clean.C[lastIdx],
	}

	maxIdx := 0
	for i, v := range clean.C {
		if v > clean.C[maxIdx] {
			maxIdx = i
		}
	}
	res.Cmax = clean.C[maxIdx]
	res.Tmax = clean.T[maxIdx]

	for i := 0; i < clean.Len(); i++ {
		if clean.C[i] > 0 {
			break
		}
		res.Tlag = clean.T[i]
	}

	aucT := clean.T[:lastIdx+1]
	aucC := clean.C[:lastIdx+1]
	switch a.opt.Method {
	case AUCLinLog:
		res.AUCLast = integrate.TrapezoidLogDown(aucT, aucC)
	default:
		res.AUCLast = integrate.Trapezoid(aucT, aucC)
	}
	res.AUMCLast = integrate.MomentTrapezoid(aucT, aucC)
	res.CumulativeAUC = integrate.TrapezoidCumulative(clean.T, clean.C)

	a.fitTerminal(clean, maxIdx, lastIdx, res)
	a.deriveDosed(res)

	a.runData = clean
	a.runResults = res
	return res, nil
}

// screen applies NaN and BLQ handling, returning a fresh profile.
func (a *Analyzer) screen(p *pkdataset.Profile) *pkdataset.Profile {
	clean := p.DropNaN()
	if a.opt.LOQ <= 0 {
		return clean
	}
	if a.opt.BLQRule == BLQZero {
		clean = clean.Copy()
		firstQuant := -1
		for i, v := range clean.C {
			if v >= a.opt.LOQ {
				firstQuant = i
				break
			}
		}
		for i, v := range clean.C {
			if v >= a.opt.LOQ {
				continue
			}
			if firstQuant == -1 || i < firstQuant {
				clean.C[i] = 0
			} else {
				clean.C[i] = math.NaN()
			}
		}
		return clean.DropNaN()
	}
	return clean.DropBLQ(a.opt.LOQ)
}

func (a *Analyzer) fitTerminal(p *pkdataset.Profile, maxIdx, lastIdx int, res *Results) {
	var fit *models.TerminalFit
	var err error

	if w := a.opt.LambdaZWindow; w != nil {
		start, end := -1, -1
		for i, tPnt := range p.T {
			if tPnt >= w.Start && start == -1 {
				start = i
			}
			if tPnt <= w.End {
				end = i + 1
			}
		}
		if start == -1 || end <= start {
			err = models.ErrBadWindow
		} else {
			fit, err = models.FitTerminal(p.T, p.C, start, end)
		}
	} else {
		fit, err = models.BestTerminal(p.T[:lastIdx+1], p.C[:lastIdx+1], maxIdx)
	}

	if err != nil {
		slog.Warn("unable to characterize terminal phase", "error", err.Error())
		undefined := Metric(math.NaN())
		res.AUCInf = undefined
		res.PctExtrapolated = undefined
		res.AUMCInf = undefined
		res.MRT = undefined
		res.HalfLife = undefined
		return
	}

	res.Terminal = fit
	res.HalfLife = Metric(fit.HalfLife())

	aucInf := res.AUCLast + res.Clast/fit.Lambda
	aumcInf := res.AUMCLast + res.Clast*res.Tlast/fit.Lambda + res.Clast/(fit.Lambda*fit.Lambda)
	pctExtrap := (aucInf - res.AUCLast) / aucInf * 100.0

	res.AUCInf = Metric(aucInf)
	res.AUMCInf = Metric(aumcInf)
	res.PctExtrapolated = Metric(pctExtrap)
	res.MRT = Metric(aumcInf / aucInf)

	if pctExtrap > a.opt.MaxExtrapolationPct {
		slog.Warn("extrapolated area exceeds threshold",
			"pct_extrapolated", pctExtrap,
			"threshold", a.opt.MaxExtrapolationPct,
		)
	}
}

func (a *Analyzer) deriveDosed(res *Results) {
	res.Dose = a.opt.Dose
	undefined := Metric(math.NaN())
	if a.opt.Dose <= 0 {
		res.CLF = undefined
		res.VzF = undefined
		res.CmaxPerDose = undefined
		res.AUCPerDose = undefined
		return
	}

	res.CmaxPerDose = Metric(res.Cmax / a.opt.Dose)
	res.AUCPerDose = Metric(res.AUCLast / a.opt.Dose)

	if res.Terminal == nil {
		res.CLF = undefined
		res.VzF = undefined
		return
	}
	res.CLF = Metric(a.opt.Dose / float64(res.AUCInf))
	res.VzF = Metric(a.opt.Dose / (res.Terminal.Lambda * float64(res.AUCInf)))
}

// RunData returns the screened profile from the most recent run.
func (a *Analyzer) RunData() *pkdataset.Profile {
	return a.runData
}

// RunResults returns the results from the most recent run.
func (a *Analyzer) RunResults() *Results {
	return a.runResults
}
