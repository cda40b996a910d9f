package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MinTerminalPoints is the smallest window allowed for a terminal fit. Two
// points always fit a line exactly, so anything under three carries no
// information about fit quality.
const MinTerminalPoints = 3

// TerminalFit holds the result of a log-linear regression over the tail of
// a profile. Lambda is the first-order elimination rate constant in 1/h,
// the negated regression slope.
type TerminalFit struct {
	Lambda    float64 `json:"lambda_z"`
	Intercept float64 `json:"ln_intercept"`
	R2        float64 `json:"r_squared"`
	AdjR2     float64 `json:"adjusted_r_squared"`

	// Start and End bound the samples used, as a half-open index range
	// into the profile the fit was run against.
	Start int `json:"start"`
	End   int `json:"end"`
}

// NumPoints returns the number of samples the regression used.
func (f *TerminalFit) NumPoints() int {
	return f.End - f.Start
}

// HalfLife returns the terminal half-life ln(2)/lambda.
func (f *TerminalFit) HalfLife() float64 {
	return math.Ln2 / f.Lambda
}

// Predict returns the regression concentration at time t on the original
// scale, exp(intercept - lambda*t).
func (f *TerminalFit) Predict(t float64) float64 {
	return math.Exp(f.Intercept - f.Lambda*t)
}

// FitTerminal regresses ln(c) on t over the half-open window [start, end)
// using ordinary least squares. Every concentration in the window must be
// positive. A non-declining window produces ErrNoTerminalPhase since
// lambda must be positive to describe elimination.
func FitTerminal(t, c []float64, start, end int) (*TerminalFit, error) {
	if len(t) != len(c) {
		return nil, fmt.Errorf("got %d times and %d concentrations, %w", len(t), len(c), ErrLenMismatch)
	}
	if start < 0 || end > len(t) || start >= end {
		return nil, fmt.Errorf("window [%d, %d) over %d samples, %w", start, end, len(t), ErrBadWindow)
	}
	n := end - start
	if n < MinTerminalPoints {
		return nil, fmt.Errorf("window has %d points, %w", n, ErrInsufficientPoints)
	}

	xVals := make([]float64, 0, n)
	yVals := make([]float64, 0, n)
	for i := start; i < end; i++ {
		if c[i] <= 0 {
			return nil, fmt.Errorf("concentration %f at index %d, %w", c[i], i, ErrNonPositiveConc)
		}
		xVals = append(xVals, t[i])
		yVals = append(yVals, math.Log(c[i]))
	}

	x := mat.NewDense(n, 1, xVals)
	y := mat.NewDense(n, 1, yVals)

	var model Model = NewOLSRegression(nil)
	if err := model.Fit(x, y); err != nil {
		return nil, fmt.Errorf("unable to fit terminal window, %w", err)
	}

	beta := model.Coef()[0]
	if beta >= 0 {
		return nil, ErrNoTerminalPhase
	}

	r2, err := model.Score(x, y)
	if err != nil {
		return nil, fmt.Errorf("unable to score terminal window, %w", err)
	}
	adjR2 := 1.0 - (1.0-r2)*float64(n-1)/float64(n-2)

	return &TerminalFit{
		Lambda:    -beta,
		Intercept: model.Intercept(),
		R2:        r2,
		AdjR2:     adjR2,
		Start:     start,
		End:       end,
	}, nil
}

// BestTerminal selects the terminal window automatically. Candidate windows
// all end at the last positive concentration and start after tmaxIdx; the
// window maximizing adjusted R-squared wins, with ties within 1e-4 going to
// the window with more points. This is the usual lambda-z point-selection
// rule for extravascular profiles. Pass tmaxIdx of -1 to allow windows
// starting at the first sample.
func BestTerminal(t, c []float64, tmaxIdx int) (*TerminalFit, error) {
	if len(t) != len(c) {
		return nil, fmt.Errorf("got %d times and %d concentrations, %w", len(t), len(c), ErrLenMismatch)
	}

	end := len(c)
	for end > 0 && c[end-1] <= 0 {
		end--
	}

	var best *TerminalFit
	for start := tmaxIdx + 1; start <= end-MinTerminalPoints; start++ {
		fit, err := FitTerminal(t, c, start, end)
		if err != nil {
			continue
		}
		if best == nil || fit.AdjR2 > best.AdjR2+1e-4 {
			best = fit
		}
	}
	if best == nil {
		return nil, ErrNoTerminalPhase
	}
	return best, nil
}
