// Package pkdataset provides the validated concentration-time profile type
// consumed by the analyzer. Construction is where input contracts are
// enforced: the quadrature kernels in the integrate package assume aligned,
// monotonic input and perform no checks of their own.
package pkdataset

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoObservations     = errors.New("no observations")
	ErrProfileLenMismatch = errors.New("time has a different length than concentrations")
	ErrNonMonotonic       = errors.New("time is not strictly increasing")
	ErrNegativeTime       = errors.New("negative time value")
)

// Profile represents a single-subject concentration-time course. Times are
// in hours relative to dose and must be strictly increasing. Both slices
// always have the same length.
type Profile struct {
	T []float64
	C []float64
}

// NewProfile returns a validated Profile given a time and concentration
// slice. The inputs are copied so later mutation of the caller's slices
// cannot invalidate the profile.
func NewProfile(t, c []float64) (*Profile, error) {
	if len(c) == 0 {
		return nil, ErrNoObservations
	}
	if len(t) != len(c) {
		return nil, fmt.Errorf(
			"time has length of %d, but concentrations has a length of %d, %w",
			len(t), len(c), ErrProfileLenMismatch,
		)
	}

	for i := 0; i < len(t); i++ {
		if t[i] < 0 {
			return nil, fmt.Errorf("time at %d is %f, %w", i, t[i], ErrNegativeTime)
		}
		if i > 0 && t[i] <= t[i-1] {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMonotonic)
		}
	}

	tSeries := make([]float64, len(t))
	cSeries := make([]float64, len(c))
	copy(tSeries, t)
	copy(cSeries, c)
	return &Profile{T: tSeries, C: cSeries}, nil
}

func (p *Profile) Copy() *Profile {
	tSeries := make([]float64, len(p.T))
	cSeries := make([]float64, len(p.C))
	copy(tSeries, p.T)
	copy(cSeries, p.C)
	return &Profile{T: tSeries, C: cSeries}
}

func (p *Profile) Len() int {
	if p == nil {
		return 0
	}
	return len(p.T)
}

// DropNaN returns a new profile with every sample whose concentration is NaN
// removed. Missing values must be dropped or imputed before any area
// calculation since the kernels propagate NaN through the sum.
func (p *Profile) DropNaN() *Profile {
	if p == nil {
		return nil
	}
	tSeries := make([]float64, 0, len(p.T))
	cSeries := make([]float64, 0, len(p.C))
	for i := 0; i < len(p.T); i++ {
		if math.IsNaN(p.C[i]) {
			continue
		}
		tSeries = append(tSeries, p.T[i])
		cSeries = append(cSeries, p.C[i])
	}
	return &Profile{T: tSeries, C: cSeries}
}

// DropBLQ returns a new profile with every sample strictly below the limit
// of quantification removed. NaN samples are removed as well.
func (p *Profile) DropBLQ(loq float64) *Profile {
	if p == nil {
		return nil
	}
	tSeries := make([]float64, 0, len(p.T))
	cSeries := make([]float64, 0, len(p.C))
	for i := 0; i < len(p.T); i++ {
		if math.IsNaN(p.C[i]) || p.C[i] < loq {
			continue
		}
		tSeries = append(tSeries, p.T[i])
		cSeries = append(cSeries, p.C[i])
	}
	return &Profile{T: tSeries, C: cSeries}
}

// Subject carries the dosing metadata needed to derive dose-dependent
// parameters such as clearance. DoseTime is the time of the first dose
// event in the same units as the profile times. Weight is in kg and may
// be zero when unknown.
type Subject struct {
	ID       string
	Dose     float64
	DoseTime float64
	Weight   float64
}

// SubjectData pairs a subject with its observed profile as read from a
// dataset file.
type SubjectData struct {
	Subject Subject
	Profile *Profile
}
