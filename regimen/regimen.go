// Package regimen builds dosing and sampling schedules for study designs.
// Dose times are nominal clock times; sampling plans can be constrained to
// business days so clinic visits land on days the site is open.
package regimen

import (
	"errors"
	"math"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

var (
	ErrNoDoses            = errors.New("schedule has no doses")
	ErrNoInterval         = errors.New("schedule has no dosing interval")
	ErrNonPositiveRate    = errors.New("elimination rate must be positive")
	ErrFractionOutOfRange = errors.New("steady-state fraction must be in (0, 1)")
)

// Schedule describes a fixed-interval multiple-dose regimen.
type Schedule struct {
	Start    time.Time
	Interval time.Duration
	NumDoses int
}

// DoseTimes expands the schedule into nominal dose times.
func (s Schedule) DoseTimes() ([]time.Time, error) {
	if s.NumDoses < 1 {
		return nil, ErrNoDoses
	}
	if s.Interval <= 0 && s.NumDoses > 1 {
		return nil, ErrNoInterval
	}
	times := make([]time.Time, 0, s.NumDoses)
	for i := 0; i < s.NumDoses; i++ {
		times = append(times, s.Start.Add(time.Duration(i)*s.Interval))
	}
	return times, nil
}

// AccumulationRatio returns the steady-state accumulation factor
// 1/(1-exp(-ke*tau)) for first-order elimination with dosing interval tau
// in hours.
func AccumulationRatio(ke, tau float64) (float64, error) {
	if ke <= 0 {
		return 0, ErrNonPositiveRate
	}
	return 1.0 / (1.0 - math.Exp(-ke*tau)), nil
}

// TimeToSteadyState returns the time in hours to reach the given fraction of
// steady state, -ln(1-fraction)/ke.
func TimeToSteadyState(ke, fraction float64) (float64, error) {
	if ke <= 0 {
		return 0, ErrNonPositiveRate
	}
	if fraction <= 0 || fraction >= 1 {
		return 0, ErrFractionOutOfRange
	}
	return -math.Log(1.0-fraction) / ke, nil
}

// NewClinicCalendar returns a business calendar with the standard US site
// holidays plus any extra site closures.
func NewClinicCalendar(closures ...*cal.Holiday) *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(
		us.NewYear,
		us.MemorialDay,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	c.AddHoliday(closures...)
	return c
}

// SamplingPlan maps post-dose offsets to concrete visit times. With a
// calendar set, any visit falling on a non-workday is shifted forward to
// the next day the site is open, keeping the clock time.
type SamplingPlan struct {
	Offsets  []time.Duration
	Calendar *cal.BusinessCalendar
}

func (p SamplingPlan) Times(doseTime time.Time) []time.Time {
	times := make([]time.Time, 0, len(p.Offsets))
	for _, offset := range p.Offsets {
		visit := doseTime.Add(offset)
		if p.Calendar != nil {
			for !p.Calendar.IsWorkday(visit) {
				visit = visit.AddDate(0, 0, 1)
			}
		}
		times = append(times, visit)
	}
	return times
}
