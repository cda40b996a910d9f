package pkdataset

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// GenerateT returns n sampling times starting at 0 with the given spacing
// in hours.
func GenerateT(n int, interval float64) []float64 {
	t := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, float64(i)*interval)
	}
	return t
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

func (s Series) Scale(k float64) Series {
	floats.Scale(k, s)
	return s
}

// ClampNonNegative floors the series at zero. Additive noise can push a
// simulated concentration below zero which no assay would report.
func (s Series) ClampNonNegative() Series {
	for i := range s {
		if s[i] < 0 {
			s[i] = 0
		}
	}
	return s
}

// GenerateOral returns concentrations for a one-compartment model with
// first-order absorption after a single extravascular dose:
//
//	C(t) = F*Dose*ka / (V*(ka-ke)) * (exp(-ke*t) - exp(-ka*t))
//
// ka and ke are in 1/h and must differ.
func GenerateOral(t []float64, dose, bioavail, vd, ka, ke float64) Series {
	c := make([]float64, 0, len(t))
	scale := bioavail * dose * ka / (vd * (ka - ke))
	for _, tPnt := range t {
		c = append(c, scale*(math.Exp(-ke*tPnt)-math.Exp(-ka*tPnt)))
	}
	return Series(c)
}

// GenerateIVBolus returns concentrations for a one-compartment model after
// an instantaneous IV dose, C(t) = Dose/V * exp(-ke*t).
func GenerateIVBolus(t []float64, dose, vd, ke float64) Series {
	c := make([]float64, 0, len(t))
	c0 := dose / vd
	for _, tPnt := range t {
		c = append(c, c0*math.Exp(-ke*tPnt))
	}
	return Series(c)
}

// GenerateNoise returns zero-mean gaussian noise with a combined additive
// and proportional scale relative to the reference series.
func GenerateNoise(ref Series, addScale, propScale float64) Series {
	c := make([]float64, 0, len(ref))
	for _, v := range ref {
		scale := addScale + propScale*math.Abs(v)
		c = append(c, rand.NormFloat64()*scale)
	}
	return Series(c)
}
