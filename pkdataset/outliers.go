package pkdataset

import (
	"math"
	"sort"
)

// Outliers flags observation indexes falling outside Tukey fences built
// from the given percentiles of the concentration values. Screening runs
// before any area calculation, so a flagged sample can be reviewed or
// dropped without disturbing the profile itself.
func Outliers(c []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)

	cCopy := make([]float64, 0, len(c))
	for _, v := range c {
		if math.IsNaN(v) {
			continue
		}
		cCopy = append(cCopy, v)
	}
	if len(cCopy) == 0 {
		return nil
	}
	sort.Float64s(cCopy)

	lowerIdx := int(math.Floor(float64(len(cCopy)) * lowerPerc))
	upperIdx := int(math.Ceil(float64(len(cCopy)) * upperPerc))
	if upperIdx >= len(cCopy) {
		upperIdx = len(cCopy) - 1
	}

	lower := cCopy[lowerIdx]
	upper := cCopy[upperIdx]
	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	var outlierIdx []int
	for i := 0; i < len(c); i++ {
		if math.IsNaN(c[i]) {
			continue
		}
		if c[i] > upper || c[i] < lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}
