package pkdataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	testData := map[string]struct {
		t        []float64
		c        []float64
		expected *Profile
		err      error
	}{
		"no observations": {
			err: ErrNoObservations,
		},
		"length mismatch": {
			c:   []float64{1},
			err: ErrProfileLenMismatch,
		},
		"non increasing time": {
			t:   []float64{2, 1},
			c:   []float64{1, 2},
			err: ErrNonMonotonic,
		},
		"duplicate time": {
			t:   []float64{0, 1, 1},
			c:   []float64{0, 5, 5},
			err: ErrNonMonotonic,
		},
		"negative time": {
			t:   []float64{-1, 0},
			c:   []float64{1, 2},
			err: ErrNegativeTime,
		},
		"valid": {
			t: []float64{0, 1, 2},
			c: []float64{0, 10, 5},
			expected: &Profile{
				T: []float64{0, 1, 2},
				C: []float64{0, 10, 5},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			p, err := NewProfile(td.t, td.c)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, p)
		})
	}
}

func TestProfileCopy(t *testing.T) {
	p, err := NewProfile([]float64{0, 1}, []float64{3, 4})
	require.NoError(t, err)

	next := p.Copy()
	require.Equal(t, p, next)

	p.C[0] = 99
	assert.NotEqual(t, next, p)
}

func TestNewProfileCopiesInput(t *testing.T) {
	tSeries := []float64{0, 1}
	c := []float64{3, 4}
	p, err := NewProfile(tSeries, c)
	require.NoError(t, err)

	c[1] = -1
	assert.Equal(t, []float64{3, 4}, p.C)
}

func TestDropNaN(t *testing.T) {
	testData := map[string]struct {
		profile  *Profile
		expected *Profile
	}{
		"nil profile": {},
		"no NaNs": {
			profile:  &Profile{T: []float64{0, 1}, C: []float64{1, 2}},
			expected: &Profile{T: []float64{0, 1}, C: []float64{1, 2}},
		},
		"interior and edge NaNs": {
			profile: &Profile{
				T: []float64{0, 1, 2, 3, 4},
				C: []float64{math.NaN(), 2, math.NaN(), 4, math.NaN()},
			},
			expected: &Profile{
				T: []float64{1, 3},
				C: []float64{2, 4},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, td.profile.DropNaN())
		})
	}
}

func TestDropBLQ(t *testing.T) {
	p := &Profile{
		T: []float64{0, 1, 2, 3, 4},
		C: []float64{0.02, 1.4, 0.009, math.NaN(), 0.8},
	}
	res := p.DropBLQ(0.01)
	assert.Equal(t, &Profile{
		T: []float64{0, 1, 4},
		C: []float64{0.02, 1.4, 0.8},
	}, res)
}

func TestOutliers(t *testing.T) {
	testData := map[string]struct {
		c        []float64
		expected []int
	}{
		"empty": {},
		"no outliers": {
			c: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
		"single spike": {
			c: []float64{
				1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
				11, 12, 13, 14, 15, 16, 17, 18, 19, 500,
			},
			expected: []int{19},
		},
		"spike with NaN present": {
			c: []float64{
				1, 2, math.NaN(), 4, 5, 6, 7, 8, 9, 10,
				11, 12, 13, 14, 15, 16, 17, 18, 19, 500,
			},
			expected: []int{19},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res := Outliers(td.c, 0.1, 0.8, 1.0)
			assert.Equal(t, td.expected, res)
		})
	}
}
