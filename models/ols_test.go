package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestOLSRegression(t *testing.T) {
	tol := 1e-8
	testData := map[string]struct {
		x         [][]float64
		y         []float64
		opt       *OLSOptions
		intercept float64
		coef      []float64
	}{
		"ols model intercept": {
			x: [][]float64{
				{0, 0},
				{3, 5},
				{9, 20},
				{12, 6},
				{15, 10},
			},
			y:         []float64{2, 31, 109, 62, 87},
			intercept: 2.0,
			coef:      []float64{3.0, 4.0},
		},
		"ols model no intercept": {
			x: [][]float64{
				{1, 0, 0},
				{1, 3, 5},
				{1, 9, 20},
				{1, 12, 6},
				{1, 15, 10},
			},
			y: []float64{2, 31, 109, 62, 87},
			opt: &OLSOptions{
				FitIntercept: false,
			},
			intercept: 0.0,
			coef:      []float64{2.0, 3.0, 4.0},
		},
		"single feature line": {
			x: [][]float64{
				{1},
				{2},
				{3},
				{4},
			},
			y:         []float64{3, 5, 7, 9},
			intercept: 1.0,
			coef:      []float64{2.0},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			rows := len(td.x)
			cols := len(td.x[0])
			flat := make([]float64, 0, rows*cols)
			for _, row := range td.x {
				flat = append(flat, row...)
			}
			x := mat.NewDense(rows, cols, flat)
			y := mat.NewDense(len(td.y), 1, td.y)

			model := NewOLSRegression(td.opt)
			require.Nil(t, model.Fit(x, y))

			assert.InDelta(t, td.intercept, model.Intercept(), tol)
			coef := model.Coef()
			require.Equal(t, len(td.coef), len(coef))
			for i, c := range td.coef {
				assert.InDelta(t, c, coef[i], tol)
			}

			predicted, err := model.Predict(x)
			require.Nil(t, err)
			require.Equal(t, len(td.y), len(predicted))
			for i, expected := range td.y {
				assert.InDelta(t, expected, predicted[i], tol)
			}

			score, err := model.Score(x, y)
			require.Nil(t, err)
			assert.InDelta(t, 1.0, score, tol)
		})
	}
}

func TestOLSRegressionFitErrors(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{1, 2, 3})

	testData := map[string]struct {
		x   mat.Matrix
		y   mat.Matrix
		err error
	}{
		"no training matrix": {nil, mat.NewDense(3, 1, []float64{1, 2, 3}), ErrNoTrainingMatrix},
		"no target matrix":   {x, nil, ErrNoTargetMatrix},
		"target shape":       {x, mat.NewDense(3, 2, nil), ErrTargetShape},
		"target len":         {x, mat.NewDense(2, 1, []float64{1, 2}), ErrTargetLenMismatch},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			model := NewOLSRegression(nil)
			err := model.Fit(td.x, td.y)
			assert.ErrorIs(t, err, td.err)
		})
	}
}

func TestOLSRegressionPredictErrors(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{2, 4, 6})

	t.Run("predict before fit", func(t *testing.T) {
		model := NewOLSRegression(nil)
		_, err := model.Predict(x)
		assert.ErrorIs(t, err, ErrNoCoefficients)
	})

	t.Run("nil design matrix", func(t *testing.T) {
		model := NewOLSRegression(nil)
		require.Nil(t, model.Fit(x, y))
		_, err := model.Predict(nil)
		assert.ErrorIs(t, err, ErrNoDesignMatrix)
	})

	t.Run("feature count mismatch", func(t *testing.T) {
		model := NewOLSRegression(nil)
		require.Nil(t, model.Fit(x, y))
		_, err := model.Predict(mat.NewDense(3, 2, nil))
		assert.ErrorIs(t, err, ErrFeatureLenMismatch)
	})
}

func TestOLSRegressionModelInterface(t *testing.T) {
	var model Model = NewOLSRegression(nil)

	x := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	y := mat.NewDense(4, 1, []float64{1, 3, 5, 7})

	require.Nil(t, model.Fit(x, y))
	assert.InDelta(t, 1.0, model.Intercept(), 1e-8)
	require.Len(t, model.Coef(), 1)
	assert.InDelta(t, 2.0, model.Coef()[0], 1e-8)

	score, err := model.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, score, 1e-8)
}
