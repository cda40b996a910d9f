package models

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type OLSOptions struct {
	// FitIntercept prepends a constant 1.0 column to the design matrix
	// so the first solved coefficient is the intercept.
	FitIntercept bool
}

func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept: true,
	}
}

// OLSRegression computes ordinary least squares using QR factorization.
type OLSRegression struct {
	opt       *OLSOptions
	coef      []float64
	intercept float64
}

var _ Model = (*OLSRegression)(nil)

func NewOLSRegression(opt *OLSOptions) *OLSRegression {
	if opt == nil {
		opt = NewDefaultOLSOptions()
	}
	return &OLSRegression{
		opt: opt,
	}
}

// Fit solves for the coefficients minimizing the squared residual between
// x*beta and the single-column target y.
func (o *OLSRegression) Fit(x, y mat.Matrix) error {
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}

	m, n := x.Dims()
	ym, yn := y.Dims()
	if yn != 1 {
		return fmt.Errorf("target has %d columns, %w", yn, ErrTargetShape)
	}
	if ym != m {
		return fmt.Errorf("training data has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	design := x
	if o.opt.FitIntercept {
		augmented := mat.NewDense(m, n+1, nil)
		for i := 0; i < m; i++ {
			augmented.Set(i, 0, 1.0)
			for j := 0; j < n; j++ {
				augmented.Set(i, j+1, x.At(i, j))
			}
		}
		design = augmented
	}

	qr := new(mat.QR)
	qr.Factorize(design)

	var betaMx mat.Dense
	if err := qr.SolveTo(&betaMx, false, y); err != nil {
		return fmt.Errorf("unable to solve least squares, %w", err)
	}
	beta := mat.Col(nil, 0, &betaMx)

	if o.opt.FitIntercept {
		o.intercept = beta[0]
		o.coef = beta[1:]
	} else {
		o.coef = beta
	}
	return nil
}

// Predict evaluates the fit model at every row of the design matrix.
func (o *OLSRegression) Predict(x mat.Matrix) ([]float64, error) {
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	if o.coef == nil {
		return nil, ErrNoCoefficients
	}

	m, n := x.Dims()
	if n != len(o.coef) {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, len(o.coef), ErrFeatureLenMismatch)
	}

	res := make([]float64, m)
	row := make([]float64, n)
	for i := 0; i < m; i++ {
		mat.Row(row, i, x)
		res[i] = o.intercept + floats.Dot(row, o.coef)
	}
	return res, nil
}

// Score returns the coefficient of determination of the prediction against
// the single-column target y.
func (o *OLSRegression) Score(x, y mat.Matrix) (float64, error) {
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}

	predicted, err := o.Predict(x)
	if err != nil {
		return 0.0, err
	}

	ym, yn := y.Dims()
	if yn != 1 {
		return 0.0, fmt.Errorf("target has %d columns, %w", yn, ErrTargetShape)
	}
	if ym != len(predicted) {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", len(predicted), ym, ErrTargetLenMismatch)
	}

	return rSquared(predicted, mat.Col(nil, 0, y)), nil
}

func (o *OLSRegression) Intercept() float64 {
	return o.intercept
}

func (o *OLSRegression) Coef() []float64 {
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}

// rSquared is computed from residuals directly rather than through a
// correlation so it stays exact for a perfect fit.
func rSquared(predicted, actual []float64) float64 {
	mean := floats.Sum(actual) / float64(len(actual))

	var ssRes, ssTot float64
	for i := range actual {
		dRes := actual[i] - predicted[i]
		dTot := actual[i] - mean
		ssRes += dRes * dRes
		ssTot += dTot * dTot
	}
	if ssTot == 0 {
		return 1.0
	}
	return 1.0 - ssRes/ssTot
}
