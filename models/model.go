// Package models provides the regression machinery behind the
// terminal-phase estimator: a generic least-squares fitting engine over
// gonum matrices and the log-linear lambda-z fit built on top of it.
package models

import (
	"gonum.org/v1/gonum/mat"
)

// Model is a regression fitting implementation over a design matrix with
// one observation per row.
type Model interface {
	Fit(x, y mat.Matrix) error
	Predict(x mat.Matrix) ([]float64, error)
	Score(x, y mat.Matrix) (float64, error)
	Intercept() float64
	Coef() []float64
}
