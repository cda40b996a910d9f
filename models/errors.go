package models

import (
	"errors"
)

var (
	ErrNoTrainingMatrix   = errors.New("no training matrix")
	ErrNoTargetMatrix     = errors.New("no target matrix")
	ErrNoDesignMatrix     = errors.New("no design matrix for inference")
	ErrNoCoefficients     = errors.New("no model coefficients from fit")
	ErrTargetLenMismatch  = errors.New("target length does not match training rows")
	ErrTargetShape        = errors.New("target must be a single column")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")

	ErrLenMismatch        = errors.New("time length does not match concentration length")
	ErrInsufficientPoints = errors.New("need at least 3 points for a terminal fit")
	ErrNonPositiveConc    = errors.New("non-positive concentration in fit window")
	ErrBadWindow          = errors.New("invalid fit window bounds")
	ErrNoTerminalPhase    = errors.New("no declining terminal phase found")
)
