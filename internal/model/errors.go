package model

import "errors"

var (
	// ErrInvalidInputData marks a malformed or degenerate price series.
	ErrInvalidInputData = errors.New("invalid input data")
	// ErrInsufficientHistory marks a series too short to classify.
	ErrInsufficientHistory = errors.New("insufficient history")
)
