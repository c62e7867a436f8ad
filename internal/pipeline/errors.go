package pipeline

import "errors"

// Sentinel errors returned by the runners.
var (
	ErrInputNotFound        = errors.New("input file not found")
	ErrNotRegularFile       = errors.New("input is not a regular file")
	ErrUnsupportedFormat    = errors.New("unsupported input format")
	ErrUnsupportedAnimation = errors.New("animated input is not supported")
)
