package handlers

import "errors"

var (
	errInvalidJSON     = errors.New("invalid json body")
	errTrailingJSON    = errors.New("body must contain only one JSON object")
	errComputeVariants = errors.New("computeVariants must be a boolean")
	errCoordinates     = errors.New("coordinates out of range")
)
