package service

import "errors"

// Terminal pipeline failures. Handlers return these to the runtime so
// malformed input and upstream failures stay visible in the invocation
// result instead of being swallowed.
var (
	ErrInvalidEvent      = errors.New("invalid event payload")
	ErrUnsupportedFormat = errors.New("unsupported media format")
	ErrTranscriptParse   = errors.New("malformed transcript document")
	ErrGeneration        = errors.New("text generation failed")
)
