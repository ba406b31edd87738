package domain

import "errors"

var (
	// ErrInvalidSubmission is returned when a submission violates the input
	// contract (missing name, unrecognised age flag). Domain-invalid values
	// such as a non-positive price never raise this; they surface as field
	// decisions instead.
	ErrInvalidSubmission = errors.New("invalid submission")

	// ErrSubmissionNotFound is returned when a stored submission ID is unknown
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrCatalogLoad is returned when the reference catalog cannot be read
	ErrCatalogLoad = errors.New("failed to load catalog")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
