package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNotFound      = errors.New("not found")

	// ErrDataIntegrity reports missing corpus files at load time.
	ErrDataIntegrity = errors.New("data integrity")
	// ErrFeatureDimension reports feature vectors of unequal length within one configuration.
	ErrFeatureDimension = errors.New("inconsistent feature dimension")
	// ErrInsufficientClasses reports a label dimension with fewer than two distinct values.
	ErrInsufficientClasses = errors.New("insufficient classes")
	// ErrNotPrepared reports Extract called on a corpus-fitted extractor before Prepare.
	ErrNotPrepared = errors.New("extractor not prepared")
)
