package langclust

import (
	"errors"
)

var (
	// ErrNoLanguages is returned when the pipeline is constructed with an
	// empty language registry.
	ErrNoLanguages = errors.New("language registry must not be empty")

	// ErrInvalidSpread is returned when the spread constant is not positive.
	ErrInvalidSpread = errors.New("spread must be positive")

	// ErrInvalidClusterCount is returned when the per-language cluster count
	// is not positive.
	ErrInvalidClusterCount = errors.New("clusters per language must be positive")

	// ErrInvalidPartitions is returned when the partition count is not positive.
	ErrInvalidPartitions = errors.New("partitions must be positive")
)
