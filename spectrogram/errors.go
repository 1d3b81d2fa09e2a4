package spectrogram

import (
	"errors"
	"fmt"
)

// Configuration errors. Options.Validate wraps them in a *ConfigError.
var (
	// ErrInvalidOverlap indicates an overlap outside [0, 1).
	ErrInvalidOverlap = errors.New("overlap must be in [0, 1)")

	// ErrInvalidChunkSize indicates a non-positive chunk size.
	ErrInvalidChunkSize = errors.New("chunk size must be positive")

	// ErrInvalidStep indicates chunk size and overlap leave a step below one sample.
	ErrInvalidStep = errors.New("step must be at least one sample")

	// ErrChunkNotPowerOfTwo indicates a chunk size the gossp backend cannot
	// transform without padding.
	ErrChunkNotPowerOfTwo = errors.New("chunk size must be a power of two for this backend")

	// ErrUnknownBackend indicates a backend name not in BackendNames.
	ErrUnknownBackend = errors.New("unknown spectrogram backend")
)

// ConfigError reports a rejected option before any computation starts.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
