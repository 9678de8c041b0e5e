package crt

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrMissingSurface indicates a required drawing surface was not provided.
	ErrMissingSurface = errors.New("crt: required drawing surface missing")

	// ErrInvalidConfig indicates a configuration field is out of range.
	ErrInvalidConfig = errors.New("crt: invalid configuration")

	// ErrUnknownMode indicates a mode name that is neither manual nor lissajous.
	ErrUnknownMode = errors.New("crt: unknown mode")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("crt: unknown preset")

	// ErrFrameFault indicates a frame was skipped because rendering failed.
	ErrFrameFault = errors.New("crt: frame rendering fault")
)

// FrameError wraps a rendering fault with the tick it happened on.
type FrameError struct {
	Tick  int64
	Cause error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Cause)
}

func (e *FrameError) Unwrap() []error {
	return []error{ErrFrameFault, e.Cause}
}
