package descriptors

import (
	"errors"
)

var (
	// ErrInvalidShape is returned when two bindings in one shape claim
	// the same slot index. Detected before any driver call.
	ErrInvalidShape = errors.New("invalid descriptor shape")
	// ErrUnrecoverable is returned when a set allocation fails outside
	// the exhaustion classes, or fails again after the single retry
	// against a freshly grown pool.
	ErrUnrecoverable = errors.New("unrecoverable descriptor allocation failure")
	// ErrBuilderConsumed is returned when a builder session is used
	// after Build already committed it.
	ErrBuilderConsumed = errors.New("descriptor builder already consumed")
)
