package finco

import "errors"

// Error kinds surfaced by the engine and by EntryStore implementations.
// Callers match them with errors.Is; messages wrapped around them carry the
// human-readable context.
var (
	// ErrNotFound reports that an entry or classification does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadySettled reports a settle operation on an already settled entry.
	ErrAlreadySettled = errors.New("entry already settled")
	// ErrInvalidTransition reports a situation change the state machine refuses.
	ErrInvalidTransition = errors.New("invalid situation transition")
	// ErrInvalidThresholds reports a Miller-Orr band that violates
	// minimum < return point < maximum.
	ErrInvalidThresholds = errors.New("invalid cash band thresholds")
	// ErrConflict reports a concurrent modification detected by the store.
	ErrConflict = errors.New("concurrent modification")
	// ErrValidation reports malformed input: unknown enum value, negative
	// amount, missing required field.
	ErrValidation = errors.New("invalid input")
)
