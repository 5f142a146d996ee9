// Package errors provides structured error handling for user-data operations.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeTargetNotFound indicates a field path did not resolve to the
	// container shape the operation requires.
	CodeTargetNotFound Code = "TARGET_NOT_FOUND"

	// CodeInvalidPath indicates an empty path was given to a mutating
	// operation, or a write walk was blocked by a non-container value or an
	// unusable sequence index.
	CodeInvalidPath Code = "INVALID_PATH"

	// CodePersistence indicates the underlying storage read, decode, encode,
	// or write failed.
	CodePersistence Code = "PERSISTENCE"

	// CodeNoActiveEntry indicates no activated object was found where one
	// was required.
	CodeNoActiveEntry Code = "NO_ACTIVE_ENTRY"

	// CodeNotActivatable indicates an invariant-enforcing operation targeted
	// a container whose values are not all activatable objects.
	CodeNotActivatable Code = "NOT_ACTIVATABLE"
)
