package inject

import (
	"fmt"
	"strings"
)

// ── Error taxonomy ────────────────────────────────────────────────────────────
//
// All four error kinds are plain struct types so callers can match them with
// errors.As. None are retried internally; each propagates synchronously to the
// caller that triggered the failing operation.

// DuplicateBindingError reports two non-multibound bindings for the same Key.
// Surfaced at composition time and fatal to that composition attempt.
type DuplicateBindingError struct {
	Key Key
}

func (e DuplicateBindingError) Error() string {
	return fmt.Sprintf("inject: a binding for %v is already registered", e.Key)
}

// MissingBindingError reports a resolution request for an unregistered Key.
type MissingBindingError struct {
	Key Key
}

func (e MissingBindingError) Error() string {
	return fmt.Sprintf("inject: no binding registered for %v", e.Key)
}

// CircularDependencyError reports a Key that depends transitively on itself
// through direct (non-Provider) edges. Path holds the resolution chain ending
// in the repeated Key.
type CircularDependencyError struct {
	Path []Key
}

func (e CircularDependencyError) Error() string {
	parts := make([]string, len(e.Path))
	for i, k := range e.Path {
		parts[i] = k.String()
	}
	return "inject: circular dependency detected: " + strings.Join(parts, " -> ")
}

// RegistryFrozenError reports a mutation attempted after the registry was
// frozen. This is a programmer error: all registration must happen during
// composition.
type RegistryFrozenError struct {
	Key Key
}

func (e RegistryFrozenError) Error() string {
	return fmt.Sprintf("inject: registry is frozen, cannot register %v", e.Key)
}
