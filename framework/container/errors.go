package container

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ── Sentinels ─────────────────────────────────────────────────────────────────

var (
	// ErrRegistration is matched by every RegistrationError.
	ErrRegistration = errors.New("invalid registration")

	// ErrUnregisteredService is matched by every UnregisteredServiceError.
	ErrUnregisteredService = errors.New("service not registered")

	// ErrScopedAccessViolation is matched by every ScopedAccessViolationError.
	ErrScopedAccessViolation = errors.New("scoped service accessed outside a scope")

	// ErrDisposedProviderAccess is matched by every DisposedProviderAccessError.
	ErrDisposedProviderAccess = errors.New("provider already disposed")

	// ErrCircularDependency is matched by every CircularDependencyError.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrStrictModeViolation is matched by every StrictModeViolationError.
	ErrStrictModeViolation = errors.New("operation forbidden in strict mode")
)

// ── Typed errors ──────────────────────────────────────────────────────────────

// RegistrationError reports a malformed registration. It is returned by
// Register and Prepare, never deferred to resolution time.
type RegistrationError struct {
	Name   string
	Reason string
}

func (e *RegistrationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %s", ErrRegistration, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", ErrRegistration, e.Name, e.Reason)
}

func (e *RegistrationError) Is(target error) bool { return target == ErrRegistration }

// UnregisteredServiceError is returned in strict mode for names that have no
// registration visible to the caller.
type UnregisteredServiceError struct {
	Name string
}

func (e *UnregisteredServiceError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnregisteredService, e.Name)
}

func (e *UnregisteredServiceError) Is(target error) bool { return target == ErrUnregisteredService }

// ScopedAccessViolationError is returned in strict mode when a scoped name is
// read from the host, or from a singleton or transient factory.
type ScopedAccessViolationError struct {
	Name string
}

func (e *ScopedAccessViolationError) Error() string {
	return fmt.Sprintf("%s: %q", ErrScopedAccessViolation, e.Name)
}

func (e *ScopedAccessViolationError) Is(target error) bool { return target == ErrScopedAccessViolation }

// DisposedProviderAccessError is returned by every operation on a provider
// after its Dispose has started.
type DisposedProviderAccessError struct {
	Name     string
	Provider string
}

func (e *DisposedProviderAccessError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %s", ErrDisposedProviderAccess, e.Provider)
	}
	return fmt.Sprintf("%s: %s: %q", ErrDisposedProviderAccess, e.Provider, e.Name)
}

func (e *DisposedProviderAccessError) Is(target error) bool {
	return target == ErrDisposedProviderAccess
}

// CircularDependencyError is returned when a name is resolved again while its
// own factory is still running on the same resolution path. Stack is the
// snapshot of names that were already resolving when Name started; Path is
// the chain at the moment the re-entrant access happened.
type CircularDependencyError struct {
	Name  string
	Stack []string
	Path  []string
}

func (e *CircularDependencyError) Error() string {
	chain := append(append([]string(nil), e.Path...), e.Name)
	return fmt.Sprintf("%s: %s", ErrCircularDependency, strings.Join(chain, " -> "))
}

func (e *CircularDependencyError) Is(target error) bool { return target == ErrCircularDependency }

// StrictModeViolationError is returned when strict mode forbids an edit.
type StrictModeViolationError struct {
	Name string
	Op   string
}

func (e *StrictModeViolationError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrStrictModeViolation, e.Op, e.Name)
}

func (e *StrictModeViolationError) Is(target error) bool { return target == ErrStrictModeViolation }

// ── Helpers ───────────────────────────────────────────────────────────────────

// isEngineError reports whether err belongs to the taxonomy above. Only such
// errors are recovered when a factory panics with them.
func isEngineError(err error) bool {
	for _, sentinel := range []error{
		ErrRegistration,
		ErrUnregisteredService,
		ErrScopedAccessViolation,
		ErrDisposedProviderAccess,
		ErrCircularDependency,
		ErrStrictModeViolation,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
