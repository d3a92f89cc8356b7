package ecs

import (
	"errors"
	"fmt"
)

var (
	ErrEntityNotFound     = errors.New("entity not found")
	ErrComponentNotFound  = errors.New("component not found")
	ErrSystem             = errors.New("system error")
	ErrStaleEntity        = errors.New("stale entity reference")
	ErrEntityNotAlive     = errors.New("entity not alive")
	ErrInvalidGeneration  = errors.New("invalid entity generation")
	ErrDuplicateSystem    = errors.New("duplicate system name")
	ErrEntityStillAlive   = errors.New("entity slot is still alive")
	errUnreachableBoxType = errors.New("component box holds unexpected type")
)

// EntityNotFoundError reports an absent or removed entity.
type EntityNotFoundError struct {
	ID EntityID
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d not found", e.ID)
}

func (e *EntityNotFoundError) Is(target error) bool { return target == ErrEntityNotFound }

// ComponentNotFoundError reports an entity that exists but lacks the requested type.
type ComponentNotFoundError struct {
	ID  EntityID
	Key ComponentKey
}

func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("entity %d has no %s component", e.ID, e.Key.Name())
}

func (e *ComponentNotFoundError) Is(target error) bool { return target == ErrComponentNotFound }

// SystemError is returned when a system cannot complete its update.
type SystemError struct {
	System  string
	Message string
	Err     error
}

// NewSystemError is a convenience for systems reporting an unrecoverable condition.
func NewSystemError(system, format string, args ...any) *SystemError {
	return &SystemError{System: system, Message: fmt.Sprintf(format, args...)}
}

func (e *SystemError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.System == "" {
		return "system: " + msg
	}
	return fmt.Sprintf("system %s: %s", e.System, msg)
}

func (e *SystemError) Unwrap() error { return e.Err }

func (e *SystemError) Is(target error) bool { return target == ErrSystem }

// GenerationKind says why an EntityReference failed validation.
type GenerationKind uint8

const (
	GenerationStale    GenerationKind = iota // slot reused since the handle was stamped
	GenerationNotAlive                       // same generation, slot destroyed
	GenerationInvalid                        // generation was never issued for this slot
)

func (k GenerationKind) String() string {
	switch k {
	case GenerationStale:
		return "stale"
	case GenerationNotAlive:
		return "not alive"
	case GenerationInvalid:
		return "invalid generation"
	}
	return "unknown"
}

func (k GenerationKind) sentinel() error {
	switch k {
	case GenerationStale:
		return ErrStaleEntity
	case GenerationNotAlive:
		return ErrEntityNotAlive
	default:
		return ErrInvalidGeneration
	}
}

// GenerationError is returned when a held reference no longer matches its slot.
// Stale and not-alive references also match ErrEntityNotFound: the logical
// entity they named is gone.
type GenerationError struct {
	Kind GenerationKind
	Ref  EntityReference
	Live EntityGeneration
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("entity reference %s: %s (live generation %d, alive=%t)",
		e.Ref, e.Kind, e.Live.Generation, e.Live.IsAlive)
}

func (e *GenerationError) Is(target error) bool {
	if target == e.Kind.sentinel() {
		return true
	}
	return target == ErrEntityNotFound && e.Kind != GenerationInvalid
}
