// Package octocore implements a command-sourced state engine: typed,
// self-describing commands that mutate a State and can be undone, redone,
// and replayed deterministically from recorded results (spec.md).
package octocore

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind is the closed taxonomy of failure kinds from spec.md §7.
type Kind int

const (
	// KindInapplicableCommand means the target state does not satisfy the
	// command's required capability/downcast. Raised by dispatch; no
	// state change.
	KindInapplicableCommand Kind = iota
	// KindWillNotApply means the command's own preconditions failed
	// against the current state. Author-raised from inside apply.
	KindWillNotApply
	// KindResultMisuse means a result field was written outside the
	// first apply. Programmer bug; not recoverable.
	KindResultMisuse
	// KindStateError means a configuration/bookkeeping failure:
	// duplicate registration, session-id out of range, object-id
	// exhaustion, invalid registry.
	KindStateError
)

func (k Kind) String() string {
	switch k {
	case KindInapplicableCommand:
		return "inapplicable-command"
	case KindWillNotApply:
		return "will-not-apply"
	case KindResultMisuse:
		return "result-misuse"
	case KindStateError:
		return "state-error"
	default:
		return "unknown-error-kind"
	}
}

// CommandError is the single error type used across the engine; Kind
// discriminates programmatically, Reason is a human-readable string
// (spec.md §7 "errors carry a human-readable reason string; the kind
// discriminates programmatically").
type CommandError struct {
	Kind   Kind
	Reason string
	cause  error
}

func (e *CommandError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *CommandError) Unwrap() error { return e.cause }

func newCommandError(kind Kind, reason string) *CommandError {
	return &CommandError{Kind: kind, Reason: reason}
}

func wrapCommandError(kind Kind, reason string, cause error) *CommandError {
	return &CommandError{Kind: kind, Reason: reason, cause: pkgerrors.WithStack(cause)}
}

// asCommandError normalizes err into the closed taxonomy: if err is
// already a *CommandError it is returned unchanged, otherwise it is
// wrapped as KindWillNotApply with a stack trace attached. Author-written
// apply/revert functions are not required to construct a *CommandError
// themselves; whatever they return still surfaces with a discriminable
// Kind (spec.md §7).
func asCommandError(err error) *CommandError {
	if err == nil {
		return nil
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr
	}
	return wrapCommandError(KindWillNotApply, "command handler returned an unwrapped error", err)
}

// ErrInapplicableCommand builds a KindInapplicableCommand error.
func ErrInapplicableCommand(reason string) *CommandError {
	return newCommandError(KindInapplicableCommand, reason)
}

// ErrWillNotApply builds a KindWillNotApply error.
func ErrWillNotApply(reason string) *CommandError {
	return newCommandError(KindWillNotApply, reason)
}

// ErrResultMisuse builds a KindResultMisuse error.
func ErrResultMisuse(reason string) *CommandError {
	return newCommandError(KindResultMisuse, reason)
}

// ErrStateError builds a KindStateError error.
func ErrStateError(reason string) *CommandError {
	return newCommandError(KindStateError, reason)
}
