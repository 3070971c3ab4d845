package octocore

import (
	"fmt"
	"sync"

	"github.com/drpcorg/octocore/rdx"
)

// ApplyFunc runs a command's forward logic against state, writing into
// result while result.Mutable() is true. state.Payload has already been
// accepted by the registry entry's AcceptsFunc before ApplyFunc is
// invoked; the author's apply routine still performs its own downcast of
// state.Payload to the concrete capability it needs (spec.md §4.4). state
// is passed in full, not just its Payload, so commands that mint object
// ids can call state.NextObjectId().
type ApplyFunc func(state *State, args *rdx.ArgMap, result *Result) error

// RevertFunc undoes a previously applied command's effect against state,
// using the previously captured result (never mutated).
type RevertFunc func(state *State, args *rdx.ArgMap, result *Result) error

// AcceptsFunc reports whether payload (a State's Payload) satisfies the
// capability/type this command targets (spec.md §4.4 "downcast the
// incoming state handle"). It replaces C++ dynamic_cast: a small
// acceptance predicate per command, evaluated at dispatch time, matching
// spec.md §9's guidance to model downcast as a typed lookup/acceptance
// table rather than reflection.
type AcceptsFunc func(payload any) bool

type registryEntry struct {
	apply   ApplyFunc
	revert  RevertFunc
	accepts AcceptsFunc
}

// commandTable is a CommandId -> registryEntry table safe for concurrent
// Register/lookup calls. It is a thin sync.Map wrapper rather than a
// generic map type: CommandRegistry is its only caller and its only
// key/value pair, so the type assertions a generic wrapper would hide are
// spelled out once, here, instead of behind an extra layer of indirection.
type commandTable struct {
	sm sync.Map
}

func (t *commandTable) loadOrStore(id CommandId, entry registryEntry) (registryEntry, bool) {
	actual, loaded := t.sm.LoadOrStore(id, entry)
	return actual.(registryEntry), loaded
}

func (t *commandTable) load(id CommandId) (registryEntry, bool) {
	v, ok := t.sm.Load(id)
	if !ok {
		return registryEntry{}, false
	}
	return v.(registryEntry), true
}

// CommandRegistry is a per-state-family table mapping CommandId to an
// (apply, revert, accepts) triple (spec.md §4.4). Multiple state types may
// share one registry: a command declared against a capability interface
// is applicable to any state type whose accepts function returns true.
type CommandRegistry struct {
	entries commandTable
}

// NewCommandRegistry constructs an empty registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{}
}

// Register installs the (apply, revert) pair for id, guarded by accepts.
// Registering two commands under the same id in the same registry fails
// with KindStateError (spec.md §4.4, §8 "Boundary behaviors").
func (r *CommandRegistry) Register(id CommandId, accepts AcceptsFunc, apply ApplyFunc, revert RevertFunc) error {
	if id < 0 {
		return ErrStateError(fmt.Sprintf("command id %d is negative; the negative range is reserved for the core", id))
	}
	entry := registryEntry{apply: apply, revert: revert, accepts: accepts}
	if _, loaded := r.entries.loadOrStore(id, entry); loaded {
		return ErrStateError(fmt.Sprintf("command id %d is already registered", id))
	}
	return nil
}

// lookup returns the entry for id and whether it is present.
func (r *CommandRegistry) lookup(id CommandId) (registryEntry, bool) {
	return r.entries.load(id)
}

// RegistryEntry bundles the pieces Register needs, for callers who prefer
// to build a table of entries and register them in one pass (see
// RegisterDefaultCommands in register.go).
type RegistryEntry struct {
	Id      CommandId
	Accepts AcceptsFunc
	Apply   ApplyFunc
	Revert  RevertFunc
}
