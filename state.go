package octocore

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/drpcorg/octocore/rdx"
	"github.com/drpcorg/octocore/utils"
)

// CommandRecord is the immutable (CommandId, ArgumentMap, ResultMap)
// triple stored in the undo/redo deques (spec.md §3). It is move-only in
// spirit: once constructed, callers should treat the Args/Result handles
// as read-only.
type CommandRecord struct {
	Id     CommandId
	Args   *rdx.ArgMap
	Result *rdx.ArgMap
}

// State owns a domain payload (opaque to the core, following the
// teacher's StoreLoader-is-opaque convention), a session id, an
// id-minting counter, and the undo/redo history (spec.md §4.5). It is
// single-threaded with respect to Run/Undo/Redo on a given instance;
// distinct State instances may be driven concurrently from distinct
// goroutines without coordination (spec.md §5).
type State struct {
	Payload  any
	session  rdx.SessionId
	registry *CommandRegistry
	logger   utils.Logger

	counter atomic.Uint64

	lock  sync.Mutex
	undo  []CommandRecord
	redo  []CommandRecord
}

// NewState constructs a State bound to registry, minting object ids under
// session. Fails with KindStateError if session does not fit the 14-bit
// session-id space (spec.md §3, §8 "Boundary behaviors").
func NewState(session rdx.SessionId, registry *CommandRegistry, payload any, logger utils.Logger) (*State, error) {
	if !session.Valid() {
		return nil, ErrStateError(fmt.Sprintf("session id %d exceeds the 14-bit session id space", session))
	}
	if registry == nil {
		return nil, ErrStateError("state requires a non-nil command registry")
	}
	if logger == nil {
		logger = utils.NewDefaultLogger(slog.LevelInfo)
	}
	return &State{
		Payload:  payload,
		session:  session,
		registry: registry,
		logger:   logger,
	}, nil
}

// SessionId returns the session this state mints object ids under.
func (s *State) SessionId() rdx.SessionId { return s.session }

// NextObjectId atomically mints a fresh ObjectId under this state's
// session, failing with KindStateError once the 48-bit per-session
// counter is exhausted (spec.md §4.5, §8).
func (s *State) NextObjectId() (rdx.ObjectId, error) {
	n := s.counter.Add(1)
	if n > rdx.MaxObjectCounter {
		s.counter.Add(^uint64(0)) // undo the increment; the counter stays exhausted either way
		return rdx.BadObjectId, ErrStateError("object id exhaustion: session counter overflowed 48 bits")
	}
	return rdx.MakeObjectId(s.session, n), nil
}

// Run looks up the registered handler for cmd's CommandId, invokes it
// with a fresh, mutable Result, and — if allowUndo is true — appends the
// resulting CommandRecord to the undo deque and clears the redo deque
// (spec.md §4.5). A failing apply never mutates undo/redo.
func (s *State) Run(cmd Command, allowUndo bool) (*Result, error) {
	entry, ok := s.registry.lookup(cmd.CommandId())
	if !ok {
		return nil, ErrInapplicableCommand(fmt.Sprintf("no command registered for id %d", cmd.CommandId()))
	}
	if !entry.accepts(s.Payload) {
		return nil, ErrInapplicableCommand(fmt.Sprintf("state does not satisfy the capability required by command %d", cmd.CommandId()))
	}

	result := NewResult()
	if err := entry.apply(s, cmd.Args(), result); err != nil {
		err = asCommandError(err)
		s.logger.Debug("command apply failed", "command_id", cmd.CommandId(), "err", err)
		return nil, err
	}
	result.Freeze()
	s.logger.Debug("command applied", "command_id", cmd.CommandId(), "allow_undo", allowUndo)

	if allowUndo {
		s.lock.Lock()
		s.undo = append(s.undo, CommandRecord{
			Id:     cmd.CommandId(),
			Args:   cmd.Args(),
			Result: result.Values().Share(),
		})
		s.redo = nil
		s.lock.Unlock()
	}
	return result, nil
}

// CanUndo reports whether the undo deque is non-empty.
func (s *State) CanUndo() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.undo) > 0
}

// CanRedo reports whether the redo deque is non-empty.
func (s *State) CanRedo() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.redo) > 0
}

// Undo reverts the most recently applied (and not yet undone) command.
// The record is only popped from undo and pushed onto redo if revert
// succeeds; on failure the undo deque is left untouched and the error
// propagates to the caller (spec.md §9 Open Question: "halt rather than
// attempt partial rollback").
func (s *State) Undo() error {
	s.lock.Lock()
	if len(s.undo) == 0 {
		s.lock.Unlock()
		return ErrStateError("nothing to undo")
	}
	rec := s.undo[len(s.undo)-1]
	s.lock.Unlock()

	entry, ok := s.registry.lookup(rec.Id)
	if !ok {
		return ErrInapplicableCommand(fmt.Sprintf("no command registered for id %d", rec.Id))
	}
	result := ResultFromValues(rec.Result)
	if err := entry.revert(s, rec.Args, result); err != nil {
		return asCommandError(err)
	}

	s.lock.Lock()
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, rec)
	s.lock.Unlock()
	return nil
}

// Redo re-applies the most recently undone command, replaying it with the
// SAME recorded result and mutability disabled (spec.md §4.5's
// replay-consistency contract: commands that mint fresh ids must consult
// their result for the prior value rather than minting again).
func (s *State) Redo() error {
	s.lock.Lock()
	if len(s.redo) == 0 {
		s.lock.Unlock()
		return ErrStateError("nothing to redo")
	}
	rec := s.redo[len(s.redo)-1]
	s.lock.Unlock()

	entry, ok := s.registry.lookup(rec.Id)
	if !ok {
		return ErrInapplicableCommand(fmt.Sprintf("no command registered for id %d", rec.Id))
	}
	result := ResultFromValues(rec.Result)
	if err := entry.apply(s, rec.Args, result); err != nil {
		return asCommandError(err)
	}

	s.lock.Lock()
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, rec)
	s.lock.Unlock()
	return nil
}

// History returns a snapshot of the undo deque, oldest first, for
// diagnostics and the CLI's `history` command. The returned slice is a
// copy; mutating it does not affect the live deque.
func (s *State) History() []CommandRecord {
	s.lock.Lock()
	defer s.lock.Unlock()
	cp := make([]CommandRecord, len(s.undo))
	copy(cp, s.undo)
	return cp
}
