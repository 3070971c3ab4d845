package octocore

import (
	"errors"
	"testing"

	"github.com/drpcorg/octocore/rdx"
	"github.com/drpcorg/octocore/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterDomain is a minimal in-package test fixture mirroring spec.md §8
// scenario 1 (FoodOrders / PlaceOrder): an integer that a command
// increments on apply and decrements on revert.
type counterDomain struct {
	orders int64
}

const placeOrderId CommandId = 1

func newPlaceOrderCommand() CommandBase {
	return NewCommandBase(placeOrderId)
}

func placeOrderApply(state *State, args *rdx.ArgMap, result *Result) error {
	c := state.Payload.(*counterDomain)
	c.orders++
	return nil
}

func placeOrderRevert(state *State, args *rdx.ArgMap, result *Result) error {
	c := state.Payload.(*counterDomain)
	c.orders--
	return nil
}

func acceptsCounterDomain(state any) bool {
	_, ok := state.(*counterDomain)
	return ok
}

func newCounterRegistry(t *testing.T) *CommandRegistry {
	t.Helper()
	reg := NewCommandRegistry()
	require.NoError(t, reg.Register(placeOrderId, acceptsCounterDomain, placeOrderApply, placeOrderRevert))
	return reg
}

func TestUndoRedoCounterScenario(t *testing.T) {
	reg := newCounterRegistry(t)
	domain := &counterDomain{}
	state, err := NewState(1, reg, domain, nil)
	require.NoError(t, err)

	cmd := newPlaceOrderCommand()
	_, err = state.Run(cmd, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, domain.orders)
	assert.True(t, state.CanUndo())
	assert.False(t, state.CanRedo())

	require.NoError(t, state.Undo())
	assert.EqualValues(t, 0, domain.orders)
	assert.False(t, state.CanUndo())
	assert.True(t, state.CanRedo())

	require.NoError(t, state.Redo())
	assert.EqualValues(t, 1, domain.orders)
	assert.True(t, state.CanUndo())
	assert.False(t, state.CanRedo())
}

func TestApplyThenUndoAllReturnsToStart(t *testing.T) {
	reg := newCounterRegistry(t)
	domain := &counterDomain{}
	state, err := NewState(2, reg, domain, nil)
	require.NoError(t, err)

	const n = 5
	for i := 0; i < n; i++ {
		_, err := state.Run(newPlaceOrderCommand(), true)
		require.NoError(t, err)
	}
	assert.EqualValues(t, n, domain.orders)

	for i := 0; i < n; i++ {
		require.NoError(t, state.Undo())
	}
	assert.EqualValues(t, 0, domain.orders)
	assert.False(t, state.CanUndo())
}

func TestNewRunClearsRedo(t *testing.T) {
	reg := newCounterRegistry(t)
	domain := &counterDomain{}
	state, err := NewState(3, reg, domain, nil)
	require.NoError(t, err)

	_, err = state.Run(newPlaceOrderCommand(), true)
	require.NoError(t, err)
	require.NoError(t, state.Undo())
	assert.True(t, state.CanRedo())

	_, err = state.Run(newPlaceOrderCommand(), true)
	require.NoError(t, err)
	assert.False(t, state.CanRedo())
}

func TestNextObjectIdMinting(t *testing.T) {
	reg := NewCommandRegistry()
	state, err := NewState(10, reg, &counterDomain{}, nil)
	require.NoError(t, err)

	first, err := state.NextObjectId()
	require.NoError(t, err)
	second, err := state.NextObjectId()
	require.NoError(t, err)

	assert.EqualValues(t, 10, first.Session())
	assert.EqualValues(t, 1, first.Counter())
	assert.EqualValues(t, 10, second.Session())
	assert.EqualValues(t, 2, second.Counter())
}

func TestNewStateRejectsOutOfRangeSession(t *testing.T) {
	reg := NewCommandRegistry()
	_, err := NewState(rdx.SessionId(1<<14), reg, &counterDomain{}, nil)
	require.Error(t, err)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, KindStateError, cmdErr.Kind)
}

func TestRunAgainstUnregisteredIdIsInapplicable(t *testing.T) {
	reg := NewCommandRegistry()
	state, err := NewState(1, reg, &counterDomain{}, nil)
	require.NoError(t, err)

	_, err = state.Run(newPlaceOrderCommand(), true)
	require.Error(t, err)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, KindInapplicableCommand, cmdErr.Kind)
}

func TestRunAgainstWrongCapabilityIsInapplicable(t *testing.T) {
	reg := newCounterRegistry(t)
	state, err := NewState(1, reg, "not a counter domain", nil)
	require.NoError(t, err)

	_, err = state.Run(newPlaceOrderCommand(), true)
	require.Error(t, err)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, KindInapplicableCommand, cmdErr.Kind)
}

func TestFailedApplyLeavesNoRecord(t *testing.T) {
	reg := NewCommandRegistry()
	const failId CommandId = 2
	require.NoError(t, reg.Register(failId, acceptsCounterDomain,
		func(state *State, args *rdx.ArgMap, result *Result) error {
			return ErrWillNotApply("precondition failed")
		},
		func(state *State, args *rdx.ArgMap, result *Result) error { return nil },
	))
	domain := &counterDomain{}
	state, err := NewState(1, reg, domain, nil)
	require.NoError(t, err)

	failCmd := NewCommandBase(failId)
	_, err = state.Run(failCmd, true)
	require.Error(t, err)
	assert.False(t, state.CanUndo())
}

func TestUndoFailureLeavesRecordInPlace(t *testing.T) {
	reg := NewCommandRegistry()
	const flakyId CommandId = 3
	require.NoError(t, reg.Register(flakyId, acceptsCounterDomain,
		func(state *State, args *rdx.ArgMap, result *Result) error {
			state.Payload.(*counterDomain).orders++
			return nil
		},
		func(state *State, args *rdx.ArgMap, result *Result) error {
			return ErrWillNotApply("revert always fails in this test")
		},
	))
	domain := &counterDomain{}
	state, err := NewState(1, reg, domain, nil)
	require.NoError(t, err)

	_, err = state.Run(NewCommandBase(flakyId), true)
	require.NoError(t, err)

	err = state.Undo()
	require.Error(t, err)
	assert.True(t, state.CanUndo(), "record must remain in the undo deque after a failed revert")
	assert.False(t, state.CanRedo())
}

func TestUnwrappedApplyErrorIsNormalizedToCommandError(t *testing.T) {
	reg := NewCommandRegistry()
	const rawErrId CommandId = 4
	require.NoError(t, reg.Register(rawErrId, acceptsCounterDomain,
		func(state *State, args *rdx.ArgMap, result *Result) error {
			return errors.New("boom")
		},
		placeOrderRevert,
	))
	state, err := NewState(1, reg, &counterDomain{}, nil)
	require.NoError(t, err)

	_, err = state.Run(NewCommandBase(rawErrId), true)
	require.Error(t, err)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, KindWillNotApply, cmdErr.Kind)
	assert.Contains(t, cmdErr.Error(), "boom")
}

func TestHistorySnapshotIsIndependentCopy(t *testing.T) {
	reg := newCounterRegistry(t)
	domain := &counterDomain{}
	state, err := NewState(1, reg, domain, nil)
	require.NoError(t, err)

	_, err = state.Run(newPlaceOrderCommand(), true)
	require.NoError(t, err)

	hist := state.History()
	require.Len(t, hist, 1)
	hist[0].Id = 999
	assert.Equal(t, placeOrderId, state.History()[0].Id)
}

func TestDefaultLoggerIsUsedWhenNoneProvided(t *testing.T) {
	reg := newCounterRegistry(t)
	state, err := NewState(1, reg, &counterDomain{}, nil)
	require.NoError(t, err)
	_, ok := state.logger.(*utils.DefaultLogger)
	assert.True(t, ok, "a nil logger must be replaced by a *utils.DefaultLogger")
}
