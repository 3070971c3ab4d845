package octocore

import (
	"testing"

	"github.com/drpcorg/octocore/rdx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopApply(state *State, args *rdx.ArgMap, result *Result) error  { return nil }
func noopRevert(state *State, args *rdx.ArgMap, result *Result) error { return nil }
func acceptAny(payload any) bool                                      { return true }

func TestRegisterDuplicateIdFails(t *testing.T) {
	reg := NewCommandRegistry()
	require.NoError(t, reg.Register(1, acceptAny, noopApply, noopRevert))

	err := reg.Register(1, acceptAny, noopApply, noopRevert)
	require.Error(t, err)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, KindStateError, cmdErr.Kind)
}

func TestRegisterNegativeIdRejected(t *testing.T) {
	reg := NewCommandRegistry()
	err := reg.Register(-1, acceptAny, noopApply, noopRevert)
	require.Error(t, err)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, KindStateError, cmdErr.Kind)
}

func TestRegisterDefaultCommandsStopsOnFirstError(t *testing.T) {
	reg := NewCommandRegistry()
	err := RegisterDefaultCommands(reg,
		RegistryEntry{Id: 1, Accepts: acceptAny, Apply: noopApply, Revert: noopRevert},
		RegistryEntry{Id: 1, Accepts: acceptAny, Apply: noopApply, Revert: noopRevert},
		RegistryEntry{Id: 2, Accepts: acceptAny, Apply: noopApply, Revert: noopRevert},
	)
	require.Error(t, err)
	_, ok := reg.lookup(2)
	assert.False(t, ok, "registration after the duplicate must not have run")
}
