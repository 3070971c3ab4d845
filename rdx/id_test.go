package rdx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeObjectIdLayout(t *testing.T) {
	id := MakeObjectId(10, 1)
	assert.EqualValues(t, 10, id.Session())
	assert.EqualValues(t, 1, id.Counter())

	id2 := MakeObjectId(10, 2)
	assert.Greater(t, id2, id)
}

func TestSessionIdValidBoundary(t *testing.T) {
	assert.True(t, MaxSessionId.Valid())
	assert.False(t, SessionId(1<<14).Valid())
}

func TestObjectIdsFromDistinctSessionsNeverCollide(t *testing.T) {
	a := MakeObjectId(1, 5)
	b := MakeObjectId(2, 5)
	assert.NotEqual(t, a, b)
}
