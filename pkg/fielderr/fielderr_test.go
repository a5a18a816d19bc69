package fielderr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_FirstMessageWins(t *testing.T) {
	e := New()
	e.Add("dni", "must contain exactly 8 digits")
	e.Add("dni", "already registered")

	assert.Equal(t, "must contain exactly 8 digits", e["dni"])
}

func TestErr_NilWhenEmpty(t *testing.T) {
	e := New()
	assert.NoError(t, e.Err())

	e.Add("email", "is required")
	assert.Error(t, e.Err())
}

func TestError_SortedByField(t *testing.T) {
	e := New()
	e.Add("username", "is taken")
	e.Add("email", "is required")

	assert.Equal(t, "validation failed: email: is required; username: is taken", e.Error())
}

func TestMerge_KeepsExisting(t *testing.T) {
	e := New()
	e.Add("phone", "must have 9 digits")

	e.Merge(map[string]string{
		"phone": "other message",
		"dni":   "is required",
	})

	assert.Equal(t, "must have 9 digits", e["phone"])
	assert.Equal(t, "is required", e["dni"])
}

func TestAsErrors(t *testing.T) {
	e := New()
	e.Add("cmp", "already registered")

	fe, ok := AsErrors(e.Err())
	require.True(t, ok)
	assert.True(t, fe.Has("cmp"))

	_, ok = AsErrors(assert.AnError)
	assert.False(t, ok)
}
