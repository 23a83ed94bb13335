package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess_CarriesValue(t *testing.T) {
	r := Success(42)

	v, ok := r.Value()
	require.True(t, ok)
	assert.True(t, r.Ok())
	assert.Equal(t, 42, v)
	assert.Equal(t, KindNone, r.Kind())
	assert.Empty(t, r.Message())
	assert.NoError(t, r.Err())
}

func TestFailure_NeverCarriesValue(t *testing.T) {
	r := Failure[int](KindNotFound, "record 7 not found")

	v, ok := r.Value()
	assert.False(t, ok)
	assert.False(t, r.Ok())
	assert.Zero(t, v)
	assert.Equal(t, KindNotFound, r.Kind())
	assert.Equal(t, "record 7 not found", r.Message())

	var re *Error
	require.True(t, errors.As(r.Err(), &re))
	assert.Equal(t, KindNotFound, re.Kind)
}

func TestFailuref_Formats(t *testing.T) {
	r := Failuref[string](KindValidation, "distance %d is negative", -1)
	assert.Equal(t, "distance -1 is negative", r.Message())
}

func TestDone(t *testing.T) {
	assert.True(t, Done().Ok())
}

func TestMustValue_PanicsOnFailure(t *testing.T) {
	assert.Panics(t, func() { Failure[int](KindStorage, "x").MustValue() })
	assert.Equal(t, 3, Success(3).MustValue())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "forbidden", KindForbidden.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
