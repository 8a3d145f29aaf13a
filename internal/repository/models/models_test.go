package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice_Value(t *testing.T) {
	val, err := StringSlice{"go", "backend"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["go","backend"]`, val)

	val, err = StringSlice(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", val)
}

func TestStringSlice_Scan(t *testing.T) {
	var s StringSlice
	require.NoError(t, s.Scan([]byte(`["python","data"]`)))
	assert.Equal(t, StringSlice{"python", "data"}, s)

	require.NoError(t, s.Scan("null"))
	assert.Empty(t, s)

	require.NoError(t, s.Scan(nil))
	assert.Empty(t, s)

	assert.Error(t, s.Scan(42))
}

func TestIntSlice_RoundTrip(t *testing.T) {
	val, err := IntSlice{0, 3, -1}.Value()
	require.NoError(t, err)

	var s IntSlice
	require.NoError(t, s.Scan(val))
	assert.Equal(t, IntSlice{0, 3, -1}, s)
}

func TestJSONText_Scan(t *testing.T) {
	var j JSONText
	require.NoError(t, j.Scan([]byte(`{"question":"Q?"}`)))
	assert.JSONEq(t, `{"question":"Q?"}`, string(j))

	require.NoError(t, j.Scan(nil))
	assert.Nil(t, j)
}
