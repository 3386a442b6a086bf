package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterStoreAddAndLookup(t *testing.T) {
	changes := 0
	s := NewParameterStore(func() { changes++ })

	s.Add("k", 0.064)
	s.Add("F", 0.035)
	s.Add("k", 1)

	v, err := s.ValueByName("k")
	require.NoError(t, err)
	assert.Equal(t, 0.064, v, "first match wins")
	assert.True(t, s.Contains("F"))
	assert.False(t, s.Contains("D_a"))
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, "F", s.NameAt(1))
	assert.Equal(t, 0.035, s.ValueAt(1))
	assert.Equal(t, 3, changes)

	_, err = s.ValueByName("D_a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParameterStoreMutations(t *testing.T) {
	changes := 0
	s := NewParameterStore(func() { changes++ })
	s.Add("a", 1)
	s.Add("b", 2)
	s.Add("c", 3)

	s.DeleteAt(1)
	assert.Equal(t, []Parameter{{"a", 1}, {"c", 3}}, s.All())

	s.RenameAt(1, "timestep")
	s.SetValueAt(0, 0.5)
	assert.Equal(t, []Parameter{{"a", 0.5}, {"timestep", 3}}, s.All())

	s.Replace([]Parameter{{"x", 9}})
	assert.Equal(t, 1, s.Count())

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 8, changes)
}

func TestParameterStoreAllIsCopy(t *testing.T) {
	s := NewParameterStore(nil)
	s.Add("a", 1)
	all := s.All()
	all[0].Value = 42
	assert.Equal(t, 1.0, s.ValueAt(0))
}

func TestParameterStoreDeleteOutOfRangePanics(t *testing.T) {
	s := NewParameterStore(nil)
	assert.Panics(t, func() { s.DeleteAt(0) })
}
