package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsDeterministicForSeed(t *testing.T) {
	a, err := New(7)
	require.NoError(t, err)
	b, err := New(7)
	require.NoError(t, err)

	assert.Equal(t, a.Perm(16), b.Perm(16))
}

func TestNewWithoutSeed(t *testing.T) {
	r, err := New(0)
	require.NoError(t, err)
	assert.NotNil(t, r)
}
