package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublicRef(t *testing.T) {
	ref := NewPublicRef()
	assert.Len(t, ref, ShortIDLen)
	assert.Equal(t, strings.ToUpper(ref), ref)
	assert.NotContains(t, ref, "-")
}

func TestNewULID(t *testing.T) {
	a, err := NewULID()
	require.NoError(t, err)
	b, err := NewULID()
	require.NoError(t, err)

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}
