package regexcell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndMatch(t *testing.T) {
	c, err := New(`^Cisco.*`)
	require.NoError(t, err)
	assert.True(t, c.MatchString("Cisco IOS Software"))
	assert.False(t, c.MatchString("Juniper"))
	assert.Equal(t, `^Cisco.*`, c.Source())
}

func TestNewInvalidPattern(t *testing.T) {
	_, err := New(`(unclosed`)
	require.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	orig, err := New(`^foo$`)
	require.NoError(t, err)

	clone, err := orig.Clone()
	require.NoError(t, err)

	assert.Equal(t, orig.Source(), clone.Source())
	assert.True(t, clone.MatchString("foo"))
}

func TestZeroValueIsInvalid(t *testing.T) {
	var c Cell
	assert.False(t, c.Valid())
	assert.False(t, c.MatchString("anything"))
}
