package seal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDeterministic(t *testing.T) {
	a := Compute("vault", "Seraphina", "guardian")
	b := Compute("vault", "Seraphina", "guardian")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestComputeFieldOrderMatters(t *testing.T) {
	a := Compute("vault", "Seraphina")
	b := Compute("Seraphina", "vault")
	assert.NotEqual(t, a, b)
}

func TestComputeSeparatorNotAmbiguous(t *testing.T) {
	// "ab" + "c" must not collide with "a" + "bc".
	a := Compute("ab", "c")
	b := Compute("a", "bc")
	assert.NotEqual(t, a, b)
}

func TestVerify(t *testing.T) {
	hash := Compute("vault", "Seraphina", "guardian")
	assert.True(t, Verify(hash, "vault", "Seraphina", "guardian"))
	assert.False(t, Verify(hash, "vault", "Seraphina", "usurper"))
	assert.False(t, Verify("", "vault", "Seraphina", "guardian"))
}

func TestShort(t *testing.T) {
	hash := Compute("vault", "Seraphina")
	short := Short(hash)
	require.Len(t, short, 16)
	assert.Equal(t, hash[:16], short)
}

func TestShortOnShortInput(t *testing.T) {
	assert.Equal(t, "abc", Short("abc"))
}
