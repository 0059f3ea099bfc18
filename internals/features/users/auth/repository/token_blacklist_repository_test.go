package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashToken(t *testing.T) {
	a := hashToken("eyJ.abc.def", "s1")
	assert.Len(t, a, 64)
	assert.Equal(t, a, hashToken("eyJ.abc.def", "s1"))
	assert.NotEqual(t, a, hashToken("eyJ.abc.def", "s2"))
	assert.NotEqual(t, a, hashToken("eyJ.abc.xyz", "s1"))
	assert.NotContains(t, a, "eyJ")
}
