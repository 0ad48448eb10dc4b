package phrase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Format(t *testing.T) {
	p, err := New("Robuddie")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(p, "Robuddie-"))
	suffix := strings.TrimPrefix(p, "Robuddie-")
	assert.Len(t, suffix, suffixLen)
	for _, c := range suffix {
		assert.Contains(t, alphabet, string(c))
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		p, err := New("Robuddie")
		require.NoError(t, err)
		assert.False(t, seen[p], "duplicate phrase %s", p)
		seen[p] = true
	}
}
