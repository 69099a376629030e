package uuid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNanoIDGenerator(t *testing.T) {
	gen := NewNanoIDGenerator(16)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := gen.Generate()
		require.NoError(t, err)
		assert.Len(t, id, 16)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(URLSafeAlphabet, r))
		}
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestNewNanoIDGenerator_InvalidLength(t *testing.T) {
	assert.Panics(t, func() { NewNanoIDGenerator(0) })
}
