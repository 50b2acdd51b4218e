package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	seen := map[string]bool{}

	for range 50 {
		id, err := GenerateID()
		require.NoError(t, err)

		assert.Len(t, id, idLength)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(idAlphabet, r), "caractere inesperado %q", r)
		}
		seen[id] = true
	}

	assert.Greater(t, len(seen), 1)
}
