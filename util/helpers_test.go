package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("17.0.2"))

	assert.False(t, IsNotEmpty(" "))
	assert.True(t, IsNotEmpty("temurin"))
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.yml")
	assert.False(t, FileExists(path))

	require.NoError(t, os.WriteFile(path, []byte("rules: []"), 0o600))
	assert.True(t, FileExists(path))
}
