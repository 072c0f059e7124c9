package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProjectRoot(t *testing.T) {
	root, err := GetProjectRoot()
	require.NoError(t, err)
	assert.NotEmpty(t, root)
	assert.True(t, FileExists(filepath.Join(root, "go.mod")))
}

func TestGetTestDataDir(t *testing.T) {
	testDataDir := GetTestDataDir(t)
	assert.NotEmpty(t, testDataDir)
	assert.Contains(t, testDataDir, "testdata")
}

func TestFileExists(t *testing.T) {
	assert.False(t, FileExists("/non/existent/file"))
}
