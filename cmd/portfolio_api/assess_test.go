package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessInput_PositionalArgument(t *testing.T) {
	got, err := assessInput([]string{"https://example.com/jobs/1"}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/jobs/1", got)
}

func TestAssessInput_ArgumentAndFileConflict(t *testing.T) {
	_, err := assessInput([]string{"some text"}, "job.txt", nil)
	assert.Error(t, err)
}

func TestAssessInput_NoSource(t *testing.T) {
	_, err := assessInput(nil, "", nil)
	assert.Error(t, err)
}

func TestAssessInput_Stdin(t *testing.T) {
	got, err := assessInput(nil, "-", strings.NewReader("  pasted description \n"))
	require.NoError(t, err)
	assert.Equal(t, "pasted description", got)
}

func TestAssessInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("file contents"), 0o644))

	got, err := assessInput(nil, path, nil)
	require.NoError(t, err)
	assert.Equal(t, "file contents", got)
}
