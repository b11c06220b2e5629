package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOutputPath(t *testing.T) {
	assert.Equal(t, "images/pipeline_condensed.cast", getOutputPath("images/pipeline.cast"))
	assert.Equal(t, "session_condensed.cast", getOutputPath("session"))
}

func TestGetFiles_SingleFile(t *testing.T) {
	files, err := getFiles("demo.cast", "", false)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "demo_condensed.cast", files[0].Output)

	files, err = getFiles("demo.cast", "short.cast", false)
	require.NoError(t, err)
	assert.Equal(t, "short.cast", files[0].Output)
}

func TestGetFiles_Directory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.cast", "b.cast", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.cast"), 0755))

	out := filepath.Join(dir, "out")
	files, err := getFiles(dir, out, true)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.cast"), files[0].Input)
	assert.Equal(t, filepath.Join(out, "a_condensed.cast"), files[0].Output)
	assert.Equal(t, filepath.Join(out, "b_condensed.cast"), files[1].Output)
}

func TestGetFiles_EmptyDirectory(t *testing.T) {
	_, err := getFiles(t.TempDir(), "", true)
	assert.Error(t, err)
}

func TestGetFiles_SkipsCondensedOutputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.cast", "a_condensed.cast"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0644))
	}

	files, err := getFiles(dir, dir, true)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "a.cast"), files[0].Input)
	assert.Equal(t, filepath.Join(dir, "a_condensed.cast"), files[0].Output)
}
