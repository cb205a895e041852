package files

import (
	"os"
	"path/filepath"
	"testing"

	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFile(t *testing.T) {
	assert := assert2.New(t)

	t.Run("happy-path", func(t *testing.T) {
		contents := []byte("test file contents")
		filePath := filepath.Join(t.TempDir(), "a", "b", "c", "test.txt")
		err := SaveFile(filePath, contents)
		assert.NoError(err)

		savedContent, err := os.ReadFile(filePath)
		assert.NoError(err)
		assert.Equal(contents, savedContent)
	})

	t.Run("parent-is-a-file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), nil, 0o644))

		err := SaveFile(filepath.Join(dir, "a", "test.txt"), []byte(""))
		assert.Error(err)
	})

	t.Run("empty-content", func(t *testing.T) {
		filePath := filepath.Join(t.TempDir(), "empty.txt")
		err := SaveFile(filePath, []byte(""))
		assert.NoError(err)

		content, err := os.ReadFile(filePath)
		assert.NoError(err)
		assert.Equal([]byte(""), content)
	})

	t.Run("overwrites-existing-file", func(t *testing.T) {
		filePath := filepath.Join(t.TempDir(), "overwrite.txt")

		assert.NoError(SaveFile(filePath, []byte("initial content")))
		assert.NoError(SaveFile(filePath, []byte("updated")))

		content, err := os.ReadFile(filePath)
		assert.NoError(err)
		assert.Equal("updated", string(content))
	})
}

func TestCopyFile(t *testing.T) {
	assert := assert2.New(t)

	t.Run("happy-path", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.sh")
		require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0o755))

		dest := filepath.Join(dir, "out", "nested", "dest.sh")
		assert.NoError(CopyFile(src, dest))

		content, err := os.ReadFile(dest)
		assert.NoError(err)
		assert.Equal("#!/bin/sh\n", string(content))

		info, err := os.Stat(dest)
		assert.NoError(err)
		assert.Equal(os.FileMode(0o755), info.Mode().Perm())
	})

	t.Run("invalid-source", func(t *testing.T) {
		dir := t.TempDir()
		err := CopyFile(filepath.Join(dir, "missing"), filepath.Join(dir, "dest"))
		assert.Error(err)
	})
}
