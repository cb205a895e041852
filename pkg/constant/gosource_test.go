package constant

import (
	"os"
	"path/filepath"
	"testing"

	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const servicePackageSource = `package svc

type Kind string

const (
	KindHealth Kind = "health"
	KindList   Kind = "list"
)

const (
	Name        = "health"
	Limit       = 2 * 5
	Ratio       = 1.5
	Enabled     = Limit > 3
	joined      = Name + "/" + "ping"
)

const (
	First = iota + 1
	Second
)

var notAConstant = "ignored"
`

func TestRegistry_LoadPackage(t *testing.T) {
	assert := assert2.New(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "svc.go"), []byte(servicePackageSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "svc_test.go"), []byte("package svc\n\nconst TestOnly = 1\n"), 0o644))

	r := NewRegistry()
	require.NoError(t, r.LoadPackage(dir, "example.com/svc"))

	cases := map[string]string{
		"example.com/svc#Name":            "health",
		"example.com/svc#Limit":           "10",
		"example.com/svc#Ratio":           "1.5",
		"example.com/svc#Enabled":         "true",
		"example.com/svc#joined":          "health/ping",
		"example.com/svc#Second":          "2",
		"example.com/svc#KindList":        "list",
		"example.com/svc.Kind#KindHealth": "health",
		"example.com/svc.Kind#KindList":   "list",
	}
	for path, expected := range cases {
		res, err := r.Resolve(path)
		assert.NoError(err, path)
		assert.Equal(expected, res, path)
	}

	c, err := r.Lookup("example.com/svc#Name")
	assert.NoError(err)
	assert.Equal(`"health"`, c.Literal)

	_, err = r.Resolve("example.com/svc#notAConstant")
	assert.ErrorIs(err, ErrBadReference)

	_, err = r.Resolve("example.com/svc#TestOnly")
	assert.ErrorIs(err, ErrBadReference)
}

func TestRegistry_LoadPackage_Errors(t *testing.T) {
	assert := assert2.New(t)

	t.Run("empty-dir", func(t *testing.T) {
		err := NewRegistry().LoadPackage(t.TempDir(), "example.com/empty")
		assert.ErrorIs(err, ErrNoGoFiles)
	})

	t.Run("missing-dir", func(t *testing.T) {
		err := NewRegistry().LoadPackage(filepath.Join(t.TempDir(), "missing"), "example.com/missing")
		assert.Error(err)
	})

	t.Run("syntax-error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.go"), []byte("package bad\n\nconst ="), 0o644))
		assert.Error(NewRegistry().LoadPackage(dir, "example.com/bad"))
	})
}
