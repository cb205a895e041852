package constant

import (
	"testing"

	assert2 "github.com/stretchr/testify/assert"
)

func TestRegistry_Resolve(t *testing.T) {
	assert := assert2.New(t)

	r := NewRegistry()
	r.Set("com.x.Svc", "NAME", NewString("health"))
	r.Set("com.x.Svc", "PORT", NewValue("8080"))

	t.Run("string", func(t *testing.T) {
		res, err := r.Resolve("com.x.Svc#NAME")
		assert.NoError(err)
		assert.Equal("health", res)
	})

	t.Run("number", func(t *testing.T) {
		res, err := r.Resolve("com.x.Svc#PORT")
		assert.NoError(err)
		assert.Equal("8080", res)
	})

	t.Run("unknown-type", func(t *testing.T) {
		_, err := r.Resolve("com.x.Other#NAME")
		assert.ErrorIs(err, ErrBadReference)
	})

	t.Run("unknown-member", func(t *testing.T) {
		_, err := r.Resolve("com.x.Svc#MISSING")
		assert.ErrorIs(err, ErrBadReference)
	})

	t.Run("bad-paths", func(t *testing.T) {
		for _, path := range []string{"", "#", "com.x.Svc", "com.x.Svc#", "#NAME", "com.x.Svc#NAME#X"} {
			_, err := r.Resolve(path)
			assert.ErrorIs(err, ErrBadReference, path)
		}
	})
}

func TestRegistry_Lookup(t *testing.T) {
	assert := assert2.New(t)

	r := NewRegistry()
	r.Set("a.B", "S", NewString("text"))
	r.Set("a.B", "S", NewString("replaced"))

	c, err := r.Lookup("a.B#S")
	assert.NoError(err)
	assert.Equal("replaced", c.Value)
	assert.Equal(`"replaced"`, c.Literal)
	assert.Equal(1, r.Len())
}

func TestRegistry_Paths(t *testing.T) {
	assert := assert2.New(t)

	r := NewRegistry()
	r.Set("b.T", "Y", NewValue("1"))
	r.Set("a.T", "X", NewValue("2"))
	r.Set("b.T", "A", NewValue("3"))

	assert.Equal([]string{"a.T#X", "b.T#A", "b.T#Y"}, r.Paths())
}

func TestSplitPath(t *testing.T) {
	assert := assert2.New(t)

	typePath, member, err := SplitPath("github.com/x/svc.Kind#Name")
	assert.NoError(err)
	assert.Equal("github.com/x/svc.Kind", typePath)
	assert.Equal("Name", member)
}
