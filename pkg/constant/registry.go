package constant

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// PathSeparator separates the type path from the member name in a reference,
// e.g. com.example.Service#NAME.
const PathSeparator = "#"

var (
	ErrBadReference = errors.New("bad constant reference")
)

// Constant is a registered compile-time constant.
// Value is the natural string rendering of the constant.
// Literal is the source-like rendering, strings are wrapped in double quotes.
type Constant struct {
	Value   string
	Literal string
}

// NewString creates a string constant.
func NewString(value string) Constant {
	return Constant{Value: value, Literal: `"` + value + `"`}
}

// NewValue creates a non-string constant, e.g. a number or a boolean.
func NewValue(value string) Constant {
	return Constant{Value: value, Literal: value}
}

// Resolver resolves a reference of the form <type-path>#<member> into text.
type Resolver interface {
	Resolve(path string) (string, error)
}

// Registry holds constants keyed by type path and member name.
type Registry struct {
	mu    sync.RWMutex
	types map[string]map[string]Constant
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]map[string]Constant),
	}
}

// Set registers a constant, replacing any previous value.
func (r *Registry) Set(typePath, member string, c Constant) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.types[typePath]
	if !ok {
		members = make(map[string]Constant)
		r.types[typePath] = members
	}

	if _, exists := members[member]; exists {
		slog.Debug("Constant already registered, overwriting", "type", typePath, "member", member)
	}
	members[member] = c
}

// Lookup returns the constant referenced by path.
func (r *Registry) Lookup(path string) (Constant, error) {
	typePath, member, err := SplitPath(path)
	if err != nil {
		return Constant{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.types[typePath]
	if !ok {
		return Constant{}, fmt.Errorf("%w: unknown type %q in %q", ErrBadReference, typePath, path)
	}

	c, ok := members[member]
	if !ok {
		return Constant{}, fmt.Errorf("%w: unknown member %q in %q", ErrBadReference, member, path)
	}

	return c, nil
}

// Resolve returns the string value of the constant referenced by path.
func (r *Registry) Resolve(path string) (string, error) {
	c, err := r.Lookup(path)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// Len returns the number of registered constants.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, members := range r.types {
		n += len(members)
	}
	return n
}

// Paths returns all registered references, sorted.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]string, 0)
	for typePath, members := range r.types {
		for member := range members {
			res = append(res, typePath+PathSeparator+member)
		}
	}
	sort.Strings(res)
	return res
}

// SplitPath splits a reference into its type path and member name.
// Exactly two non-empty parts are required.
func SplitPath(path string) (string, string, error) {
	typePath, member, found := strings.Cut(path, PathSeparator)
	if !found || typePath == "" || member == "" || strings.Contains(member, PathSeparator) {
		return "", "", fmt.Errorf("%w: invalid path %q", ErrBadReference, path)
	}
	return typePath, member, nil
}
