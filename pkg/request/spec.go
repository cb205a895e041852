package request

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadSpec  = errors.New("invalid request spec")
	ErrBadType  = errors.New("invalid request type")
	ErrBadValue = errors.New("invalid attribute value")
)

// Verb is the HTTP verb of the primary request.
type Verb int

const (
	VerbUnset Verb = iota
	VerbGet
	VerbPost
	VerbDelete
)

var verbNames = map[Verb]string{
	VerbGet:    "GET",
	VerbPost:   "POST",
	VerbDelete: "DELETE",
}

func (v Verb) String() string {
	if name, ok := verbNames[v]; ok {
		return name
	}
	return ""
}

// ParseVerb maps s case-insensitively to a Verb.
func ParseVerb(s string) (Verb, error) {
	for v, name := range verbNames {
		if strings.EqualFold(name, s) {
			return v, nil
		}
	}
	return VerbUnset, fmt.Errorf("%w: unknown type %q", ErrBadType, s)
}

// Spec describes one REST call.
// Service and Method are the first and second path segments after the base URI.
// Query is the raw query string without the leading ?.
// BodyURI is the path, relative to the base URI, of the document used as the POST body.
// It is consulted only for POST requests.
type Spec struct {
	Service string
	Method  string
	Verb    Verb
	Query   string
	BodyURI string
}

// Validate checks that the spec describes a callable request.
func (s *Spec) Validate() error {
	if s.Verb == VerbUnset {
		return fmt.Errorf("%w: type is missing", ErrBadType)
	}
	if isBlank(s.Service) || isBlank(s.Method) {
		return fmt.Errorf("%w: invalid service %q or method %q", ErrBadSpec, s.Service, s.Method)
	}
	return nil
}

// URI returns base + service + "/" + method, followed by "?" + query when a query is set.
// The base is treated as a plain prefix and nothing is escaped.
func (s *Spec) URI(base string) (string, error) {
	if isBlank(s.Service) || isBlank(s.Method) {
		return "", fmt.Errorf("%w: invalid service %q or method %q", ErrBadSpec, s.Service, s.Method)
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString(s.Service)
	b.WriteByte('/')
	b.WriteString(s.Method)
	if !isBlank(s.Query) {
		b.WriteByte('?')
		b.WriteString(s.Query)
	}
	return b.String(), nil
}

// BodyURL returns the absolute location of the body document, or "" when no body is requested.
func (s *Spec) BodyURL(base string) string {
	if s.Verb != VerbPost || isBlank(s.BodyURI) {
		return ""
	}
	return base + s.BodyURI
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
