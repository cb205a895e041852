package request

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/cubahno/restdoc/pkg/constant"
)

// Attribute names recognized in a tag.
const (
	AttributeBodyURI = "body_uri"
	AttributeMethod  = "method"
	AttributeQuery   = "query"
	AttributeService = "service"
	AttributeType    = "type"
)

// attributePattern matches name="value" pairs. Values cannot contain whitespace.
var attributePattern = regexp.MustCompile(`\w+="\S*"`)

// Parse reads the attributes of a tag, e.g.
//
//	service="ts" method="test" type="POST" query="par1=1&par2=2" body_uri="/ts/test2?par3=3"
//
// Attributes may appear in any order; the last occurrence of a duplicate wins.
// Unknown attribute names are ignored. Parts of a value enclosed in [] are constant
// references (<type-path>#<member>) and are replaced using resolver.
// Parse returns nil and no error when raw contains no attributes at all.
func Parse(raw string, resolver constant.Resolver) (*Spec, error) {
	matches := attributePattern.FindAllString(raw, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	spec := &Spec{}
	for _, match := range matches {
		name, quoted, _ := strings.Cut(match, "=")
		value, err := resolveValue(quoted, resolver)
		if err != nil {
			return nil, err
		}

		switch name {
		case AttributeBodyURI:
			spec.BodyURI = value
		case AttributeMethod:
			spec.Method = value
		case AttributeQuery:
			spec.Query = value
		case AttributeService:
			spec.Service = value
		case AttributeType:
			if value == "" {
				spec.Verb = VerbUnset
				continue
			}
			verb, err := ParseVerb(value)
			if err != nil {
				return nil, err
			}
			spec.Verb = verb
		default:
			slog.Debug("Ignoring unknown attribute", "name", name)
		}
	}

	return spec, nil
}

// resolveValue strips the surrounding quotes and expands constant references.
// A blank value is returned as "".
func resolveValue(quoted string, resolver constant.Resolver) (string, error) {
	value := strings.TrimPrefix(quoted, `"`)
	value = strings.TrimSuffix(value, `"`)
	if isBlank(value) {
		return "", nil
	}

	return Expand(value, resolver)
}

// Expand replaces every [path] in value by the text of the constant it references.
// Characters outside brackets are copied verbatim.
func Expand(value string, resolver constant.Resolver) (string, error) {
	if !strings.ContainsAny(value, "[]") {
		return value, nil
	}

	var out, ref strings.Builder
	inBrackets := false
	for _, c := range value {
		switch {
		case c == '[':
			if inBrackets {
				return "", fmt.Errorf("%w: nested reference in %q", ErrBadValue, value)
			}
			inBrackets = true
		case c == ']':
			if !inBrackets {
				return "", fmt.Errorf("%w: unexpected ] in %q", ErrBadValue, value)
			}
			inBrackets = false

			if resolver == nil {
				return "", fmt.Errorf("%w: no constants available for %q", constant.ErrBadReference, ref.String())
			}
			resolved, err := resolver.Resolve(ref.String())
			if err != nil {
				return "", err
			}
			out.WriteString(resolved)
			ref.Reset()
		case inBrackets:
			ref.WriteRune(c)
		default:
			out.WriteRune(c)
		}
	}

	if inBrackets {
		return "", fmt.Errorf("%w: unterminated [ in %q", ErrBadValue, value)
	}

	return out.String(), nil
}
