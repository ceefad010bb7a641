package apikit

import (
	"fmt"
	"net/url"
	"strings"
)

// Params supplies values for a template's named placeholders at call time.
// Values are formatted with fmt.Sprint and path-escaped.
type Params map[string]any

// Template is a URL template with named {placeholder} segments, parsed once
// at definition time and shared by every invocation of the endpoint.
type Template struct {
	raw      string
	segments []segment
	params   []string
}

// segment is either a literal or a placeholder reference.
type segment struct {
	literal string
	param   string
}

// ParseTemplate parses a URL template. Placeholders are `{name}` where name
// is a non-empty identifier; braces do not nest. An unterminated or empty
// placeholder is a definition-time error.
func ParseTemplate(raw string) (*Template, error) {
	t := &Template{raw: raw}
	rest := raw
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if strings.IndexByte(rest, '}') >= 0 {
				return nil, fmt.Errorf("unmatched '}' in template %q", raw)
			}
			if rest != "" {
				t.segments = append(t.segments, segment{literal: rest})
			}
			return t, nil
		}
		if open > 0 {
			t.segments = append(t.segments, segment{literal: rest[:open]})
		}
		rest = rest[open+1:]
		close := strings.IndexByte(rest, '}')
		if close < 0 {
			return nil, fmt.Errorf("unterminated placeholder in template %q", raw)
		}
		name := rest[:close]
		if name == "" || strings.ContainsAny(name, "{/") {
			return nil, fmt.Errorf("invalid placeholder %q in template %q", name, raw)
		}
		t.segments = append(t.segments, segment{param: name})
		t.params = append(t.params, name)
		rest = rest[close+1:]
	}
}

// MustTemplate is ParseTemplate that panics on error. Intended for
// package-level endpoint definitions.
func MustTemplate(raw string) *Template {
	t, err := ParseTemplate(raw)
	if err != nil {
		panic("apikit: " + err.Error())
	}
	return t
}

// String returns the raw template.
func (t *Template) String() string {
	return t.raw
}

// ParamNames returns the placeholder names in order of appearance.
func (t *Template) ParamNames() []string {
	return append([]string(nil), t.params...)
}

// Expand substitutes params into the template. Every placeholder must have a
// value; extra params are ignored (they may serve the query encoder).
func (t *Template) Expand(params Params) (string, error) {
	var b strings.Builder
	for _, s := range t.segments {
		if s.param == "" {
			b.WriteString(s.literal)
			continue
		}
		v, ok := params[s.param]
		if !ok {
			return "", fmt.Errorf("missing value for URL parameter %q in %q", s.param, t.raw)
		}
		b.WriteString(url.PathEscape(fmt.Sprint(v)))
	}
	return b.String(), nil
}
