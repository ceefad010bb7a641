package apikitgen

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/broady/apikit"
)

var validate = validator.New()

// Manifest is the declarative input to the generator: a package name and a
// list of services whose method declarations become typed client methods.
type Manifest struct {
	// Package is the Go package name for generated files.
	Package string `json:"package" validate:"required"`
	// Services declares one client type each.
	Services []Service `json:"services" validate:"required,min=1,dive"`
}

// Service declares one generated client type.
type Service struct {
	// Name becomes the <Name>Client type. Must be an exported identifier.
	Name string `json:"name" validate:"required"`
	// BaseURL is prefixed to every method's URL template.
	BaseURL string `json:"base_url,omitempty"`
	// Bare emits only the client struct and factories, no methods: the
	// batteries-included starting point a consumer extends with hooks.
	Bare bool `json:"bare,omitempty"`
	// Methods declares the typed calls.
	Methods []Method `json:"methods,omitempty" validate:"dive"`
}

// Method declares one endpoint: a verb, a URL template referencing declared
// parameters by name, an optional body payload (always the first parameter
// of the generated method), and a result kind.
type Method struct {
	Name string `json:"name" validate:"required"`
	Verb string `json:"verb" validate:"required,oneof=GET POST PUT PATCH DELETE HEAD OPTIONS"`
	URL  string `json:"url" validate:"required"`

	// Body is the body kind: "json", "form", or "multipart". Empty means no
	// body. BodyType is the Go type of the payload parameter; required for
	// json and form, forbidden otherwise (multipart payloads are always
	// apikit.MultipartForm).
	Body     string `json:"body,omitempty" validate:"omitempty,oneof=json form multipart"`
	BodyType string `json:"body_type,omitempty"`

	// Result is "status", "text", "bytes", or "json". ResultType is the Go
	// type to decode into; required for json, forbidden otherwise.
	Result     string `json:"result" validate:"required,oneof=status text bytes json"`
	ResultType string `json:"result_type,omitempty"`

	// Params are the non-body parameters, in signature order.
	Params []Param `json:"params,omitempty" validate:"dive"`
}

// Param declares one non-body method parameter. A query param is encoded
// into the URL query string instead of a template placeholder.
type Param struct {
	Name  string `json:"name" validate:"required"`
	Type  string `json:"type" validate:"required"`
	Query bool   `json:"query,omitempty"`
}

// LoadManifest reads and validates a JSON manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

// reserved are identifiers the generated method signatures already use.
var reserved = map[string]bool{"ctx": true, "req": true, "c": true}

// Validate rejects invalid declarations at generation time: tag-level checks
// via validator, then the structural rules (body parameter and body kind
// must be declared together, every template placeholder must name a declared
// parameter, result type present exactly when the result kind is json).
func (m *Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return err
	}
	if !isGoIdent(m.Package) || unicode.IsUpper(rune(m.Package[0])) {
		return fmt.Errorf("package %q is not a valid package name", m.Package)
	}

	seen := map[string]bool{}
	for _, svc := range m.Services {
		if !isExportedIdent(svc.Name) {
			return fmt.Errorf("service %q: name must be an exported Go identifier", svc.Name)
		}
		if seen[svc.Name] {
			return fmt.Errorf("service %q declared twice", svc.Name)
		}
		seen[svc.Name] = true
		if svc.Bare && len(svc.Methods) > 0 {
			return fmt.Errorf("service %q: bare services declare no methods", svc.Name)
		}
		for i := range svc.Methods {
			if err := svc.Methods[i].validate(svc); err != nil {
				return fmt.Errorf("service %q: %w", svc.Name, err)
			}
		}
	}
	return nil
}

func (d *Method) validate(svc Service) error {
	if !isExportedIdent(d.Name) {
		return fmt.Errorf("method %q: name must be an exported Go identifier", d.Name)
	}

	switch d.Body {
	case "":
		if d.BodyType != "" {
			return fmt.Errorf("method %q: body parameter %q declared without a body kind", d.Name, d.BodyType)
		}
	case "json", "form":
		if d.BodyType == "" {
			return fmt.Errorf("method %q: body kind %q requires body_type", d.Name, d.Body)
		}
	case "multipart":
		if d.BodyType != "" {
			return fmt.Errorf("method %q: multipart payloads are always apikit.MultipartForm; drop body_type", d.Name)
		}
	}

	if d.Result == "json" {
		if d.ResultType == "" {
			return fmt.Errorf("method %q: result kind json requires result_type", d.Name)
		}
	} else if d.ResultType != "" {
		return fmt.Errorf("method %q: result_type is only valid with result kind json", d.Name)
	}

	declared := map[string]bool{}
	queries := 0
	for _, p := range d.Params {
		if !isGoIdent(p.Name) || reserved[p.Name] {
			return fmt.Errorf("method %q: parameter %q is not a usable identifier", d.Name, p.Name)
		}
		if declared[p.Name] {
			return fmt.Errorf("method %q: parameter %q declared twice", d.Name, p.Name)
		}
		declared[p.Name] = true
		if p.Query {
			queries++
		}
	}
	if queries > 1 {
		return fmt.Errorf("method %q: at most one query parameter", d.Name)
	}

	tmpl, err := apikit.ParseTemplate(svc.BaseURL + d.URL)
	if err != nil {
		return fmt.Errorf("method %q: %w", d.Name, err)
	}
	for _, name := range tmpl.ParamNames() {
		if !declared[name] {
			return fmt.Errorf("method %q: URL placeholder {%s} does not match any declared parameter", d.Name, name)
		}
		if name == d.queryParam() {
			return fmt.Errorf("method %q: parameter %q cannot be both a URL placeholder and the query parameter", d.Name, name)
		}
	}
	return nil
}

// queryParam returns the name of the query parameter, if declared.
func (d *Method) queryParam() string {
	for _, p := range d.Params {
		if p.Query {
			return p.Name
		}
	}
	return ""
}

func isGoIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return !strings.Contains(s, " ")
}

func isExportedIdent(s string) bool {
	return isGoIdent(s) && unicode.IsUpper(rune(s[0]))
}
