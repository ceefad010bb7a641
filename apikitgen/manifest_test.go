package apikitgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validManifest() *Manifest {
	return &Manifest{
		Package: "api",
		Services: []Service{{
			Name:    "Todos",
			BaseURL: "https://example.com",
			Methods: []Method{
				{
					Name:   "Get",
					Verb:   "GET",
					URL:    "/todos/{id}",
					Result: "json", ResultType: "Todo",
					Params: []Param{{Name: "id", Type: "int"}},
				},
				{
					Name:   "Create",
					Verb:   "POST",
					URL:    "/todos",
					Body:   "json",
					BodyType: "CreateTodo",
					Result: "json", ResultType: "Todo",
				},
				{
					Name:   "Delete",
					Verb:   "DELETE",
					URL:    "/todos/{id}",
					Result: "status",
					Params: []Param{{Name: "id", Type: "int"}},
				},
			},
		}},
	}
}

func TestManifestValid(t *testing.T) {
	if err := validManifest().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestManifestValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Manifest)
		wantMsg string
	}{
		{
			"missing package",
			func(m *Manifest) { m.Package = "" },
			"Package",
		},
		{
			"bad package name",
			func(m *Manifest) { m.Package = "My Package" },
			"not a valid package name",
		},
		{
			"no services",
			func(m *Manifest) { m.Services = nil },
			"Services",
		},
		{
			"unexported service name",
			func(m *Manifest) { m.Services[0].Name = "todos" },
			"exported Go identifier",
		},
		{
			"duplicate service",
			func(m *Manifest) { m.Services = append(m.Services, m.Services[0]) },
			"declared twice",
		},
		{
			"bare service with methods",
			func(m *Manifest) { m.Services[0].Bare = true },
			"bare services declare no methods",
		},
		{
			"bad verb",
			func(m *Manifest) { m.Services[0].Methods[0].Verb = "FETCH" },
			"Verb",
		},
		{
			"body type without body kind",
			func(m *Manifest) { m.Services[0].Methods[0].BodyType = "Todo" },
			"without a body kind",
		},
		{
			"body kind without body type",
			func(m *Manifest) { m.Services[0].Methods[1].BodyType = "" },
			"requires body_type",
		},
		{
			"multipart with body type",
			func(m *Manifest) {
				m.Services[0].Methods[1].Body = "multipart"
			},
			"drop body_type",
		},
		{
			"json result without result type",
			func(m *Manifest) { m.Services[0].Methods[0].ResultType = "" },
			"requires result_type",
		},
		{
			"result type on status result",
			func(m *Manifest) { m.Services[0].Methods[2].ResultType = "int" },
			"only valid with result kind json",
		},
		{
			"reserved parameter name",
			func(m *Manifest) { m.Services[0].Methods[0].Params[0].Name = "ctx" },
			"not a usable identifier",
		},
		{
			"duplicate parameter",
			func(m *Manifest) {
				m.Services[0].Methods[0].Params = append(m.Services[0].Methods[0].Params, Param{Name: "id", Type: "int"})
			},
			"declared twice",
		},
		{
			"two query parameters",
			func(m *Manifest) {
				m.Services[0].Methods[0].Params = append(m.Services[0].Methods[0].Params,
					Param{Name: "a", Type: "Opts", Query: true},
					Param{Name: "b", Type: "Opts", Query: true},
				)
			},
			"at most one query parameter",
		},
		{
			"query parameter as placeholder",
			func(m *Manifest) { m.Services[0].Methods[0].Params[0].Query = true },
			"cannot be both a URL placeholder and the query parameter",
		},
		{
			"undeclared placeholder",
			func(m *Manifest) { m.Services[0].Methods[0].Params = nil },
			"does not match any declared parameter",
		},
		{
			"malformed template",
			func(m *Manifest) { m.Services[0].Methods[0].URL = "/todos/{id" },
			"unterminated placeholder",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := validManifest()
			tc.mutate(m)
			err := m.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.json")
	content := `{
  "package": "api",
  "services": [{
    "name": "Ping",
    "methods": [{"name": "Check", "verb": "GET", "url": "https://example.com/ping", "result": "status"}]
  }]
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Package != "api" || len(m.Services) != 1 || m.Services[0].Methods[0].Name != "Check" {
		t.Errorf("unexpected manifest: %+v", m)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0644)
	if _, err := LoadManifest(bad); err == nil || !strings.Contains(err.Error(), "parsing manifest") {
		t.Errorf("expected parse error, got %v", err)
	}

	invalid := filepath.Join(dir, "invalid.json")
	os.WriteFile(invalid, []byte(`{"package": "api", "services": []}`), 0644)
	if _, err := LoadManifest(invalid); err == nil {
		t.Error("expected validation error for empty services")
	}
}

func TestMethodQueryParam(t *testing.T) {
	m := Method{Params: []Param{
		{Name: "id", Type: "int"},
		{Name: "opts", Type: "ListOpts", Query: true},
	}}
	if got := m.queryParam(); got != "opts" {
		t.Errorf("queryParam() = %q", got)
	}
	if got := (&Method{}).queryParam(); got != "" {
		t.Errorf("queryParam() = %q, want empty", got)
	}
}
