// Package apikitgen generates typed API clients from a declarative manifest.
// Each service declaration becomes a concrete apikit.Client wrapper with one
// typed method per endpoint declaration; each method is a thin call into the
// request pipeline.
package apikitgen

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/broady/apikit/apikitgen/sink"
)

// Generator provides a fluent API for client generation.
// Create with FromManifest or FromFile and finish with Generate or ToDir.
//
// Example:
//
//	apikitgen.FromFile("api.json").ToDir("./internal/api")
type Generator struct {
	manifest *Manifest
	err      error
	cfg      Config
}

// Config holds generation settings.
type Config struct {
	// OutDir is the output directory for ToDir.
	OutDir string
	// Header is extra content placed under the generated-code marker.
	Header string
}

// Result holds generated files keyed by relative path.
type Result struct {
	Files map[string][]byte
}

// FromManifest creates a Generator for a validated manifest.
func FromManifest(m *Manifest) *Generator {
	return &Generator{manifest: m}
}

// FromFile creates a Generator from a JSON manifest file. Load errors are
// deferred to the terminal operation.
func FromFile(path string) *Generator {
	m, err := LoadManifest(path)
	return &Generator{manifest: m, err: err}
}

// WithHeader adds content below the generated-code marker of each file.
func (g *Generator) WithHeader(content string) *Generator {
	g.cfg.Header = content
	return g
}

// Generate returns generated files in memory without writing to disk.
func (g *Generator) Generate() (*Result, error) {
	if g.err != nil {
		return nil, g.err
	}
	if err := g.manifest.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Files: make(map[string][]byte)}
	for _, svc := range g.manifest.Services {
		src, err := renderService(g.manifest.Package, g.cfg.Header, svc)
		if err != nil {
			return nil, fmt.Errorf("service %s: %w", svc.Name, err)
		}
		name := strings.ToLower(svc.Name) + "_client.gen.go"
		formatted, err := imports.Process(name, src, nil)
		if err != nil {
			return nil, fmt.Errorf("service %s: formatting generated code: %w", svc.Name, err)
		}
		res.Files[name] = formatted
	}
	return res, nil
}

// ToDir generates files and writes them to the specified directory.
func (g *Generator) ToDir(dir string) (*Result, error) {
	g.cfg.OutDir = dir
	res, err := g.Generate()
	if err != nil {
		return nil, err
	}
	out := sink.NewFilesystemSink(dir)
	for path, content := range res.Files {
		if err := out.WriteFile(context.Background(), path, content); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// methodView is a Method flattened into the strings the template emits.
type methodView struct {
	Name        string
	EndpointVar string
	Service     string
	Verb        string
	URL         string
	BodyKind    string
	ResultKind  string
	ReqType     string
	ResType     string
	Signature   string
	ReqArg      string
	ParamsArg   string
	QueryParam  string
}

type serviceView struct {
	Package string
	Header  string
	Name    string
	Bare    bool
	Methods []methodView
}

var bodyKindExpr = map[string]string{
	"":          "apikit.BodyNone",
	"json":      "apikit.BodyJSON",
	"form":      "apikit.BodyForm",
	"multipart": "apikit.BodyMultipart",
}

var resultKindExpr = map[string]string{
	"status": "apikit.ResultStatus",
	"text":   "apikit.ResultText",
	"bytes":  "apikit.ResultBytes",
	"json":   "apikit.ResultJSON",
}

func viewOf(pkg, header string, svc Service) serviceView {
	v := serviceView{Package: pkg, Header: header, Name: svc.Name, Bare: svc.Bare}
	for _, m := range svc.Methods {
		mv := methodView{
			Name:        m.Name,
			EndpointVar: lowerFirst(svc.Name) + m.Name + "Endpoint",
			Service:     svc.Name,
			Verb:        m.Verb,
			URL:         svc.BaseURL + m.URL,
			BodyKind:    bodyKindExpr[m.Body],
			ResultKind:  resultKindExpr[m.Result],
			QueryParam:  m.queryParam(),
		}

		switch m.Body {
		case "json", "form":
			mv.ReqType = m.BodyType
			mv.ReqArg = "req"
		case "multipart":
			mv.ReqType = "apikit.MultipartForm"
			mv.ReqArg = "req"
		default:
			mv.ReqType = "apikit.Empty"
			mv.ReqArg = "apikit.Empty{}"
		}

		switch m.Result {
		case "status":
			mv.ResType = "int"
		case "text":
			mv.ResType = "string"
		case "bytes":
			mv.ResType = "[]byte"
		default:
			mv.ResType = m.ResultType
		}

		var sig strings.Builder
		sig.WriteString("ctx context.Context")
		if mv.ReqArg == "req" {
			sig.WriteString(", req " + mv.ReqType)
		}
		for _, p := range m.Params {
			sig.WriteString(", " + p.Name + " " + p.Type)
		}
		mv.Signature = sig.String()

		if len(m.Params) == 0 {
			mv.ParamsArg = "nil"
		} else {
			var params strings.Builder
			params.WriteString("apikit.Params{")
			for i, p := range m.Params {
				if i > 0 {
					params.WriteString(", ")
				}
				fmt.Fprintf(&params, "%q: %s", p.Name, p.Name)
			}
			params.WriteString("}")
			mv.ParamsArg = params.String()
		}

		v.Methods = append(v.Methods, mv)
	}
	return v
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

var serviceTemplate = template.Must(template.New("service").Parse(`// Code generated by apikit gen. DO NOT EDIT.
{{if .Header}}{{.Header}}
{{end}}
package {{.Package}}

import (
	"context"

	"github.com/broady/apikit"
)

// {{.Name}}Client is a typed client for the {{.Name}} service.
type {{.Name}}Client struct {
	apikit.Client
}

// New{{.Name}}Client returns a {{.Name}}Client backed by a fresh default
// transport.
func New{{.Name}}Client() *{{.Name}}Client {
	return &{{.Name}}Client{Client: apikit.NewBase()}
}

// New{{.Name}}ClientWith returns a {{.Name}}Client backed by the given
// client, typically one carrying PreRequest or PostResponse hooks.
func New{{.Name}}ClientWith(c apikit.Client) *{{.Name}}Client {
	return &{{.Name}}Client{Client: c}
}
{{range .Methods}}
var {{.EndpointVar}} = apikit.MustEndpoint[{{.ReqType}}, {{.ResType}}]("{{.Verb}}", "{{.URL}}", {{.BodyKind}}, {{.ResultKind}}).
	Named("{{.Service}}", "{{.Name}}"){{if .QueryParam}}.
	QueryParam("{{.QueryParam}}"){{end}}

func (c *{{$.Name}}Client) {{.Name}}({{.Signature}}) ({{.ResType}}, error) {
	return {{.EndpointVar}}.Call(ctx, c, {{.ReqArg}}, {{.ParamsArg}})
}
{{end}}`))

func renderService(pkg, header string, svc Service) ([]byte, error) {
	var buf bytes.Buffer
	if err := serviceTemplate.Execute(&buf, viewOf(pkg, header, svc)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
