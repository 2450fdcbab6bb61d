// Command glgen generates the numeric WebGL pass-through table of internal/binding from
// its YAML description.
//
// Usage:
//
//	glgen -in webgl.yaml -out zz_webgl.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"sort"
	"strings"
	"text/template"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// apiTable is the document in webgl.yaml.
type apiTable struct {
	Functions []apiFunc `yaml:"functions"`
}

type apiFunc struct {
	Name   string   `yaml:"name"`
	Params []string `yaml:"params"`
	Result string   `yaml:"result"`
}

type param struct {
	Name string
	Type string
}

// entry is the template view of one function.
type entry struct {
	Name   string
	Method string
	Params []param
	Result string
	Call   string
}

var valueTypes = map[string]string{
	"u32":  "api.ValueTypeI32",
	"i32":  "api.ValueTypeI32",
	"bool": "api.ValueTypeI32",
	"f32":  "api.ValueTypeF32",
}

var decoders = map[string]string{
	"u32":  "api.DecodeU32(stack[%d])",
	"i32":  "api.DecodeI32(stack[%d])",
	"f32":  "api.DecodeF32(stack[%d])",
	"bool": "decodeBool(stack[%d])",
}

var encoders = map[string]string{
	"u32":  "api.EncodeU32(%s)",
	"i32":  "api.EncodeI32(%s)",
	"bool": "encodeBool(%s)",
}

var tmpl = template.Must(template.New("webgl").Funcs(template.FuncMap{
	"valueTypes": func(ps []param) string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = valueTypes[p.Type]
		}
		return strings.Join(out, ", ")
	},
	"paramNames": func(ps []param) string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = fmt.Sprintf("%q", p.Name)
		}
		return strings.Join(out, ", ")
	},
	"valueType": func(t string) string { return valueTypes[t] },
}).Parse(`// Code generated by glgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
	"context"

	"github.com/tetratelabs/wazero/api"
)

// passThrough returns the numeric WebGL entry points, bound to the surface's context.
func passThrough() map[string]Func {
	return map[string]Func{
{{- range .Entries}}
		"{{.Name}}": {
{{- if .Params}}
			Params: []api.ValueType{ {{- valueTypes .Params -}} },
			ParamNames: []string{ {{- paramNames .Params -}} },
{{- end}}
{{- if .Result}}
			Results: []api.ValueType{ {{- valueType .Result -}} },
{{- end}}
			Fn: func(_ context.Context, s *Surface, stack []uint64) {
				{{.Call}}
			},
		},
{{- end}}
	}
}
`))

func main() {
	in := flag.String("in", "webgl.yaml", "API table to read")
	out := flag.String("out", "zz_webgl.go", "Go file to write")
	pkg := flag.String("package", "binding", "package name of the generated file")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	src, err := generate(*in, *pkg)
	if err != nil {
		logger.Fatal("Generation failed", zap.String("input", *in), zap.Error(err))
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		logger.Fatal("Failed to write output", zap.String("output", *out), zap.Error(err))
	}
	logger.Info("Generated pass-through table", zap.String("output", *out))
}

// generate reads the table at path and returns the formatted Go source.
func generate(path, pkg string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var table apiTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	entries, err := buildEntries(table.Functions)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		Source  string
		Package string
		Entries []entry
	}{Source: path, Package: pkg, Entries: entries})
	if err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

func buildEntries(funcs []apiFunc) ([]entry, error) {
	seen := make(map[string]bool, len(funcs))
	entries := make([]entry, 0, len(funcs))
	for _, f := range funcs {
		if f.Name == "" {
			return nil, fmt.Errorf("function without a name")
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("duplicate function %s", f.Name)
		}
		seen[f.Name] = true

		e := entry{Name: f.Name, Method: strings.ToUpper(f.Name[:1]) + f.Name[1:], Result: f.Result}
		args := make([]string, len(f.Params))
		for i, p := range f.Params {
			fields := strings.Fields(p)
			if len(fields) != 2 {
				return nil, fmt.Errorf("%s: parameter %q must be \"name type\"", f.Name, p)
			}
			dec, ok := decoders[fields[1]]
			if !ok {
				return nil, fmt.Errorf("%s: unknown parameter type %s", f.Name, fields[1])
			}
			e.Params = append(e.Params, param{Name: fields[0], Type: fields[1]})
			args[i] = fmt.Sprintf(dec, i)
		}

		e.Call = fmt.Sprintf("s.GL.%s(%s)", e.Method, strings.Join(args, ", "))
		if f.Result != "" {
			enc, ok := encoders[f.Result]
			if !ok {
				return nil, fmt.Errorf("%s: unknown result type %s", f.Name, f.Result)
			}
			e.Call = "stack[0] = " + fmt.Sprintf(enc, e.Call)
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
