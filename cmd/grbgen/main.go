// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command grbgen generates grb/catalog/zdispatch_generated.go from the
// declarative catalogSpec table below. It plays the same role cmd/hwygen
// plays for SIMD kernel variants: instead of hand-writing one entry per
// built-in (monoid, op) pair and keeping the registry and the doc
// comments in sync by hand, the pairing is declared once here and the
// Go source is produced from it.
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/imports"
)

// entry declares one built-in semiring by its registry name and the
// OpCode identifiers of its monoid and multiplicative operator.
type entry struct {
	Name       string
	MonoidCode string
	MultCode   string
}

// catalogSpec is the single source of truth for grb/catalog's built-in
// registry. Add a row here, then run this command, to add a new built-in
// semiring without touching zdispatch_generated.go by hand.
var catalogSpec = []entry{
	{Name: "plus_times", MonoidCode: "OpCodePlus", MultCode: "OpCodeTimes"},
	{Name: "min_plus", MonoidCode: "OpCodeMin", MultCode: "OpCodePlus"},
	{Name: "any_pair", MonoidCode: "OpCodeAny", MultCode: "OpCodeFirst"},
}

const tmplSrc = `// Code generated by cmd/grbgen from catalogSpec in cmd/grbgen/main.go. DO NOT EDIT.

package catalog

import "github.com/filipecosta90/GraphBLAS/grb"

// Builtins lists every (monoid, multiplicative op) pair Lookup knows how
// to construct. Add a new entry to catalogSpec in cmd/grbgen and re-run
// ` + "`go run ./cmd/grbgen`" + ` from the module root rather than editing this file.
var Builtins = []Descriptor{
{{- range . }}
	{Name: {{ printf "%q" .Name }}, MonoidCode: grb.{{ .MonoidCode }}, MultCode: grb.{{ .MultCode }}}, // {{ .Title }}
{{- end }}
}
`

type row struct {
	entry
	Title string
}

func main() {
	out := "grb/catalog/zdispatch_generated.go"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	titleCaser := cases.Title(language.English)
	rows := make([]row, len(catalogSpec))
	for i, e := range catalogSpec {
		rows[i] = row{entry: e, Title: titleCaser.String(e.Name)}
	}

	tmpl := template.Must(template.New("zdispatch").Parse(tmplSrc))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, rows); err != nil {
		log.Fatalf("grbgen: render: %v", err)
	}

	formatted, err := imports.Process(out, buf.Bytes(), nil)
	if err != nil {
		log.Fatalf("grbgen: gofmt/imports: %v", err)
	}
	if err := os.WriteFile(out, formatted, 0o644); err != nil {
		log.Fatalf("grbgen: write %s: %v", out, err)
	}
	fmt.Printf("grbgen: wrote %s (%d entries)\n", out, len(rows))
}
