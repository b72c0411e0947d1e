package mapfile

import (
	"testing"
)

// Run with: go test -fuzz=FuzzParseJSON -fuzztime=30s ./pkg/mapfile/

// FuzzParseJSON feeds arbitrary input to the JSON decoder and converter.
func FuzzParseJSON(f *testing.F) {
	f.Add([]byte(`{"cities":[{"id":1,"x":0.5,"y":0.5}],"routes":[]}`))
	f.Add([]byte(`{"cities":[{"id":1,"x":0.1,"y":0.1,"type":"town"},{"id":2,"x":0.9,"y":0.9}],"routes":[{"id":1,"from":1,"to":2,"color":"#abcdef"}]}`))
	f.Add([]byte(`{"routes":[{"id":1,"from":1,"to":2}]}`))
	f.Add([]byte(`{}`))
	f.Add([]byte(`[]`))
	f.Add([]byte(`null`))
	f.Add([]byte(``))
	f.Add([]byte(`{"cities":[{"id":1,"x":1e308,"y":-1e308}]}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		doc, err := Parse(data, FormatJSON)
		if err != nil {
			return
		}
		checkDocument(t, doc)
	})
}

// FuzzParseTOML feeds arbitrary input to the TOML decoder and converter.
func FuzzParseTOML(f *testing.F) {
	f.Add("name = \"x\"\n[[cities]]\nid = 1\nx = 0.5\ny = 0.5\n")
	f.Add("[[routes]]\nid = 1\nfrom = 1\nto = 2\ncolor = \"#000\"\n")
	f.Add("")
	f.Add("[[cities]]\n[[cities]]\n")
	f.Add("cities = 3")

	f.Fuzz(func(t *testing.T, data string) {
		doc, err := Parse([]byte(data), FormatTOML)
		if err != nil {
			return
		}
		checkDocument(t, doc)
	})
}

// FuzzParseYAML feeds arbitrary input to the YAML decoder and converter.
func FuzzParseYAML(f *testing.F) {
	f.Add("cities:\n  - {id: 1, x: 0.5, y: 0.5}\nroutes: []\n")
	f.Add("routes:\n  - {id: 1, from: 1, to: 1, color: '#ff0000'}\n")
	f.Add("")
	f.Add("- 1\n- 2\n")
	f.Add("cities: [unclosed")

	f.Fuzz(func(t *testing.T, data string) {
		doc, err := Parse([]byte(data), FormatYAML)
		if err != nil {
			return
		}
		checkDocument(t, doc)
	})
}

// checkDocument asserts that a decoded document either fails validation or
// converts into in-bounds nodes that re-encode without error.
func checkDocument(t *testing.T, doc *Document) {
	t.Helper()
	if err := doc.Validate(); err != nil {
		return
	}
	nodes, err := doc.Nodes()
	if err != nil {
		t.Fatalf("valid document failed to convert: %v", err)
	}
	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			t.Fatalf("valid document produced bad node: %v", err)
		}
	}
	for _, format := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		if _, err := Encode(doc, format); err != nil {
			t.Fatalf("encode %s: %v", format, err)
		}
	}
}
