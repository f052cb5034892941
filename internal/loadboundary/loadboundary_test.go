package loadboundary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/model"
)

const sampleManifest = `
assemblies:
  - Acme.Core
namespaces:
  - name: Acme.Core
    types:
      - clr_full_name: Acme.Core.IWidget
        simple_name: IWidget
        kind: Interface
        methods:
          - name: Render
            params:
              - name: type
                type: { kind: named, name: String }
            return: { kind: named, name: String }
            is_abstract: true
            visibility: Public
      - clr_full_name: Acme.Core.Widget
        simple_name: Widget
        kind: Class
        interfaces:
          - kind: named
            namespace: Acme.Core
            name: IWidget
        methods:
          - name: Render
            params:
              - name: type
                type: { kind: named, name: String }
            return: { kind: named, name: String }
            visibility: Public
        fields:
          - name: Count
            type: { kind: named, name: Int32 }
            visibility: Public
      - clr_full_name: Acme.Core.Widget+<RenderIterator>d__4
        simple_name: <RenderIterator>d__4
        kind: Class
`

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestManifestSourceLoad(t *testing.T) {
	path := writeManifest(t)
	graph, diags, err := ManifestSource{}.Load([]string{path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_ = diags

	if len(graph.Namespaces) != 1 {
		t.Fatalf("expected 1 namespace, got %d", len(graph.Namespaces))
	}
	types := graph.Namespaces[0].Types
	if len(types) != 2 {
		t.Fatalf("expected 2 types (compiler-generated one skipped), got %d", len(types))
	}

	widget, ok := graph.TypeByFullName("Acme.Core.Widget")
	if !ok {
		t.Fatal("expected to find Acme.Core.Widget")
	}
	if widget.Kind != model.Class {
		t.Fatalf("expected Class kind, got %v", widget.Kind)
	}
	if len(widget.DeclaredInterfaces) != 1 {
		t.Fatalf("expected 1 declared interface, got %d", len(widget.DeclaredInterfaces))
	}
	if len(widget.Methods) != 1 || widget.Methods[0].ClrName != "Render" {
		t.Fatalf("unexpected methods: %+v", widget.Methods)
	}
	if widget.Methods[0].StableId.CanonicalSignature == "" {
		t.Fatal("expected canonical signature to be precomputed at load time")
	}

	iface, ok := graph.TypeByFullName("Acme.Core.IWidget")
	if !ok {
		t.Fatal("expected to find Acme.Core.IWidget")
	}
	if iface.Kind != model.Interface {
		t.Fatalf("expected Interface kind, got %v", iface.Kind)
	}
}

func TestManifestSourceSkipsCompilerGenerated(t *testing.T) {
	path := writeManifest(t)
	graph, _, err := ManifestSource{}.Load([]string{path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := graph.TypeByFullName("Acme.Core.Widget+<RenderIterator>d__4"); ok {
		t.Fatal("compiler-generated type should have been filtered at load time")
	}
}

func TestSanitizeParamRenamesReservedWord(t *testing.T) {
	p := manifestParam{Name: "type", Type: manifestTypeRef{Kind: "named", Name: "String"}}
	param, d := sanitizeParam(p)
	if param.Name == "type" {
		t.Fatalf("expected %q to be sanitized, got unchanged name", p.Name)
	}
	if d == nil {
		t.Fatal("expected a diagnostic recording the rename")
	}
	if d.Code != diagnostics.CodeRenameDecision {
		t.Fatalf("expected CodeRenameDecision, got %v", d.Code)
	}
}

func TestIsCompilerGenerated(t *testing.T) {
	cases := map[string]bool{
		"Widget":              false,
		"<RenderIterator>d__4": true,
		"Foo>Bar":              true,
	}
	for name, want := range cases {
		if got := isCompilerGenerated(name); got != want {
			t.Errorf("isCompilerGenerated(%q) = %v, want %v", name, got, want)
		}
	}
}
