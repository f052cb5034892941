package bindgen

import (
	"context"
	"os"
	"path/filepath"
	"testing"
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
            return: { kind: named, name: String }
            visibility: Public
        fields:
          - name: Count
            type: { kind: named, name: Int32 }
            visibility: Public
`

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunEndToEndWithoutEmit(t *testing.T) {
	path := writeManifest(t)
	result, err := Run(context.Background(), Options{Paths: []string{path}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Gate.Failed {
		t.Fatalf("expected a passing run, got diagnostics counts: %+v", result.Gate.CountsByCode)
	}
	if result.Graph == nil || len(result.Graph.Namespaces) == 0 {
		t.Fatal("expected a non-empty resulting graph")
	}
	widget, ok := result.Graph.TypeByFullName("Acme.Core.Widget")
	if !ok {
		t.Fatal("expected Acme.Core.Widget to survive the pipeline")
	}
	if widget.EmitName == "" {
		t.Fatal("expected NameReserve to have assigned an EmitName")
	}
	if result.EmitOrder == nil {
		t.Fatal("expected an emission order plan")
	}
	if len(result.Written) != 0 {
		t.Fatalf("expected no emitted files without OutDir, got %v", result.Written)
	}
}

func TestRunEmitsWhenOutDirSet(t *testing.T) {
	path := writeManifest(t)
	outDir := t.TempDir()
	result, err := Run(context.Background(), Options{Paths: []string{path}, OutDir: outDir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Gate.Failed {
		t.Fatalf("expected a passing run, got diagnostics counts: %+v", result.Gate.CountsByCode)
	}
	if len(result.Written) == 0 {
		t.Fatal("expected at least one namespace directory to be written")
	}
	for _, dir := range result.Written {
		if _, err := os.Stat(filepath.Join(dir, "index.d.ts")); err != nil {
			t.Errorf("expected index.d.ts under %s: %v", dir, err)
		}
	}
}
