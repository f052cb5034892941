package importplan

import (
	"testing"

	"github.com/tsoniclang/tsbindgen/internal/importgraph"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/naming"
)

func newGraph(namespaces ...model.NamespaceSymbol) *model.SymbolGraph {
	return model.NewSymbolGraph(namespaces, []string{"A"})
}

func refPtr(r model.TypeReference) *model.TypeReference { return &r }

// A base-type cross-reference becomes a value import: it needs a runtime
// import (for `extends`/instanceof), not just a type-only one, and its
// QualifiedName is namespace-qualified.
func TestBuildProducesValueImportForBaseType(t *testing.T) {
	widget := model.TypeSymbol{
		StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Core.Widget"},
		ClrFullName: "Acme.Core.Widget", SimpleName: "Widget", Namespace: "Acme.Core", Kind: model.Class,
		EmitName: "Widget",
	}
	gadget := model.TypeSymbol{
		StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Other.Gadget"},
		ClrFullName: "Acme.Other.Gadget", SimpleName: "Gadget", Namespace: "Acme.Other", Kind: model.Class,
		EmitName: "Gadget",
		BaseType: refPtr(model.NamedRef{Namespace: "Acme.Core", SimpleName: "Widget"}),
	}
	g := newGraph(
		model.NamespaceSymbol{Name: "Acme.Core", Types: []model.TypeSymbol{widget}},
		model.NamespaceSymbol{Name: "Acme.Other", Types: []model.TypeSymbol{gadget}},
	)
	ig := &importgraph.Graph{
		CrossRefs: []importgraph.CrossRef{
			{SourceNamespace: "Acme.Other", SourceType: "Acme.Other.Gadget", TargetNamespace: "Acme.Core",
				TargetType: "Widget", TargetId: widget.StableId, Kind: importgraph.RefBaseType},
		},
	}
	renamer := naming.New()
	plan, diags := Build(g, ig, renamer, ImportPolicy{})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	ns := plan.ByNamespace["Acme.Other"]
	if len(ns.Imports) != 1 {
		t.Fatalf("expected one import, got %d", len(ns.Imports))
	}
	imp := ns.Imports[0]
	if !imp.ValueImport {
		t.Error("a base-type reference must be a value import")
	}
	if imp.QualifiedName != "Acme.Core.Widget.Widget" {
		t.Errorf("QualifiedName = %q, want %q", imp.QualifiedName, "Acme.Core.Widget.Widget")
	}
	if imp.ModuleSpecifier == "" {
		t.Error("expected a non-empty module specifier")
	}
}

// A property/field-type reference is type-only: no ValueImport, no
// QualifiedName.
func TestBuildProducesTypeOnlyImportForPropertyType(t *testing.T) {
	widget := model.TypeSymbol{
		StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Core.Widget"},
		ClrFullName: "Acme.Core.Widget", SimpleName: "Widget", Namespace: "Acme.Core", Kind: model.Class,
		EmitName: "Widget",
	}
	consumer := model.TypeSymbol{
		StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Other.Consumer"},
		ClrFullName: "Acme.Other.Consumer", SimpleName: "Consumer", Namespace: "Acme.Other", Kind: model.Class,
		EmitName: "Consumer",
	}
	g := newGraph(
		model.NamespaceSymbol{Name: "Acme.Core", Types: []model.TypeSymbol{widget}},
		model.NamespaceSymbol{Name: "Acme.Other", Types: []model.TypeSymbol{consumer}},
	)
	ig := &importgraph.Graph{
		CrossRefs: []importgraph.CrossRef{
			{SourceNamespace: "Acme.Other", SourceType: "Acme.Other.Consumer", TargetNamespace: "Acme.Core",
				TargetType: "Widget", TargetId: widget.StableId, Kind: importgraph.RefPropertyType},
		},
	}
	renamer := naming.New()
	plan, _ := Build(g, ig, renamer, ImportPolicy{})
	ns := plan.ByNamespace["Acme.Other"]
	if len(ns.Imports) != 1 {
		t.Fatalf("expected one import, got %d", len(ns.Imports))
	}
	if ns.Imports[0].ValueImport {
		t.Error("a property-type reference must not be a value import")
	}
	if ns.Imports[0].QualifiedName != "" {
		t.Errorf("QualifiedName should stay empty for a type-only import, got %q", ns.Imports[0].QualifiedName)
	}
}

// Two distinct imports into the same namespace that happen to share an
// emitted name get namespace-qualified aliases; a lone import does not.
func TestAssignAliasesOnlyOnCollision(t *testing.T) {
	plan := &NamespacePlan{
		Namespace: "Acme.Other",
		Imports: []Import{
			{TargetNamespace: "Acme.Core", EmittedName: "Widget"},
			{TargetNamespace: "Acme.Legacy", EmittedName: "Widget"},
			{TargetNamespace: "Acme.Utils", EmittedName: "Helper"},
		},
	}
	assignAliases(plan, false)
	if plan.Imports[0].Alias == "" || plan.Imports[1].Alias == "" {
		t.Error("both colliding Widget imports should have been given aliases")
	}
	if plan.Imports[0].Alias == plan.Imports[1].Alias {
		t.Errorf("aliases must be distinguishable: both are %q", plan.Imports[0].Alias)
	}
	if plan.Imports[2].Alias != "" {
		t.Errorf("a non-colliding import should stay unaliased, got %q", plan.Imports[2].Alias)
	}
}

// An import whose computed name contains assembly-qualified garbage is
// reported as a diagnostic and dropped rather than silently emitted.
func TestBuildRejectsGarbageImportName(t *testing.T) {
	consumer := model.TypeSymbol{
		StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Other.Consumer"},
		ClrFullName: "Acme.Other.Consumer", SimpleName: "Consumer", Namespace: "Acme.Other", Kind: model.Class,
		EmitName: "Consumer",
	}
	g := newGraph(model.NamespaceSymbol{Name: "Acme.Other", Types: []model.TypeSymbol{consumer}})
	ig := &importgraph.Graph{
		CrossRefs: []importgraph.CrossRef{
			{SourceNamespace: "Acme.Other", SourceType: "Acme.Other.Consumer", TargetNamespace: "Acme.Core",
				TargetType: "Widget, Culture=neutral, PublicKeyToken=null", Kind: importgraph.RefPropertyType},
		},
	}
	renamer := naming.New()
	plan, diags := Build(g, ig, renamer, ImportPolicy{})
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for the assembly-qualified garbage name")
	}
	if ns := plan.ByNamespace["Acme.Other"]; len(ns.Imports) != 0 {
		t.Errorf("garbage-named import should have been dropped, got %+v", ns.Imports)
	}
}
