package normalize

import (
	"testing"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
)

func graphWith(base model.TypeReference, ifaces ...model.TypeReference) *model.SymbolGraph {
	iface := model.TypeSymbol{
		StableId:    model.TypeStableId{Assembly: "A", ClrFullName: "Acme.IWidget"},
		ClrFullName: "Acme.IWidget",
		SimpleName:  "IWidget",
		Namespace:   "Acme",
		Kind:        model.Interface,
	}
	derived := model.TypeSymbol{
		StableId:           model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Widget"},
		ClrFullName:        "Acme.Widget",
		SimpleName:         "Widget",
		Namespace:          "Acme",
		Kind:               model.Class,
		BaseType:           &base,
		DeclaredInterfaces: ifaces,
	}
	ns := model.NamespaceSymbol{Name: "Acme", Types: []model.TypeSymbol{iface, derived}}
	return model.NewSymbolGraph([]model.NamespaceSymbol{ns}, []string{"A"})
}

func TestProcessFlagsExternalBaseType(t *testing.T) {
	base := model.NamedRef{Namespace: "System", SimpleName: "Object", Arity: 0}
	g := graphWith(base)
	ctx := pipeline.NewContext(g, nil)

	(&Pass{}).Process(ctx)

	found := false
	for _, d := range ctx.Diagnostics.All() {
		if d.Code == diagnostics.CodeExternalReference {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a CodeExternalReference diagnostic for System.Object")
	}
}

func TestProcessResolvesLocalInterface(t *testing.T) {
	base := model.NamedRef{Namespace: "System", SimpleName: "Object", Arity: 0}
	iface := model.NamedRef{Namespace: "Acme", SimpleName: "IWidget", Arity: 0}
	g := graphWith(base, iface)
	ctx := pipeline.NewContext(g, nil)

	(&Pass{}).Process(ctx)

	for _, d := range ctx.Diagnostics.All() {
		if d.Code == diagnostics.CodeExternalReference && d.Site.Path != "" &&
			d.Site.Path == "Acme.Widget -> Acme.IWidget" {
			t.Fatalf("local interface Acme.IWidget should not have been flagged external: %v", d)
		}
	}
}

func TestProcessSetsStage(t *testing.T) {
	base := model.NamedRef{Namespace: "System", SimpleName: "Object", Arity: 0}
	g := graphWith(base)
	ctx := pipeline.NewContext(g, nil)
	out := (&Pass{}).Process(ctx)
	if out.Stage != "normalize.Index" {
		t.Fatalf("expected Stage to be set to normalize.Index, got %q", out.Stage)
	}
}
