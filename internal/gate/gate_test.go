package gate

import (
	"testing"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/importgraph"
	"github.com/tsoniclang/tsbindgen/internal/importplan"
	"github.com/tsoniclang/tsbindgen/internal/model"
)

func namespaceGraph(types ...model.TypeSymbol) *model.SymbolGraph {
	return model.NewSymbolGraph([]model.NamespaceSymbol{
		{Name: "Acme", Types: types},
	}, []string{"A"})
}

func TestRunFailsOnDuplicateFinalTypeName(t *testing.T) {
	types := []model.TypeSymbol{
		{StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Widget"}, ClrFullName: "Acme.Widget", EmitName: "Widget"},
		{StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Widget2"}, ClrFullName: "Acme.Widget2", EmitName: "Widget"},
	}
	g := namespaceGraph(types...)
	bag := diagnostics.NewBag()
	summary := Run(g, &importplan.Plan{}, &importgraph.Graph{}, bag)

	if !summary.Failed {
		t.Fatal("expected a duplicate final type name to fail the gate")
	}
	if summary.CountsByCode[diagnostics.CodeDuplicateMember] == 0 {
		t.Fatalf("expected at least one CodeDuplicateMember, got %+v", summary.CountsByCode)
	}
}

func TestRunFailsOnMissingFinalTypeName(t *testing.T) {
	types := []model.TypeSymbol{
		{StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Widget"}, ClrFullName: "Acme.Widget", EmitName: ""},
	}
	g := namespaceGraph(types...)
	bag := diagnostics.NewBag()
	summary := Run(g, &importplan.Plan{}, &importgraph.Graph{}, bag)

	if !summary.Failed {
		t.Fatal("expected a missing final type name to fail the gate")
	}
}

func TestRunFailsOnUnsanitizedReservedTypeName(t *testing.T) {
	types := []model.TypeSymbol{
		{StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Class"}, ClrFullName: "Acme.Class", EmitName: "class"},
	}
	g := namespaceGraph(types...)
	bag := diagnostics.NewBag()
	summary := Run(g, &importplan.Plan{}, &importgraph.Graph{}, bag)

	if !summary.Failed {
		t.Fatal("expected a reserved-word final name to fail the gate")
	}
	if summary.CountsByCode[diagnostics.CodeReservedWordUnsanitzd] == 0 {
		t.Fatalf("expected CodeReservedWordUnsanitzd, got %+v", summary.CountsByCode)
	}
}

func TestRunPassesOnCleanGraph(t *testing.T) {
	types := []model.TypeSymbol{
		{StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Widget"}, ClrFullName: "Acme.Widget", EmitName: "Widget"},
	}
	g := namespaceGraph(types...)
	bag := diagnostics.NewBag()
	summary := Run(g, &importplan.Plan{}, &importgraph.Graph{}, bag)

	if summary.Failed {
		t.Fatalf("expected a clean graph to pass, got counts %+v", summary.CountsByCode)
	}
}
