package overload

import (
	"testing"

	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/policy"
)

func method(id, emitName string, kind model.ParameterKind, emitScope model.EmitScope) model.Method {
	return model.Method{
		StableId: model.MemberStableId{Assembly: "A", DeclaringClrFullName: "Acme.Widget", MemberName: id},
		ClrName:  id,
		Parameters: []model.Parameter{
			{Name: "p", Kind: kind, Type: model.NamedRef{Namespace: "System", SimpleName: "Int32"}},
		},
		EmitName:  emitName,
		EmitScope: emitScope,
	}
}

// Three CLR overloads the TST cannot distinguish (ref/out is erased, spec
// §4.13) converge on the same final name, generic arity, and parameter
// count after Name Reservation — the diamond scenario spec §4.7 calls
// OverloadAll. Exactly the widest (fewest ref/out params) survives.
func TestPassCollapsesDiamondToWidestSurvivor(t *testing.T) {
	wide := method("DoWork", "doWork", model.ParamIn, model.ClassSurface)
	narrow1 := method("DoWorkRef", "doWork", model.ParamRef, model.ClassSurface)
	narrow2 := method("DoWorkOut", "doWork", model.ParamOut, model.ClassSurface)

	typ := model.TypeSymbol{
		StableId:    model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Widget"},
		ClrFullName: "Acme.Widget", SimpleName: "Widget", Namespace: "Acme", Kind: model.Class,
		Methods: []model.Method{narrow2, narrow1, wide},
	}
	graph := model.NewSymbolGraph([]model.NamespaceSymbol{{Name: "Acme", Types: []model.TypeSymbol{typ}}}, []string{"A"})
	ctx := pipeline.NewContext(graph, policy.Default())
	ctx = (&Pass{}).Process(ctx)

	got, _ := ctx.Graph.TypeByFullName("Acme.Widget")
	var surviving int
	var survivorId string
	for _, m := range got.Methods {
		if m.EmitScope != model.Omitted {
			surviving++
			survivorId = m.StableId.MemberName
		}
	}
	if surviving != 1 {
		t.Fatalf("expected exactly one surviving method in the bucket, got %d", surviving)
	}
	if survivorId != "DoWork" {
		t.Errorf("survivor = %q, want the ref/out-free signature %q", survivorId, "DoWork")
	}
}

// Static methods are never touched by the unifier even when they share a
// final name/arity/parameter-count with an instance bucket.
func TestPassLeavesStaticMethodsAlone(t *testing.T) {
	a := method("DoWork", "doWork", model.ParamIn, model.ClassSurface)
	b := method("DoWorkRef", "doWork", model.ParamRef, model.ClassSurface)
	b.IsStatic = true

	typ := model.TypeSymbol{
		StableId:    model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Widget"},
		ClrFullName: "Acme.Widget", SimpleName: "Widget", Namespace: "Acme", Kind: model.Class,
		Methods: []model.Method{a, b},
	}
	graph := model.NewSymbolGraph([]model.NamespaceSymbol{{Name: "Acme", Types: []model.TypeSymbol{typ}}}, []string{"A"})
	ctx := pipeline.NewContext(graph, policy.Default())
	ctx = (&Pass{}).Process(ctx)

	got, _ := ctx.Graph.TypeByFullName("Acme.Widget")
	for _, m := range got.Methods {
		if m.EmitScope == model.Omitted {
			t.Fatalf("no method should have been omitted when one side of the bucket is static: %+v", m)
		}
	}
}
