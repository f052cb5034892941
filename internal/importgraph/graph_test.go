package importgraph

import (
	"testing"

	"github.com/tsoniclang/tsbindgen/internal/model"
)

// A cross-namespace field reference records a NamespaceDeps edge and a
// CrossRef resolved against the open-generic CLR key, not the constructed
// generic form (spec §4.8).
func TestBuildRecordsCrossNamespaceFieldReference(t *testing.T) {
	box := model.TypeSymbol{
		StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Collections.Box`1"},
		ClrFullName: "Acme.Collections.Box`1", SimpleName: "Box", Namespace: "Acme.Collections",
		Kind: model.Class, Arity: 1,
	}
	widget := model.TypeSymbol{
		StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Core.Widget"},
		ClrFullName: "Acme.Core.Widget", SimpleName: "Widget", Namespace: "Acme.Core", Kind: model.Class,
	}
	boxedWidget := model.NamedRef{Namespace: "Acme.Collections", SimpleName: "Box", Arity: 1,
		TypeArguments: []model.TypeReference{model.NamedRef{Namespace: "Acme.Core", SimpleName: "Widget"}}}
	consumer := model.TypeSymbol{
		StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Core.Consumer"},
		ClrFullName: "Acme.Core.Consumer", SimpleName: "Consumer", Namespace: "Acme.Core", Kind: model.Class,
		Fields: []model.Field{
			{StableId: model.MemberStableId{Assembly: "A", DeclaringClrFullName: "Acme.Core.Consumer", MemberName: "Boxed"},
				ClrName: "Boxed", FieldType: boxedWidget, EmitScope: model.ClassSurface},
		},
	}

	g := model.NewSymbolGraph([]model.NamespaceSymbol{
		{Name: "Acme.Collections", Types: []model.TypeSymbol{box}},
		{Name: "Acme.Core", Types: []model.TypeSymbol{widget, consumer}},
	}, []string{"A"})

	ig := Build(g)

	if !ig.NamespaceDeps["Acme.Core"]["Acme.Collections"] {
		t.Fatalf("expected Acme.Core -> Acme.Collections dependency, got %+v", ig.NamespaceDeps)
	}
	var found bool
	for _, ref := range ig.CrossRefs {
		if ref.SourceType == "Acme.Core.Consumer" && ref.TargetType == "Box" && ref.Kind == RefFieldType {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a RefFieldType cross-ref to Box, got %+v", ig.CrossRefs)
	}
	// The constructed generic Box<Widget> must not itself leave an
	// unresolved key — only its own open-generic key and its type
	// argument Widget are looked up.
	if len(ig.UnresolvedKeys) != 0 {
		t.Errorf("expected no unresolved keys, got %+v", ig.UnresolvedKeys)
	}
}

// An assembly-qualified or otherwise garbage-looking reference key is
// recorded as unresolved rather than silently dropped or resolved wrong.
func TestBuildRecordsUnresolvedGarbageKey(t *testing.T) {
	garbage := model.NamedRef{Namespace: "Acme.Core", SimpleName: "Widget, Culture=neutral, PublicKeyToken=null"}
	consumer := model.TypeSymbol{
		StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Core.Consumer"},
		ClrFullName: "Acme.Core.Consumer", SimpleName: "Consumer", Namespace: "Acme.Core", Kind: model.Class,
		Fields: []model.Field{
			{StableId: model.MemberStableId{Assembly: "A", DeclaringClrFullName: "Acme.Core.Consumer", MemberName: "Bad"},
				ClrName: "Bad", FieldType: garbage, EmitScope: model.ClassSurface},
		},
	}
	g := model.NewSymbolGraph([]model.NamespaceSymbol{{Name: "Acme.Core", Types: []model.TypeSymbol{consumer}}}, []string{"A"})
	ig := Build(g)

	if len(ig.SortedUnresolvedKeys()) == 0 {
		t.Fatal("expected the Culture=/PublicKeyToken= garbage key to be recorded as unresolved")
	}
}

// Members demoted to Omitted (e.g. by the Overload Unifier) are not scanned
// for references — an omitted overload's parameter types must not pull in
// an import nothing emitted actually needs.
func TestBuildSkipsOmittedMembers(t *testing.T) {
	other := model.TypeSymbol{
		StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Other"},
		ClrFullName: "Acme.Other", SimpleName: "Other", Namespace: "Acme", Kind: model.Class,
	}
	host := model.TypeSymbol{
		StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.Host"},
		ClrFullName: "Acme.Host", SimpleName: "Host", Namespace: "Acme", Kind: model.Class,
		Methods: []model.Method{
			{StableId: model.MemberStableId{Assembly: "A", DeclaringClrFullName: "Acme.Host", MemberName: "Hidden"},
				ClrName: "Hidden", EmitScope: model.Omitted,
				Parameters: []model.Parameter{{Name: "o", Type: model.NamedRef{Namespace: "Acme", SimpleName: "Other"}}}},
		},
	}
	g := model.NewSymbolGraph([]model.NamespaceSymbol{{Name: "Acme", Types: []model.TypeSymbol{other, host}}}, []string{"A"})
	ig := Build(g)

	for _, ref := range ig.CrossRefs {
		if ref.SourceType == "Acme.Host" {
			t.Fatalf("an Omitted method's parameter type must not be scanned, got %+v", ref)
		}
	}
}
