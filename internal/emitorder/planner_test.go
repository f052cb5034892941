package emitorder

import (
	"testing"

	"github.com/tsoniclang/tsbindgen/internal/model"
)

func TestOrderTypesSortsByTierThenName(t *testing.T) {
	types := []model.TypeSymbol{
		{SimpleName: "Zebra", Kind: model.Class, EmitName: "Zebra"},
		{SimpleName: "Alpha", Kind: model.Interface, EmitName: "Alpha"},
		{SimpleName: "Beta", Kind: model.Enum, EmitName: "Beta"},
	}
	ordered := OrderTypes(types, func(ts model.TypeSymbol) string { return ts.SimpleName })
	want := []string{"Beta", "Alpha", "Zebra"} // Enum < Interface < Class
	for i, name := range want {
		if ordered[i].SimpleName != name {
			t.Fatalf("position %d: got %q, want %q (order: %v)", i, ordered[i].SimpleName, name, ordered)
		}
	}
}

func TestOrderTypesStableOnTie(t *testing.T) {
	types := []model.TypeSymbol{
		{SimpleName: "Pair", Kind: model.Class, Arity: 1},
		{SimpleName: "Pair", Kind: model.Class, Arity: 0},
	}
	ordered := OrderTypes(types, func(ts model.TypeSymbol) string { return ts.SimpleName })
	if ordered[0].Arity != 0 || ordered[1].Arity != 1 {
		t.Fatalf("expected arity to break the tie ascending, got %+v", ordered)
	}
}

func TestOrderNamespacesDedupsAndSorts(t *testing.T) {
	g := &model.SymbolGraph{Namespaces: []model.NamespaceSymbol{
		{Name: "Zeta"}, {Name: "Alpha"}, {Name: "Alpha"},
	}}
	names := OrderNamespaces(g)
	if len(names) != 2 {
		t.Fatalf("expected 2 distinct namespaces, got %v", names)
	}
	if names[0] != "Alpha" || names[1] != "Zeta" {
		t.Fatalf("expected lex order [Alpha Zeta], got %v", names)
	}
}

func TestMemberTierOrdering(t *testing.T) {
	tiers := []string{"Constructor", "Field", "Property", "Event", "Method"}
	for i := 1; i < len(tiers); i++ {
		if MemberTier(tiers[i-1]) >= MemberTier(tiers[i]) {
			t.Fatalf("expected %q < %q, got tiers %d >= %d", tiers[i-1], tiers[i], MemberTier(tiers[i-1]), MemberTier(tiers[i]))
		}
	}
}

func TestOrderMembersInstanceBeforeStatic(t *testing.T) {
	typ := model.TypeSymbol{
		Methods: []model.Method{
			{ClrName: "StaticM", EmitName: "StaticM", IsStatic: true},
			{ClrName: "InstanceM", EmitName: "InstanceM", IsStatic: false},
		},
	}
	order := OrderMembers(typ,
		func(m model.Method) string { return m.EmitName },
		func(p model.Property) string { return p.EmitName },
		func(f model.Field) string { return f.EmitName },
		func(e model.Event) string { return e.EmitName },
		func(kind string, index int) string { return kind },
	)
	if len(order.Methods) != 2 {
		t.Fatalf("expected 2 ordered methods, got %d", len(order.Methods))
	}
	if order.Methods[0] != 1 { // index 1 is InstanceM
		t.Fatalf("expected instance method first, got order %v", order.Methods)
	}
}
