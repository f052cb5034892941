package reserve

import (
	"testing"

	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/naming"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/policy"
)

// Two classes independently cloning the same interface member into a view
// (spec §3's "clones retain the interface's StableId" invariant) must each
// get their own final name for it, even when the member already has a
// final name reserved in one type's view scope by the time the other
// type's view is processed. This is the scenario review finding (a) fixed:
// reserveMemberNames used to key its working map by MemberStableId alone,
// so the second type processed silently overwrote the first type's name.
func TestViewMemberNamesAreIndependentPerImplementingType(t *testing.T) {
	ifaceId := model.TypeStableId{Assembly: "A", ClrFullName: "Acme.IFoo"}
	ifaceRef := model.NamedRef{Assembly: "A", Namespace: "Acme", SimpleName: "IFoo"}
	barId := model.MemberStableId{Assembly: "A", DeclaringClrFullName: "Acme.IFoo", MemberName: "Bar"}

	c1Id := model.TypeStableId{Assembly: "A", ClrFullName: "Acme.C1"}
	c2Id := model.TypeStableId{Assembly: "A", ClrFullName: "Acme.C2"}

	barView := func() model.Property {
		return model.Property{StableId: barId, ClrName: "Bar", EmitScope: model.ViewOnly, SourceInterface: typeRefPtr(ifaceRef)}
	}

	c1 := model.TypeSymbol{
		StableId: c1Id, ClrFullName: "Acme.C1", SimpleName: "C1", Namespace: "Acme", Kind: model.Class,
		ExplicitViews: []model.ExplicitView{
			{Interface: ifaceRef, InterfaceId: ifaceId, RequestedPropertyName: "As_IFoo", Properties: []model.Property{barView()}},
		},
	}
	c2 := model.TypeSymbol{
		StableId: c2Id, ClrFullName: "Acme.C2", SimpleName: "C2", Namespace: "Acme", Kind: model.Class,
		ExplicitViews: []model.ExplicitView{
			{Interface: ifaceRef, InterfaceId: ifaceId, RequestedPropertyName: "As_IFoo", Properties: []model.Property{barView()}},
		},
	}

	graph := model.NewSymbolGraph([]model.NamespaceSymbol{{Name: "Acme", Types: []model.TypeSymbol{c1, c2}}}, []string{"A"})
	ctx := pipeline.NewContext(graph, policy.Default())

	// Pre-occupy C1's view scope (but not C2's) with an unrelated member
	// named "Bar", forcing C1's clone of barId to take a numeric suffix
	// while C2's clone, reserved in its own independent view scope, does not.
	c1ViewScope := model.ViewScope(c1Id, ifaceId, model.Instance)
	occupant := model.MemberStableId{Assembly: "A", DeclaringClrFullName: "Acme.C1", MemberName: "Occupant"}
	if _, err := ctx.Renamer.ReserveMember(occupant, "Bar", c1ViewScope, naming.KindProperty, "", "test.Setup"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	ctx = (&Pass{}).Process(ctx)

	got1, ok := ctx.Graph.TypeByFullName("Acme.C1")
	if !ok {
		t.Fatal("Acme.C1 missing from graph")
	}
	got2, ok := ctx.Graph.TypeByFullName("Acme.C2")
	if !ok {
		t.Fatal("Acme.C2 missing from graph")
	}

	name1 := got1.ExplicitViews[0].Properties[0].EmitName
	name2 := got2.ExplicitViews[0].Properties[0].EmitName

	if name1 != "Bar2" {
		t.Errorf("C1's view clone of Bar: got %q, want %q (forced off Bar by the pre-occupied view scope)", name1, "Bar2")
	}
	if name2 != "Bar" {
		t.Errorf("C2's view clone of Bar: got %q, want %q (own independent view scope, no collision)", name2, "Bar")
	}
	if name1 == name2 {
		t.Fatalf("both types' view clones of the shared MemberStableId resolved to the same name %q; the flat-map-overwrite bug is back", name1)
	}
}

// A type's own class-surface members and its view clones of unrelated
// interface members must not collide in the applied output even though
// both pass through the same reservation map, because they are keyed by
// their own distinct scopes.
func TestClassSurfaceAndViewNamesDoNotCrossContaminate(t *testing.T) {
	ifaceId := model.TypeStableId{Assembly: "A", ClrFullName: "Acme.IFoo"}
	ifaceRef := model.NamedRef{Assembly: "A", Namespace: "Acme", SimpleName: "IFoo"}
	barId := model.MemberStableId{Assembly: "A", DeclaringClrFullName: "Acme.IFoo", MemberName: "Bar"}
	ownId := model.MemberStableId{Assembly: "A", DeclaringClrFullName: "Acme.C1", MemberName: "Widget"}

	c1Id := model.TypeStableId{Assembly: "A", ClrFullName: "Acme.C1"}
	c1 := model.TypeSymbol{
		StableId: c1Id, ClrFullName: "Acme.C1", SimpleName: "C1", Namespace: "Acme", Kind: model.Class,
		Properties: []model.Property{
			{StableId: ownId, ClrName: "Widget", EmitScope: model.ClassSurface},
		},
		ExplicitViews: []model.ExplicitView{
			{Interface: ifaceRef, InterfaceId: ifaceId, RequestedPropertyName: "As_IFoo", Properties: []model.Property{
				{StableId: barId, ClrName: "Bar", EmitScope: model.ViewOnly, SourceInterface: typeRefPtr(ifaceRef)},
			}},
		},
	}

	graph := model.NewSymbolGraph([]model.NamespaceSymbol{{Name: "Acme", Types: []model.TypeSymbol{c1}}}, []string{"A"})
	ctx := pipeline.NewContext(graph, policy.Default())
	ctx = (&Pass{}).Process(ctx)

	got, _ := ctx.Graph.TypeByFullName("Acme.C1")
	if got.Properties[0].EmitName != "Widget" {
		t.Errorf("class-surface property: got %q, want %q", got.Properties[0].EmitName, "Widget")
	}
	if got.ExplicitViews[0].Properties[0].EmitName != "Bar" {
		t.Errorf("view property: got %q, want %q", got.ExplicitViews[0].Properties[0].EmitName, "Bar")
	}
	if got.ExplicitViews[0].PropertyName == "" {
		t.Error("view's As_IFoo property name was never reserved through the Renamer")
	}
}

func typeRefPtr(r model.TypeReference) *model.TypeReference { return &r }
