package shape

import (
	"testing"

	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/policy"
)

func newCtx(g *model.SymbolGraph) *pipeline.PipelineContext {
	return pipeline.NewContext(g, policy.Default())
}

func refPtr(r model.TypeReference) *model.TypeReference { return &r }

// A class implementing a closed generic interface (IComparer<int>) with a
// method whose erased signature structurally matches the interface's own
// must NOT get a synthesized clone: the class already satisfies the
// interface on its own class surface.
func TestStructuralConformancePassSkipsClosedGenericAlreadySatisfied(t *testing.T) {
	intRef := model.NamedRef{Namespace: "System", SimpleName: "Int32"}
	ifaceId := model.TypeStableId{Assembly: "A", ClrFullName: "Acme.IComparer`1"}
	cmpMember := model.MemberStableId{Assembly: "A", DeclaringClrFullName: "Acme.IComparer`1", MemberName: "Compare"}

	iface := model.TypeSymbol{
		StableId: ifaceId, ClrFullName: "Acme.IComparer`1", SimpleName: "IComparer", Namespace: "Acme",
		Kind: model.Interface, Arity: 1,
		Generics: []model.GenericParam{{Name: "T"}},
		Methods: []model.Method{
			{StableId: cmpMember, ClrName: "Compare", ReturnType: intRef, Parameters: []model.Parameter{
				{Name: "a", Type: model.GenericParameterRef{Name: "T"}},
				{Name: "b", Type: model.GenericParameterRef{Name: "T"}},
			}},
		},
	}

	closedIfaceRef := model.NamedRef{Assembly: "A", Namespace: "Acme", SimpleName: "IComparer", Arity: 1, TypeArguments: []model.TypeReference{intRef}}

	cls := model.TypeSymbol{
		StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.IntComparer"},
		ClrFullName: "Acme.IntComparer", SimpleName: "IntComparer", Namespace: "Acme", Kind: model.Class,
		DeclaredInterfaces: []model.TypeReference{closedIfaceRef},
		Methods: []model.Method{
			{StableId: model.MemberStableId{Assembly: "A", DeclaringClrFullName: "Acme.IntComparer", MemberName: "Compare"},
				ClrName: "Compare", ReturnType: intRef, EmitScope: model.ClassSurface, Parameters: []model.Parameter{
					{Name: "a", Type: intRef},
					{Name: "b", Type: intRef},
				}},
		},
	}

	graph := model.NewSymbolGraph([]model.NamespaceSymbol{{Name: "Acme", Types: []model.TypeSymbol{iface, cls}}}, []string{"A"})
	ctx := newCtx(graph)
	ctx = (&GlobalInterfaceIndexPass{}).Process(ctx)
	ctx = (&StructuralConformancePass{}).Process(ctx)

	got, _ := ctx.Graph.TypeByFullName("Acme.IntComparer")
	for _, m := range got.Methods {
		if m.Provenance == model.FromInterface {
			t.Fatalf("unexpected synthesized clone for a member already satisfied on the class surface: %+v", m)
		}
	}
	if len(got.Methods) != 1 {
		t.Fatalf("expected exactly the class's own Compare method, got %d methods", len(got.Methods))
	}
}

// A class declaring a closed generic interface without a structurally
// matching member gets a ViewOnly clone that keeps the interface member's
// own StableId (spec's clone-retains-interface-identity invariant).
func TestStructuralConformancePassSynthesizesCloneWhenUnsatisfied(t *testing.T) {
	intRef := model.NamedRef{Namespace: "System", SimpleName: "Int32"}
	ifaceId := model.TypeStableId{Assembly: "A", ClrFullName: "Acme.IComparer`1"}
	cmpMember := model.MemberStableId{Assembly: "A", DeclaringClrFullName: "Acme.IComparer`1", MemberName: "Compare"}

	iface := model.TypeSymbol{
		StableId: ifaceId, ClrFullName: "Acme.IComparer`1", SimpleName: "IComparer", Namespace: "Acme",
		Kind: model.Interface, Arity: 1,
		Generics: []model.GenericParam{{Name: "T"}},
		Methods: []model.Method{
			{StableId: cmpMember, ClrName: "Compare", ReturnType: intRef, Parameters: []model.Parameter{
				{Name: "a", Type: model.GenericParameterRef{Name: "T"}},
				{Name: "b", Type: model.GenericParameterRef{Name: "T"}},
			}},
		},
	}

	closedIfaceRef := model.NamedRef{Assembly: "A", Namespace: "Acme", SimpleName: "IComparer", Arity: 1, TypeArguments: []model.TypeReference{intRef}}

	cls := model.TypeSymbol{
		StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.SilentComparer"},
		ClrFullName: "Acme.SilentComparer", SimpleName: "SilentComparer", Namespace: "Acme", Kind: model.Class,
		DeclaredInterfaces: []model.TypeReference{closedIfaceRef},
	}

	graph := model.NewSymbolGraph([]model.NamespaceSymbol{{Name: "Acme", Types: []model.TypeSymbol{iface, cls}}}, []string{"A"})
	ctx := newCtx(graph)
	ctx = (&GlobalInterfaceIndexPass{}).Process(ctx)
	ctx = (&StructuralConformancePass{}).Process(ctx)

	got, _ := ctx.Graph.TypeByFullName("Acme.SilentComparer")
	if len(got.Methods) != 1 {
		t.Fatalf("expected one synthesized clone, got %d methods", len(got.Methods))
	}
	clone := got.Methods[0]
	if clone.StableId != cmpMember {
		t.Errorf("clone StableId = %+v, want the interface's own %+v", clone.StableId, cmpMember)
	}
	if clone.Provenance != model.FromInterface {
		t.Errorf("clone Provenance = %v, want FromInterface", clone.Provenance)
	}
	if clone.EmitScope != model.ViewOnly {
		t.Errorf("clone EmitScope = %v, want ViewOnly", clone.EmitScope)
	}
}

// ViewPlanningPass groups every ViewOnly member sharing an interface's
// StableId into one ExplicitView and requests As_<Simple> as its property
// name for a non-generic interface, As_<Simple>_of_<arg> for a generic one.
func TestViewPlanningPassGroupsByInterfaceAndRequestsPropertyName(t *testing.T) {
	ifaceId := model.TypeStableId{Assembly: "A", ClrFullName: "Acme.IEnumerable`1"}
	itemRef := model.NamedRef{Namespace: "Acme", SimpleName: "Widget"}
	ifaceRef := model.NamedRef{Assembly: "A", Namespace: "Acme", SimpleName: "IEnumerable", Arity: 1, TypeArguments: []model.TypeReference{itemRef}}

	getEnumeratorId := model.MemberStableId{Assembly: "A", DeclaringClrFullName: "Acme.IEnumerable`1", MemberName: "GetEnumerator"}
	currentId := model.MemberStableId{Assembly: "A", DeclaringClrFullName: "Acme.IEnumerable`1", MemberName: "Current"}

	cls := model.TypeSymbol{
		StableId: model.TypeStableId{Assembly: "A", ClrFullName: "Acme.WidgetList"},
		ClrFullName: "Acme.WidgetList", SimpleName: "WidgetList", Namespace: "Acme", Kind: model.Class,
		Methods: []model.Method{
			{StableId: getEnumeratorId, ClrName: "GetEnumerator", EmitScope: model.ViewOnly, SourceInterface: refPtr(ifaceRef)},
		},
		Properties: []model.Property{
			{StableId: currentId, ClrName: "Current", EmitScope: model.ViewOnly, SourceInterface: refPtr(ifaceRef)},
		},
	}
	_ = ifaceId

	graph := model.NewSymbolGraph([]model.NamespaceSymbol{{Name: "Acme", Types: []model.TypeSymbol{cls}}}, []string{"A"})
	ctx := newCtx(graph)
	ctx = (&ViewPlanningPass{}).Process(ctx)

	got, _ := ctx.Graph.TypeByFullName("Acme.WidgetList")
	if len(got.ExplicitViews) != 1 {
		t.Fatalf("expected one ExplicitView grouping both members, got %d", len(got.ExplicitViews))
	}
	v := got.ExplicitViews[0]
	if len(v.Methods) != 1 || len(v.Properties) != 1 {
		t.Fatalf("expected the view to carry both the method and the property, got %d methods / %d properties", len(v.Methods), len(v.Properties))
	}
	const want = "As_IEnumerable_of_Widget"
	if v.RequestedPropertyName != want {
		t.Errorf("RequestedPropertyName = %q, want %q", v.RequestedPropertyName, want)
	}
	if v.PropertyName != "" {
		t.Error("PropertyName should stay empty until the Name Reservation stage reserves it through the Renamer")
	}
}
