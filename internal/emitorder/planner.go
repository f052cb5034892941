// Package emitorder implements the Emission-Order Planner (spec §4.11): a
// total, deterministic order over namespaces, types, and members that both
// the Name Reservation stage (ordering what gets reserved first, over CLR
// names) and the final Emit stage (ordering what gets written, over final
// names) consult. Keeping one ordering function shared between the two
// keeps the "kind/name tiebreaker" identical in both places, as the spec
// requires.
package emitorder

import (
	"sort"

	"github.com/tsoniclang/tsbindgen/internal/model"
)

// MemberTier orders member kinds: Constructor < Field < Property < Event < Method.
func MemberTier(kind string) int {
	switch kind {
	case "Constructor":
		return 0
	case "Field":
		return 1
	case "Property":
		return 2
	case "Event":
		return 3
	case "Method":
		return 4
	default:
		return 99
	}
}

// OrderTypes sorts types by kind-tier, then the name produced by nameOf,
// then arity. nameOf is ClrName's SimpleName during reservation (final
// names don't exist yet) and EmitName once the Renamer has run.
func OrderTypes(types []model.TypeSymbol, nameOf func(model.TypeSymbol) string) []model.TypeSymbol {
	out := append([]model.TypeSymbol(nil), types...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ta, tb := a.Kind.EmissionTier(), b.Kind.EmissionTier(); ta != tb {
			return ta < tb
		}
		if na, nb := nameOf(a), nameOf(b); na != nb {
			return na < nb
		}
		return a.Arity < b.Arity
	})
	return out
}

// memberEntry is a kind-tagged, order-ready view over one of a type's five
// member families, letting OrderMembers sort across families uniformly.
type memberEntry struct {
	tier     int
	name     string
	instance bool
	sig      string
	index    int
}

// OrderMembers sorts the combined member families of a single type by
// kind-tier, instance before static, then the name produced by nameOf, then
// canonical signature. Indexes returned in MemberOrder refer back to the
// original per-family slice position.
type MemberOrder struct {
	Constructors []int
	Fields       []int
	Properties   []int
	Events       []int
	Methods      []int
}

func OrderMembers(t model.TypeSymbol, methodName func(model.Method) string, propName func(model.Property) string, fieldName func(model.Field) string, eventName func(model.Event) string, sig func(kind string, index int) string) MemberOrder {
	var entries []memberEntry
	for i, c := range t.Constructors {
		entries = append(entries, memberEntry{tier: MemberTier("Constructor"), name: "", instance: true, sig: sig("Constructor", i), index: i})
		_ = c
	}
	for i, f := range t.Fields {
		entries = append(entries, memberEntry{tier: MemberTier("Field"), name: fieldName(f), instance: !f.IsStatic, sig: sig("Field", i), index: i})
	}
	for i, pr := range t.Properties {
		entries = append(entries, memberEntry{tier: MemberTier("Property"), name: propName(pr), instance: !pr.IsStatic, sig: sig("Property", i), index: i})
	}
	for i, ev := range t.Events {
		entries = append(entries, memberEntry{tier: MemberTier("Event"), name: eventName(ev), instance: !ev.IsStatic, sig: sig("Event", i), index: i})
	}
	for i, m := range t.Methods {
		entries = append(entries, memberEntry{tier: MemberTier("Method"), name: methodName(m), instance: !m.IsStatic, sig: sig("Method", i), index: i})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}
		if a.instance != b.instance {
			return a.instance // instance before static
		}
		if a.name != b.name {
			return a.name < b.name
		}
		return a.sig < b.sig
	})

	var out MemberOrder
	byTier := map[int]*[]int{
		MemberTier("Constructor"): &out.Constructors,
		MemberTier("Field"):       &out.Fields,
		MemberTier("Property"):    &out.Properties,
		MemberTier("Event"):       &out.Events,
		MemberTier("Method"):      &out.Methods,
	}
	for _, e := range entries {
		slot := byTier[e.tier]
		*slot = append(*slot, e.index)
	}
	return out
}

// Plan is the Emission-Order Planner's top-level output: the final,
// post-rename order the Emit boundary's printer walks, never re-deriving
// it from the graph. Built once, after Name Reservation and the Overload
// Unifier have both run and every EmitName is final.
type Plan struct {
	Namespaces       []string
	TypesByNamespace map[string][]model.TypeStableId
	MembersByType    map[model.TypeStableId]MemberOrder
}

// Build derives the final Plan from g, keyed on EmitName (the Renamer has
// already run by the time this is called).
func Build(g *model.SymbolGraph) *Plan {
	plan := &Plan{
		Namespaces:       OrderNamespaces(g),
		TypesByNamespace: make(map[string][]model.TypeStableId),
		MembersByType:    make(map[model.TypeStableId]MemberOrder),
	}
	byNamespace := make(map[string][]model.TypeSymbol)
	for _, ns := range g.Namespaces {
		byNamespace[ns.Name] = append(byNamespace[ns.Name], ns.Types...)
	}
	nameOf := func(t model.TypeSymbol) string { return t.EmitName }
	for _, nsName := range plan.Namespaces {
		ordered := OrderTypes(byNamespace[nsName], nameOf)
		for _, t := range ordered {
			plan.TypesByNamespace[nsName] = append(plan.TypesByNamespace[nsName], t.StableId)
			plan.MembersByType[t.StableId] = OrderMembers(t,
				func(m model.Method) string { return m.EmitName },
				func(pr model.Property) string { return pr.EmitName },
				func(f model.Field) string { return f.EmitName },
				func(ev model.Event) string { return ev.EmitName },
				func(kind string, index int) string { return memberSig(t, kind, index) },
			)
		}
	}
	return plan
}

func memberSig(t model.TypeSymbol, kind string, index int) string {
	switch kind {
	case "Constructor":
		return t.Constructors[index].StableId.CanonicalSignature
	case "Field":
		return t.Fields[index].StableId.CanonicalSignature
	case "Property":
		return t.Properties[index].StableId.CanonicalSignature
	case "Event":
		return t.Events[index].StableId.CanonicalSignature
	case "Method":
		return t.Methods[index].StableId.CanonicalSignature
	default:
		return ""
	}
}

// OrderNamespaces returns namespace names in lex order, deduplicated.
func OrderNamespaces(g *model.SymbolGraph) []string {
	seen := make(map[string]bool)
	var names []string
	for _, ns := range g.Namespaces {
		if !seen[ns.Name] {
			seen[ns.Name] = true
			names = append(names, ns.Name)
		}
	}
	sort.Strings(names)
	return names
}
