// Package importgraph builds the Import Graph (spec §4.8): for every
// emitted type, every position that can reference another type is scanned,
// recursing through constructed generics, arrays, pointers, and byrefs, and
// resolved against the namespace-type index by its open-generic CLR lookup
// key — never the constructed or assembly-qualified form.
package importgraph

import (
	"sort"
	"strings"

	"github.com/tsoniclang/tsbindgen/internal/model"
)

// ReferenceKind distinguishes why a type was referenced, used by the
// Import/Export Planner to classify value-import vs type-only (spec §4.10).
type ReferenceKind int

const (
	RefBaseType ReferenceKind = iota
	RefInterface
	RefConstraint
	RefReturnType
	RefParameterType
	RefPropertyType
	RefFieldType
	RefEventHandlerType
)

type CrossRef struct {
	SourceNamespace string
	SourceType      string
	TargetNamespace string
	TargetType      string
	TargetId        model.TypeStableId
	Kind            ReferenceKind
}

type Graph struct {
	NamespaceDeps   map[string]map[string]bool
	CrossRefs       []CrossRef
	UnresolvedKeys  map[string]bool
	ClrFullNameToNS map[string]string
	ClrFullNameToID map[string]model.TypeStableId
}

// Build scans every type in g for referenced types across every emitted
// position and assembles the import graph.
func Build(g *model.SymbolGraph) *Graph {
	out := &Graph{
		NamespaceDeps:   make(map[string]map[string]bool),
		UnresolvedKeys:  make(map[string]bool),
		ClrFullNameToNS: make(map[string]string),
		ClrFullNameToID: make(map[string]model.TypeStableId),
	}
	for _, ns := range g.Namespaces {
		for _, t := range ns.Types {
			out.ClrFullNameToNS[t.ClrFullName] = ns.Name
			out.ClrFullNameToID[t.ClrFullName] = t.StableId
		}
	}

	for _, ns := range g.Namespaces {
		for _, t := range ns.Types {
			scanType(g, out, ns.Name, t)
		}
	}
	return out
}

func scanType(g *model.SymbolGraph, out *Graph, sourceNs string, t model.TypeSymbol) {
	visit := func(ref model.TypeReference, kind ReferenceKind) {
		if ref == nil {
			return
		}
		collectRefs(ref, func(key, simpleName string) {
			recordRef(g, out, sourceNs, t.ClrFullName, key, simpleName, kind)
		})
	}

	if t.BaseType != nil {
		visit(*t.BaseType, RefBaseType)
	}
	for _, i := range t.DeclaredInterfaces {
		visit(i, RefInterface)
	}
	for _, gp := range t.Generics {
		for _, c := range gp.Constraints {
			visit(c, RefConstraint)
		}
	}
	for _, m := range t.Methods {
		if m.EmitScope == model.Omitted {
			continue
		}
		visit(m.ReturnType, RefReturnType)
		for _, p := range m.Parameters {
			visit(p.Type, RefParameterType)
		}
		for _, gp := range m.Generics {
			for _, c := range gp.Constraints {
				visit(c, RefConstraint)
			}
		}
	}
	for _, pr := range t.Properties {
		if pr.EmitScope == model.Omitted {
			continue
		}
		visit(pr.PropertyType, RefPropertyType)
		for _, p := range pr.IndexParameters {
			visit(p.Type, RefParameterType)
		}
	}
	for _, f := range t.Fields {
		if f.EmitScope == model.Omitted {
			continue
		}
		visit(f.FieldType, RefFieldType)
	}
	for _, ev := range t.Events {
		if ev.EmitScope == model.Omitted {
			continue
		}
		visit(ev.HandlerType, RefEventHandlerType)
	}
	for _, c := range t.Constructors {
		for _, p := range c.Parameters {
			visit(p.Type, RefParameterType)
		}
	}
	for _, v := range t.ExplicitViews {
		visit(v.Interface, RefInterface)
		for _, m := range v.Methods {
			visit(m.ReturnType, RefReturnType)
			for _, p := range m.Parameters {
				visit(p.Type, RefParameterType)
			}
		}
		for _, pr := range v.Properties {
			visit(pr.PropertyType, RefPropertyType)
		}
		for _, ev := range v.Events {
			visit(ev.HandlerType, RefEventHandlerType)
		}
	}
}

// collectRefs recursively descends into constructed generics, arrays,
// pointers, and byrefs and calls emit once per named type found, with its
// open-generic CLR lookup key and simple name.
func collectRefs(ref model.TypeReference, emit func(key, simpleName string)) {
	switch r := ref.(type) {
	case model.NamedRef:
		open := model.NamedRef{Namespace: r.Namespace, SimpleName: r.SimpleName, Arity: r.Arity}
		emit(open.String(), r.SimpleName)
		for _, a := range r.TypeArguments {
			collectRefs(a, emit)
		}
	case model.NestedRef:
		collectRefs(r.Declaring, emit)
	case model.ArrayRef:
		collectRefs(r.Element, emit)
	case model.PointerRef:
		collectRefs(r.Pointee, emit)
	case model.ByRefRef:
		collectRefs(r.Referenced, emit)
	}
}

func recordRef(g *model.SymbolGraph, out *Graph, sourceNs, sourceType, key, simpleName string, kind ReferenceKind) {
	if strings.ContainsAny(key, "[") || strings.Contains(key, "Culture=") || strings.Contains(key, "PublicKeyToken=") {
		out.UnresolvedKeys[key] = true
		return
	}
	targetNs, found := out.ClrFullNameToNS[key]
	if !found {
		if _, ok := g.TypeByFullName(key); !ok {
			out.UnresolvedKeys[key] = true
			return
		}
	}
	if out.NamespaceDeps[sourceNs] == nil {
		out.NamespaceDeps[sourceNs] = make(map[string]bool)
	}
	if targetNs != sourceNs {
		out.NamespaceDeps[sourceNs][targetNs] = true
	}
	out.CrossRefs = append(out.CrossRefs, CrossRef{
		SourceNamespace: sourceNs,
		SourceType:      sourceType,
		TargetNamespace: targetNs,
		TargetType:      simpleName,
		TargetId:        out.ClrFullNameToID[key],
		Kind:            kind,
	})
}

// SortedUnresolvedKeys returns the unresolved keys lex-sorted for
// deterministic diagnostic output.
func (g *Graph) SortedUnresolvedKeys() []string {
	out := make([]string, 0, len(g.UnresolvedKeys))
	for k := range g.UnresolvedKeys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
