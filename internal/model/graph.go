package model

import "sort"

// NamespaceSymbol groups the types that share a namespace name. Multiple
// assemblies can contribute types to the same namespace name; their types
// simply coexist in Types (spec §3).
type NamespaceSymbol struct {
	Name                 string
	Types                []TypeSymbol
	ContributingAssemblies []string
}

// SymbolGraph is the ownership root: an ordered set of namespaces plus the
// source-assembly identities that contributed to them. It is produced by
// Load, re-derived functionally at every later stage, and consumed by
// Emit. Lazily-built indices are carried as unexported fields and rebuilt
// on demand rather than invalidated piecemeal (spec §9).
type SymbolGraph struct {
	Namespaces []NamespaceSymbol
	Assemblies []string

	typeByFullName    map[string]TypeSymbol
	typeByStableId    map[TypeStableId]TypeSymbol
	interfaceByStableId map[TypeStableId]TypeSymbol
	indexBuilt        bool
}

// NewSymbolGraph builds a graph from namespaces, sorted lexically by name
// so that iteration order never leaks hash-order nondeterminism (spec §5).
func NewSymbolGraph(namespaces []NamespaceSymbol, assemblies []string) *SymbolGraph {
	sorted := append([]NamespaceSymbol(nil), namespaces...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	g := &SymbolGraph{Namespaces: sorted, Assemblies: append([]string(nil), assemblies...)}
	g.buildIndices()
	return g
}

func (g *SymbolGraph) buildIndices() {
	g.typeByFullName = make(map[string]TypeSymbol)
	g.typeByStableId = make(map[TypeStableId]TypeSymbol)
	g.interfaceByStableId = make(map[TypeStableId]TypeSymbol)
	for _, ns := range g.Namespaces {
		for _, t := range ns.Types {
			g.typeByFullName[t.ClrFullName] = t
			g.typeByStableId[t.StableId] = t
			if t.Kind == Interface {
				g.interfaceByStableId[t.StableId] = t
			}
		}
	}
	g.indexBuilt = true
}

func (g *SymbolGraph) ensureIndices() {
	if !g.indexBuilt {
		g.buildIndices()
	}
}

// TypeByFullName looks up a type by its CLR full name (no assembly
// qualification — invariant 6).
func (g *SymbolGraph) TypeByFullName(fullName string) (TypeSymbol, bool) {
	g.ensureIndices()
	t, ok := g.typeByFullName[fullName]
	return t, ok
}

func (g *SymbolGraph) TypeByStableId(id TypeStableId) (TypeSymbol, bool) {
	g.ensureIndices()
	t, ok := g.typeByStableId[id]
	return t, ok
}

func (g *SymbolGraph) InterfaceByStableId(id TypeStableId) (TypeSymbol, bool) {
	g.ensureIndices()
	t, ok := g.interfaceByStableId[id]
	return t, ok
}

// AllTypes returns every type across every namespace, in namespace-then
// declaration order (not yet final-name order — that's the Emission-Order
// Planner's job).
func (g *SymbolGraph) AllTypes() []TypeSymbol {
	var out []TypeSymbol
	for _, ns := range g.Namespaces {
		out = append(out, ns.Types...)
	}
	return out
}

// WithNamespaces returns a new graph with namespaces replaced — the
// mechanism every pass uses to "derive" the next graph (spec §3 lifecycle,
// §5 "passes never mutate graph data belonging to earlier passes").
func (g *SymbolGraph) WithNamespaces(namespaces []NamespaceSymbol) *SymbolGraph {
	return NewSymbolGraph(namespaces, g.Assemblies)
}

// MapTypes returns a new graph where every type in every namespace has been
// passed through fn. The common shape of a Shape pass: fn receives a type
// and returns its replacement (spec §4.5 "each pass takes G -> G").
func (g *SymbolGraph) MapTypes(fn func(ns NamespaceSymbol, t TypeSymbol) TypeSymbol) *SymbolGraph {
	newNamespaces := make([]NamespaceSymbol, len(g.Namespaces))
	for i, ns := range g.Namespaces {
		newTypes := make([]TypeSymbol, len(ns.Types))
		for j, t := range ns.Types {
			newTypes[j] = fn(ns, t)
		}
		newNs := ns
		newNs.Types = newTypes
		newNamespaces[i] = newNs
	}
	return g.WithNamespaces(newNamespaces)
}
