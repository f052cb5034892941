// Package shape implements the fifteen Shape passes (spec §4.5) that
// lower the CLR-flavored symbol graph into a TST-compatible surface: each
// pass is a pipeline.Processor taking G -> G, run in the fixed order the
// spec prescribes.
package shape

import (
	"sort"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
)

// InterfaceIndex maps an interface's TypeStableId (and its CLR full name)
// to its TypeSymbol — the output of pass 1, consulted by every later pass
// that inlines or resolves interface members.
type InterfaceIndex struct {
	byStableId map[model.TypeStableId]model.TypeSymbol
	byFullName map[string]model.TypeSymbol
}

func NewInterfaceIndex() *InterfaceIndex {
	return &InterfaceIndex{
		byStableId: make(map[model.TypeStableId]model.TypeSymbol),
		byFullName: make(map[string]model.TypeSymbol),
	}
}

func (idx *InterfaceIndex) add(t model.TypeSymbol) {
	idx.byStableId[t.StableId] = t
	idx.byFullName[t.ClrFullName] = t
}

func (idx *InterfaceIndex) ByStableId(id model.TypeStableId) (model.TypeSymbol, bool) {
	t, ok := idx.byStableId[id]
	return t, ok
}

func (idx *InterfaceIndex) ByFullName(name string) (model.TypeSymbol, bool) {
	t, ok := idx.byFullName[name]
	return t, ok
}

const extraInterfaceIndexKey = "shape.interfaceIndex"

// indexFrom fetches the interface index pass 1 built for this run out of
// ctx.Extra, building an empty one if pass 1 hasn't run yet (tests that
// exercise a single pass in isolation).
func indexFrom(ctx *pipeline.PipelineContext) *InterfaceIndex {
	if ctx.Extra == nil {
		ctx.Extra = make(map[string]any)
	}
	if idx, ok := ctx.Extra[extraInterfaceIndexKey].(*InterfaceIndex); ok {
		return idx
	}
	idx := NewInterfaceIndex()
	ctx.Extra[extraInterfaceIndexKey] = idx
	return idx
}

func site(component, path string) diagnostics.Site {
	return diagnostics.Site{Component: component, Path: path}
}

// sortedNamespaceNames returns the graph's namespace names lex-sorted —
// every pass that must iterate types in a deterministic order starts here
// (spec §5 "lex-sorting at every boundary").
func sortedNamespaceNames(g *model.SymbolGraph) []string {
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

// Run executes all fifteen passes in the fixed spec order against ctx.Graph.
func Run(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	p := pipeline.New(
		&GlobalInterfaceIndexPass{},
		&StructuralConformancePass{},
		&InterfaceInliningPass{},
		&ExplicitImplSynthesisPass{},
		&DiamondResolutionPass{},
		&BaseOverloadAdditionPass{},
		&StaticSideAnalysisPass{},
		&IndexerPlanningPass{},
		&HiddenMemberPlanningPass{},
		&FinalIndexerEnforcementPass{},
		&ClassSurfaceDedupPass{},
		&ConstraintClosurePass{},
		&ReturnTypeOverloadPass{},
		&ViewPlanningPass{},
		&MemberDeduplicationPass{},
	)
	return p.Run(ctx)
}
