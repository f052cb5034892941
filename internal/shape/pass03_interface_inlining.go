package shape

import (
	"github.com/tsoniclang/tsbindgen/internal/identity"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/signature"
)

// InterfaceInliningPass walks each interface's base-interface closure
// depth-first (memoized per interface, see inlineClosure) and inlines every inherited member directly onto it, clearing the
// DeclaredInterfaces list (spec §4.5 pass 3). Dedup is by canonical
// signature for methods/events, by name for non-indexer properties (the
// TST forbids property overloading), and by full signature for indexers.
type InterfaceInliningPass struct{}

type inlinedMembers struct {
	methods    []model.Method
	properties []model.Property
	events     []model.Event
}

func (p *InterfaceInliningPass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	idx := indexFrom(ctx)
	memo := make(map[model.TypeStableId]inlinedMembers)

	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		if t.Kind != model.Interface {
			return t
		}
		inlined := inlineClosure(t.StableId, idx, memo, map[model.TypeStableId]bool{})
		t = t.WithMethods(dedupMethods(inlined.methods))
		t = t.WithProperties(dedupProperties(inlined.properties))
		t = t.WithEvents(dedupEvents(inlined.events))
		t = t.WithDeclaredInterfaces(nil)
		return t
	})
	ctx.Stage = "shape.InterfaceInlining"
	return ctx
}

// inlineClosure returns the full set of members reachable from iface
// (including iface's own), substituted along the way so every reference
// is expressed in terms of iface's own generic parameters. Memoized per
// StableId; visiting guards against a malformed cyclic interface graph.
func inlineClosure(id model.TypeStableId, idx *InterfaceIndex, memo map[model.TypeStableId]inlinedMembers, visiting map[model.TypeStableId]bool) inlinedMembers {
	if cached, ok := memo[id]; ok {
		return cached
	}
	t, ok := idx.ByStableId(id)
	if !ok || visiting[id] {
		return inlinedMembers{}
	}
	visiting[id] = true
	defer delete(visiting, id)

	result := inlinedMembers{
		methods:    append([]model.Method(nil), t.Methods...),
		properties: append([]model.Property(nil), t.Properties...),
		events:     append([]model.Event(nil), t.Events...),
	}

	for _, baseRef := range t.DeclaredInterfaces {
		named, ok := baseRef.(model.NamedRef)
		if !ok {
			continue
		}
		baseId := identity.StableIdForNamed(named.Assembly, named)
		base, found := idx.ByStableId(baseId)
		if !found {
			continue
		}
		subst := substitutionFor(base, baseRef)
		baseInlined := inlineClosure(baseId, idx, memo, visiting)
		for _, m := range baseInlined.methods {
			result.methods = append(result.methods, substituteMethod(m, subst))
		}
		for _, pr := range baseInlined.properties {
			result.properties = append(result.properties, substituteProperty(pr, subst))
		}
		for _, ev := range baseInlined.events {
			result.events = append(result.events, substituteEvent(ev, subst))
		}
	}

	memo[id] = result
	return result
}

func dedupMethods(in []model.Method) []model.Method {
	seen := make(map[string]bool)
	var out []model.Method
	for _, m := range in {
		key := signature.MethodOf(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

func dedupProperties(in []model.Property) []model.Property {
	seenName := make(map[string]bool)
	seenIndexer := make(map[string]bool)
	var out []model.Property
	for _, pr := range in {
		if pr.IsIndexer() {
			key := signature.PropertyOf(pr)
			if seenIndexer[key] {
				continue
			}
			seenIndexer[key] = true
			out = append(out, pr)
			continue
		}
		if seenName[pr.ClrName] {
			continue
		}
		seenName[pr.ClrName] = true
		out = append(out, pr)
	}
	return out
}

func dedupEvents(in []model.Event) []model.Event {
	seen := make(map[string]bool)
	var out []model.Event
	for _, ev := range in {
		key := signature.EventOf(ev)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ev)
	}
	return out
}
