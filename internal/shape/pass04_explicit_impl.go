package shape

import (
	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/identity"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/policy"
)

// ExplicitImplSynthesisPass adds ViewOnly clones for any interface-required
// member still missing after structural conformance (spec §4.5 pass 4),
// detected by pure StableId presence (pass 2 already added a clone for
// anything structurally unsatisfied; this pass catches anything pass 2's
// erasure-based check let through that genuinely has no class-surface or
// view member carrying the interface member's own StableId).
type ExplicitImplSynthesisPass struct{}

func (p *ExplicitImplSynthesisPass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	idx := indexFrom(ctx)
	pol := policy.Default()
	if ctx.Policy != nil {
		pol = ctx.Policy
	}

	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		if t.Kind != model.Class && t.Kind != model.Struct {
			return t
		}
		if pol.Class.ExplicitImpl == policy.ExplicitImplSkip {
			return t
		}
		haveMethod := stableIdSet(t.Methods, func(m model.Method) model.MemberStableId { return m.StableId })
		haveProp := stableIdSet(t.Properties, func(pr model.Property) model.MemberStableId { return pr.StableId })
		haveEvent := stableIdSet(t.Events, func(e model.Event) model.MemberStableId { return e.StableId })

		for _, ifaceRef := range t.DeclaredInterfaces {
			named, ok := ifaceRef.(model.NamedRef)
			if !ok {
				continue
			}
			ifaceId := identity.StableIdForNamed(named.Assembly, named)
			iface, found := idx.ByStableId(ifaceId)
			if !found {
				continue
			}
			subst := substitutionFor(iface, ifaceRef)

			var methods []model.Method
			for _, want := range iface.Methods {
				if haveMethod[want.StableId] {
					continue
				}
				clone := substituteMethod(want, subst)
				clone.StableId = want.StableId
				clone.Provenance = model.Synthesized
				clone.EmitScope = model.ViewOnly
				srcRef := ifaceRef
				clone.SourceInterface = &srcRef
				methods = append(methods, clone)
				haveMethod[want.StableId] = true
				ctx.Diagnostics.Add(diagnostics.NewInfo(diagnostics.CodeExplicitImplSynth,
					site("shape.ExplicitImplSynthesis", t.ClrFullName+"::"+want.ClrName),
					"synthesized explicit-impl clone for "+want.ClrName+" from "+iface.ClrFullName))
			}
			if len(methods) > 0 {
				t = t.WithMethods(append(t.Methods, methods...))
			}

			var props []model.Property
			for _, want := range iface.Properties {
				if haveProp[want.StableId] {
					continue
				}
				clone := substituteProperty(want, subst)
				clone.StableId = want.StableId
				clone.Provenance = model.Synthesized
				clone.EmitScope = model.ViewOnly
				srcRef := ifaceRef
				clone.SourceInterface = &srcRef
				props = append(props, clone)
				haveProp[want.StableId] = true
			}
			if len(props) > 0 {
				t = t.WithProperties(append(t.Properties, props...))
			}

			var events []model.Event
			for _, want := range iface.Events {
				if haveEvent[want.StableId] {
					continue
				}
				clone := substituteEvent(want, subst)
				clone.StableId = want.StableId
				clone.Provenance = model.Synthesized
				clone.EmitScope = model.ViewOnly
				srcRef := ifaceRef
				clone.SourceInterface = &srcRef
				events = append(events, clone)
				haveEvent[want.StableId] = true
			}
			if len(events) > 0 {
				t = t.WithEvents(append(t.Events, events...))
			}
		}
		return t
	})
	ctx.Stage = "shape.ExplicitImplSynthesis"
	return ctx
}

func stableIdSet[T any](items []T, key func(T) model.MemberStableId) map[model.MemberStableId]bool {
	out := make(map[model.MemberStableId]bool, len(items))
	for _, it := range items {
		out[key(it)] = true
	}
	return out
}
