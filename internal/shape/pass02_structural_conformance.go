package shape

import (
	"github.com/tsoniclang/tsbindgen/internal/identity"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
)

// StructuralConformancePass synthesizes ViewOnly clones for any interface
// member a class/struct does not structurally satisfy on its current class
// surface (spec §4.5 pass 2). Satisfaction is checked with TST-level
// structural assignability on erased signatures (§4.13), not CLR signature
// identity. Clones keep the interface member's own StableId.
type StructuralConformancePass struct{}

func (p *StructuralConformancePass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	idx := indexFrom(ctx)
	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		if t.Kind != model.Class && t.Kind != model.Struct {
			return t
		}
		for _, ifaceRef := range t.DeclaredInterfaces {
			named, ok := ifaceRef.(model.NamedRef)
			if !ok {
				continue
			}
			ifaceId := identity.StableIdForNamed(named.Assembly, named)
			iface, found := idx.ByStableId(ifaceId)
			if !found {
				continue // cross-assembly/unresolved; the import graph handles this later
			}
			subst := substitutionFor(iface, ifaceRef)
			t = conformMethods(t, iface, ifaceRef, subst)
			t = conformProperties(t, iface, ifaceRef, subst)
			t = conformEvents(t, iface, ifaceRef, subst)
		}
		return t
	})
	ctx.Stage = "shape.StructuralConformance"
	return ctx
}

func conformMethods(t model.TypeSymbol, iface model.TypeSymbol, ifaceRef model.TypeReference, subst model.Substitution) model.TypeSymbol {
	methods := t.Methods
	for _, want := range iface.Methods {
		substituted := substituteMethod(want, subst)
		if methodSatisfiedBy(methods, substituted) {
			continue
		}
		clone := substituted
		clone.StableId = want.StableId
		clone.Provenance = model.FromInterface
		clone.EmitScope = model.ViewOnly
		srcRef := ifaceRef
		clone.SourceInterface = &srcRef
		methods = append(methods, clone)
	}
	return t.WithMethods(methods)
}

func methodSatisfiedBy(have []model.Method, want model.Method) bool {
	for _, m := range have {
		if m.EmitScope != model.ClassSurface && m.EmitScope != model.StaticSurface {
			continue
		}
		if MethodAssignable(m, want) {
			return true
		}
	}
	return false
}

func conformProperties(t model.TypeSymbol, iface model.TypeSymbol, ifaceRef model.TypeReference, subst model.Substitution) model.TypeSymbol {
	props := t.Properties
	for _, want := range iface.Properties {
		substituted := substituteProperty(want, subst)
		if propertySatisfiedBy(props, substituted) {
			continue
		}
		clone := substituted
		clone.StableId = want.StableId
		clone.Provenance = model.FromInterface
		clone.EmitScope = model.ViewOnly
		srcRef := ifaceRef
		clone.SourceInterface = &srcRef
		props = append(props, clone)
	}
	return t.WithProperties(props)
}

func propertySatisfiedBy(have []model.Property, want model.Property) bool {
	for _, pr := range have {
		if pr.EmitScope != model.ClassSurface && pr.EmitScope != model.StaticSurface {
			continue
		}
		if PropertyAssignable(pr, want) {
			return true
		}
	}
	return false
}

func conformEvents(t model.TypeSymbol, iface model.TypeSymbol, ifaceRef model.TypeReference, subst model.Substitution) model.TypeSymbol {
	events := t.Events
	for _, want := range iface.Events {
		substituted := substituteEvent(want, subst)
		satisfied := false
		for _, ev := range events {
			if (ev.EmitScope == model.ClassSurface || ev.EmitScope == model.StaticSurface) && ev.ClrName == substituted.ClrName {
				satisfied = true
				break
			}
		}
		if satisfied {
			continue
		}
		clone := substituted
		clone.StableId = want.StableId
		clone.Provenance = model.FromInterface
		clone.EmitScope = model.ViewOnly
		srcRef := ifaceRef
		clone.SourceInterface = &srcRef
		events = append(events, clone)
	}
	return t.WithEvents(events)
}
