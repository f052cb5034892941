package shape

import (
	"github.com/tsoniclang/tsbindgen/internal/identity"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/signature"
)

// BaseOverloadAdditionPass re-adds, on a derived class D that overrides
// any method named N from base B, every N-signature present on B but
// missing on D — the TST requires the whole overload set on D once D
// declares any overload of N (spec §4.5 pass 6). Added methods get a new
// StableId scoped to D and Provenance BaseOverload.
type BaseOverloadAdditionPass struct{}

func (p *BaseOverloadAdditionPass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		if t.Kind != model.Class || t.BaseType == nil {
			return t
		}
		named, ok := (*t.BaseType).(model.NamedRef)
		if !ok {
			return t
		}
		baseId := identity.StableIdForNamed(named.Assembly, named)
		base, found := ctx.Graph.TypeByStableId(baseId)
		if !found {
			return t
		}
		subst := substitutionFor(base, *t.BaseType)

		dNames := make(map[string]map[string]bool) // name -> set of canonical sigs present on D
		for _, m := range t.Methods {
			if dNames[m.ClrName] == nil {
				dNames[m.ClrName] = make(map[string]bool)
			}
			dNames[m.ClrName][signature.MethodOf(m)] = true
		}

		bByName := make(map[string][]model.Method)
		for _, m := range base.Methods {
			if m.EmitScope != model.ClassSurface && m.EmitScope != model.StaticSurface {
				continue
			}
			bByName[m.ClrName] = append(bByName[m.ClrName], m)
		}

		var added []model.Method
		for name, sigsOnD := range dNames {
			baseVariants, ok := bByName[name]
			if !ok {
				continue
			}
			for _, bm := range baseVariants {
				substituted := substituteMethod(bm, subst)
				sig := signature.MethodOf(substituted)
				if sigsOnD[sig] {
					continue
				}
				clone := substituted
				clone.StableId = model.MemberStableId{
					Assembly:             t.StableId.Assembly,
					DeclaringClrFullName: t.ClrFullName,
					MemberName:           clone.ClrName,
					CanonicalSignature:   sig,
				}
				clone.Provenance = model.BaseOverload
				clone.EmitScope = model.ClassSurface
				clone.SourceInterface = nil
				added = append(added, clone)
				sigsOnD[sig] = true
			}
		}
		if len(added) == 0 {
			return t
		}
		return t.WithMethods(append(t.Methods, added...))
	})
	ctx.Stage = "shape.BaseOverloadAddition"
	return ctx
}
