package shape

import (
	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/identity"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/naming"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/policy"
)

// StaticSideAnalysisPass detects name collisions between a derived class's
// static members and its base's static members — the TST has no static
// inheritance, so these land in the same flat static scope (spec §4.5 pass
// 7). Under AutoRename the colliding derived member is reserved immediately
// through the Renamer with reason StaticSideNameCollision (scenario S6);
// Error records a diagnostic and leaves the shape untouched; Analyze only
// warns.
type StaticSideAnalysisPass struct{}

func (p *StaticSideAnalysisPass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	pol := policy.Default()
	if ctx.Policy != nil {
		pol = ctx.Policy
	}

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
		baseStaticNames := make(map[string]bool)
		for _, m := range base.Methods {
			if m.IsStatic {
				baseStaticNames[m.ClrName] = true
			}
		}
		for _, pr := range base.Properties {
			if pr.IsStatic {
				baseStaticNames[pr.ClrName] = true
			}
		}
		for _, f := range base.Fields {
			if f.IsStatic {
				baseStaticNames[f.ClrName] = true
			}
		}

		methods := append([]model.Method(nil), t.Methods...)
		for i, m := range methods {
			if !m.IsStatic || !baseStaticNames[m.ClrName] {
				continue
			}
			handleStaticCollision(ctx, pol, t, m.ClrName, m.StableId, &methods[i].EmitName)
		}
		return t.WithMethods(methods)
	})
	ctx.Stage = "shape.StaticSideAnalysis"
	return ctx
}

func handleStaticCollision(ctx *pipeline.PipelineContext, pol *policy.Policy, t model.TypeSymbol, clrName string, id model.MemberStableId, emitName *string) {
	switch pol.StaticSide.Action {
	case policy.StaticSideError:
		ctx.Diagnostics.Add(diagnostics.NewError(diagnostics.CodeStaticSideCollision,
			site("shape.StaticSideAnalysis", t.ClrFullName+"::"+clrName),
			"static member "+clrName+" collides with an inherited static member of the same name"))
	case policy.StaticSideAnalyze:
		ctx.Diagnostics.Add(diagnostics.NewWarning(diagnostics.CodeStaticSideCollision,
			site("shape.StaticSideAnalysis", t.ClrFullName+"::"+clrName),
			"static member "+clrName+" collides with an inherited static member of the same name"))
	default: // AutoRename
		scope := model.TypeScope(t.ClrFullName, model.Static)
		name, err := ctx.Renamer.ReserveMember(id, clrName+"_static", scope, naming.KindMethod, "", "shape.StaticSideAnalysis")
		if err == nil {
			*emitName = name
		}
		ctx.Diagnostics.Add(diagnostics.NewInfo(diagnostics.CodeStaticSideCollision,
			site("shape.StaticSideAnalysis", t.ClrFullName+"::"+clrName),
			"renamed static member "+clrName+" to avoid inherited static collision"))
	}
}
