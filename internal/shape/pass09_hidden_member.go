package shape

import (
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/naming"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/policy"
)

// HiddenMemberPlanningPass reserves a renamed identifier for every member
// flagged IsNew (a derived member hiding a base member of the same name)
// through the Renamer, reason HiddenNewConflict (spec §4.5 pass 9).
type HiddenMemberPlanningPass struct{}

func (p *HiddenMemberPlanningPass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	pol := policy.Default()
	if ctx.Policy != nil {
		pol = ctx.Policy
	}
	suffix := pol.Class.HiddenMemberSuffix
	if suffix == "" {
		suffix = "_new"
	}

	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		methods := append([]model.Method(nil), t.Methods...)
		for i, m := range methods {
			if !m.IsNew {
				continue
			}
			static := model.Instance
			if m.IsStatic {
				static = model.Static
			}
			scope := model.TypeScope(t.ClrFullName, static)
			name, err := ctx.Renamer.ReserveMember(m.StableId, m.ClrName+suffix, scope, naming.KindMethod, "", "shape.HiddenMemberPlanning")
			if err == nil {
				methods[i].EmitName = name
			}
		}

		props := append([]model.Property(nil), t.Properties...)
		for i, pr := range props {
			if !pr.IsNew {
				continue
			}
			static := model.Instance
			if pr.IsStatic {
				static = model.Static
			}
			scope := model.TypeScope(t.ClrFullName, static)
			name, err := ctx.Renamer.ReserveMember(pr.StableId, pr.ClrName+suffix, scope, naming.KindProperty, "", "shape.HiddenMemberPlanning")
			if err == nil {
				props[i].EmitName = name
			}
		}

		return t.WithMethods(methods).WithProperties(props)
	})
	ctx.Stage = "shape.HiddenMemberPlanning"
	return ctx
}
