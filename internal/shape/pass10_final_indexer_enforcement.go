package shape

import (
	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/policy"
)

// FinalIndexerEnforcementPass re-applies the pass-8 invariant to catch any
// indexer property a later pass (diamond resolution, explicit-impl
// synthesis) might have re-introduced. Any remaining ViewOnly indexer is a
// hard error (spec §4.5 pass 10, invariant 4).
type FinalIndexerEnforcementPass struct{}

func (p *FinalIndexerEnforcementPass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	pol := policy.Default()
	if ctx.Policy != nil {
		pol = ctx.Policy
	}
	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		t = planIndexers(t, pol)
		for _, pr := range t.Properties {
			if pr.IsIndexer() && pr.EmitScope == model.ViewOnly {
				ctx.Diagnostics.Add(diagnostics.NewError(diagnostics.CodeIndexerConflict,
					site("shape.FinalIndexerEnforcement", t.ClrFullName),
					"ViewOnly indexer property survived shape passes; policy must keep-as-property or convert-to-method-pair"))
			}
		}
		return t
	})
	ctx.Stage = "shape.FinalIndexerEnforcement"
	return ctx
}
