package shape

import (
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
)

// GlobalInterfaceIndexPass builds the (assembly, clr_full_name) -> interface
// TypeSymbol index every later pass consults to inline or resolve interface
// members (spec §4.5 pass 1). It is build-only: the graph itself is
// returned unchanged.
type GlobalInterfaceIndexPass struct{}

func (p *GlobalInterfaceIndexPass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	idx := NewInterfaceIndex()
	for _, t := range ctx.Graph.AllTypes() {
		if t.Kind == model.Interface {
			idx.add(t)
		}
	}
	if ctx.Extra == nil {
		ctx.Extra = make(map[string]any)
	}
	ctx.Extra[extraInterfaceIndexKey] = idx
	ctx.Stage = "shape.GlobalInterfaceIndex"
	return ctx
}
