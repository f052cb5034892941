// Package normalize implements the Normalize:Index stage (spec pipeline
// overview, between Load and Shape): forces the graph's by-full-name and
// by-stable-id indices to build, and flags base-type/interface references
// that don't resolve against this run's namespace set as external so later
// passes don't silently treat an unresolved reference as a local type.
package normalize

import (
	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
)

// Pass is the single Normalize:Index stage.
type Pass struct{}

func (p *Pass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// Force index construction now, ahead of the first Shape pass that
	// queries TypeByFullName/TypeByStableId, so every later stage sees a
	// consistent graph -- the indices never change once Load hands off.
	_, _ = ctx.Graph.TypeByFullName("")

	for _, t := range ctx.Graph.AllTypes() {
		if t.BaseType != nil {
			checkResolvable(ctx, t, *t.BaseType, "base type")
		}
		for _, i := range t.DeclaredInterfaces {
			checkResolvable(ctx, t, i, "interface")
		}
	}

	ctx.Stage = "normalize.Index"
	return ctx
}

func checkResolvable(ctx *pipeline.PipelineContext, t model.TypeSymbol, ref model.TypeReference, role string) {
	named, ok := ref.(model.NamedRef)
	if !ok {
		return
	}
	open := model.NamedRef{Namespace: named.Namespace, SimpleName: named.SimpleName, Arity: named.Arity}
	if _, found := ctx.Graph.TypeByFullName(open.String()); found {
		return
	}
	ctx.Diagnostics.Add(diagnostics.NewInfo(diagnostics.CodeExternalReference,
		diagnostics.Site{Component: "normalize.Index", Path: t.ClrFullName + " -> " + named.String()},
		t.ClrFullName+"'s "+role+" reference "+named.String()+" is outside this run's assembly set"))
}
