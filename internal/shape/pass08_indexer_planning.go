package shape

import (
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/policy"
	"github.com/tsoniclang/tsbindgen/internal/signature"
)

// IndexerPlanningPass converts indexer properties to get_/set_ method
// pairs unless a type has exactly one class-surface indexer and policy
// allows keeping a single indexer as a property (spec §4.5 pass 8).
type IndexerPlanningPass struct{}

func (p *IndexerPlanningPass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	pol := policy.Default()
	if ctx.Policy != nil {
		pol = ctx.Policy
	}
	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		return planIndexers(t, pol)
	})
	ctx.Stage = "shape.IndexerPlanning"
	return ctx
}

func planIndexers(t model.TypeSymbol, pol *policy.Policy) model.TypeSymbol {
	classSurfaceIndexerCount := 0
	for _, pr := range t.Properties {
		if pr.IsIndexer() && pr.EmitScope == model.ClassSurface {
			classSurfaceIndexerCount++
		}
	}
	keepSingle := classSurfaceIndexerCount == 1 && pol.Indexer.PropertyWhenSingle

	var props []model.Property
	var addedMethods []model.Method
	for _, pr := range t.Properties {
		if !pr.IsIndexer() {
			props = append(props, pr)
			continue
		}
		if pr.EmitScope == model.ClassSurface && keepSingle {
			props = append(props, pr)
			continue
		}
		addedMethods = append(addedMethods, indexerToMethods(pr, pol)...)
	}
	t = t.WithProperties(props)
	if len(addedMethods) > 0 {
		t = t.WithMethods(append(t.Methods, addedMethods...))
	}
	return t
}

func indexerToMethods(pr model.Property, pol *policy.Policy) []model.Method {
	methodName := pol.Indexer.MethodName
	var out []model.Method

	getParams := append([]model.Parameter(nil), pr.IndexParameters...)
	getSig := signature.Method("get_"+methodName, 0, getParams, pr.PropertyType, pr.IsStatic)
	get := model.Method{
		StableId: model.MemberStableId{
			Assembly:             pr.StableId.Assembly,
			DeclaringClrFullName: pr.StableId.DeclaringClrFullName,
			MemberName:           "get_" + methodName,
			CanonicalSignature:   getSig,
		},
		ClrName:         "get_" + methodName,
		ReturnType:      pr.PropertyType,
		Parameters:      getParams,
		IsStatic:        pr.IsStatic,
		Visibility:      pr.Visibility,
		Provenance:      model.IndexerNormalized,
		SourceInterface: pr.SourceInterface,
		EmitScope:       pr.EmitScope,
	}
	out = append(out, get)

	if pr.HasSetter {
		setParams := append(append([]model.Parameter(nil), pr.IndexParameters...), model.Parameter{Name: "value", Type: pr.PropertyType})
		setSig := signature.Method("set_"+methodName, 0, setParams, nil, pr.IsStatic)
		set := model.Method{
			StableId: model.MemberStableId{
				Assembly:             pr.StableId.Assembly,
				DeclaringClrFullName: pr.StableId.DeclaringClrFullName,
				MemberName:           "set_" + methodName,
				CanonicalSignature:   setSig,
			},
			ClrName:         "set_" + methodName,
			ReturnType:      nil,
			Parameters:      setParams,
			IsStatic:        pr.IsStatic,
			Visibility:      pr.Visibility,
			Provenance:      model.IndexerNormalized,
			SourceInterface: pr.SourceInterface,
			EmitScope:       pr.EmitScope,
		}
		out = append(out, set)
	}
	return out
}
