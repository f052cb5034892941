package shape

import (
	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/policy"
)

// ConstraintClosurePass resolves each generic parameter's constraint list
// to its closed, merged form and validates it against TST representability
// (spec §4.5 pass 12). Constraints arriving from more than one path to the
// same head type (possible after diamond-heavy interface inlining) are
// merged per policy.ConstraintMergePolicy: Intersection keeps the first
// occurrence per head, Union keeps all and warns, PreferLeft keeps the
// first occurrence without comment.
type ConstraintClosurePass struct{}

func (p *ConstraintClosurePass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	pol := policy.Default()
	if ctx.Policy != nil {
		pol = ctx.Policy
	}

	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		if len(t.Generics) == 0 {
			return t
		}
		generics := append([]model.GenericParam(nil), t.Generics...)
		for i, gp := range generics {
			generics[i].Constraints = closeConstraints(ctx, pol, t, gp)

			if gp.RequiresStruct && gp.RequiresClass {
				ctx.Diagnostics.Add(diagnostics.NewError(diagnostics.CodeConstraintLoss,
					site("shape.ConstraintClosure", t.ClrFullName+"<"+gp.Name+">"),
					"generic parameter "+gp.Name+" carries both struct and class special constraints"))
			}
			for _, c := range generics[i].Constraints {
				if !representableInTST(c) {
					ctx.Diagnostics.Add(diagnostics.NewWarning(diagnostics.CodeConstraintUnrepresentable,
						site("shape.ConstraintClosure", t.ClrFullName+"<"+gp.Name+">"),
						"constraint "+c.String()+" on "+gp.Name+" is not representable in the target structural type system"))
				}
			}
			if gp.RequiresNew {
				ctx.Diagnostics.Add(diagnostics.NewWarning(diagnostics.CodeConstraintUnrepresentable,
					site("shape.ConstraintClosure", t.ClrFullName+"<"+gp.Name+">"),
					"new() special constraint on "+gp.Name+" is not representable in the target structural type system"))
			}
		}
		return t.WithGenerics(generics)
	})
	ctx.Stage = "shape.ConstraintClosure"
	return ctx
}

func closeConstraints(ctx *pipeline.PipelineContext, pol *policy.Policy, t model.TypeSymbol, gp model.GenericParam) []model.TypeReference {
	groups := make(map[string][]model.TypeReference)
	var order []string
	for _, c := range gp.Constraints {
		head := Erase(c).name
		if _, seen := groups[head]; !seen {
			order = append(order, head)
		}
		groups[head] = append(groups[head], c)
	}

	var out []model.TypeReference
	for _, head := range order {
		members := groups[head]
		if len(members) == 1 {
			out = append(out, members[0])
			continue
		}
		switch pol.Constraint.Merge {
		case policy.ConstraintMergeUnion:
			out = append(out, members...)
			ctx.Diagnostics.Add(diagnostics.NewWarning(diagnostics.CodeConstraintMergeUnion,
				site("shape.ConstraintClosure", t.ClrFullName+"<"+gp.Name+">"),
				"merged "+head+" constraints via union; combined constraint set may be unsound"))
		default: // Intersection, PreferLeft
			out = append(out, members[0])
		}
	}
	return out
}

func representableInTST(ref model.TypeReference) bool {
	switch ref.(type) {
	case model.PointerRef, model.ByRefRef:
		return false
	default:
		return true
	}
}
