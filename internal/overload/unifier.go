// Package overload implements the Overload Unifier (spec §4.7): after Name
// Reservation, collapse method overloads the target structural type system
// cannot distinguish by final name, generic arity, and parameter count.
package overload

import (
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/signature"
)

// Pass demotes to Omitted every method in a unification bucket except the
// widest signature. Static methods are never touched.
type Pass struct{}

func (p *Pass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		buckets := make(map[string][]int)
		for i, m := range t.Methods {
			if m.IsStatic || m.EmitScope == model.Omitted || m.EmitName == "" {
				continue
			}
			key := signature.ErasureKey(m.EmitName, len(m.Generics), len(m.Parameters))
			buckets[key] = append(buckets[key], i)
		}

		methods := append([]model.Method(nil), t.Methods...)
		for _, idxs := range buckets {
			if len(idxs) < 2 {
				continue
			}
			winner := idxs[0]
			for _, i := range idxs[1:] {
				if widerThan(methods[i], methods[winner]) {
					winner = i
				}
			}
			for _, i := range idxs {
				if i != winner {
					methods[i].EmitScope = model.Omitted
				}
			}
		}
		return t.WithMethods(methods)
	})
	ctx.Stage = "overload.Unifier"
	return ctx
}

// widerThan reports whether a is the wider (more permissive) signature,
// using fewest ref/out params, then fewest generic constraints, then
// deterministic StableId ordering (spec §4.7).
func widerThan(a, b model.Method) bool {
	ar, br := refOutCount(a), refOutCount(b)
	if ar != br {
		return ar < br
	}
	ac, bc := constraintCount(a), constraintCount(b)
	if ac != bc {
		return ac < bc
	}
	return stableIdLess(a.StableId, b.StableId)
}

func refOutCount(m model.Method) int {
	n := 0
	for _, p := range m.Parameters {
		if p.Kind == model.ParamRef || p.Kind == model.ParamOut {
			n++
		}
	}
	return n
}

func constraintCount(m model.Method) int {
	n := 0
	for _, g := range m.Generics {
		n += len(g.Constraints)
	}
	return n
}

func stableIdLess(a, b model.MemberStableId) bool {
	return a.String() < b.String()
}
