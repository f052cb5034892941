package shape

import (
	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/signature"
)

// ReturnTypeOverloadPass buckets methods by their signature excluding
// return type; the TST cannot overload solely on return type, so a bucket
// with more than one distinct return type keeps a single winner and
// demotes the rest to ViewOnly (spec §4.5 pass 13). Static methods are
// never touched. Among non-void return types, a plain by-value return
// beats a ref/byref return; ties break on declaring type then canonical
// signature.
type ReturnTypeOverloadPass struct{}

func (p *ReturnTypeOverloadPass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		if t.Kind != model.Class && t.Kind != model.Struct {
			return t
		}
		groups := make(map[string][]int)
		for i, m := range t.Methods {
			if m.IsStatic || m.EmitScope != model.ClassSurface {
				continue
			}
			key := signature.SignatureExcludingReturn(m.ClrName, len(m.Generics), m.Parameters, m.IsStatic, "")
			groups[key] = append(groups[key], i)
		}

		methods := append([]model.Method(nil), t.Methods...)
		for _, idxs := range groups {
			if len(idxs) < 2 {
				continue
			}
			distinctReturns := make(map[string]bool)
			for _, i := range idxs {
				distinctReturns[returnTypeKey(methods[i].ReturnType)] = true
			}
			if len(distinctReturns) < 2 {
				continue
			}
			winner := idxs[0]
			for _, i := range idxs[1:] {
				if returnOverloadLess(methods[i], methods[winner]) {
					winner = i
				}
			}
			for _, i := range idxs {
				if i == winner {
					continue
				}
				methods[i].EmitScope = model.ViewOnly
				ctx.Diagnostics.Add(diagnostics.NewInfo(diagnostics.CodeOverloadOmitted,
					site("shape.ReturnTypeOverload", t.ClrFullName+"::"+methods[i].ClrName),
					"demoted to ViewOnly; return type differs from "+methods[winner].ClrName+" in the same overload group"))
			}
		}
		return t.WithMethods(methods)
	})
	ctx.Stage = "shape.ReturnTypeOverload"
	return ctx
}

func returnTypeKey(ref model.TypeReference) string {
	if ref == nil {
		return "void"
	}
	return ref.String()
}

func returnOverloadLess(a, b model.Method) bool {
	aVoid, bVoid := a.ReturnType == nil, b.ReturnType == nil
	if aVoid != bVoid {
		return bVoid // non-void beats void
	}
	_, aRef := a.ReturnType.(model.ByRefRef)
	_, bRef := b.ReturnType.(model.ByRefRef)
	if aRef != bRef {
		return bRef // non-ref beats ref
	}
	ak := a.StableId.DeclaringClrFullName + "\x00" + signature.MethodOf(a)
	bk := b.StableId.DeclaringClrFullName + "\x00" + signature.MethodOf(b)
	return ak < bk
}
