package shape

import (
	"fmt"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/naming"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/signature"
)

// ClassSurfaceDedupPass groups ClassSurface properties on each class by
// the name the Renamer would assign them (via peek), and when a group has
// more than one member, picks a single winner and demotes the rest to
// ViewOnly (spec §4.5 pass 11). Winner selection is a strict lex order on:
// non-explicit-view provenance before explicit-view; generic return type
// before non-generic; non-Object return before Object; lexicographic on
// declaring type then canonical signature.
type ClassSurfaceDedupPass struct{}

func (p *ClassSurfaceDedupPass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		if t.Kind != model.Class && t.Kind != model.Struct {
			return t
		}
		groups := make(map[string][]int)
		for i, pr := range t.Properties {
			if pr.EmitScope != model.ClassSurface {
				continue
			}
			static := model.Instance
			if pr.IsStatic {
				static = model.Static
			}
			scope := model.TypeScope(t.ClrFullName, static)
			peeked := ctx.Renamer.PeekFinalMember(scope, pr.ClrName, naming.KindProperty)
			key := scope.Key() + "\x00" + peeked
			groups[key] = append(groups[key], i)
		}

		props := append([]model.Property(nil), t.Properties...)
		for _, idxs := range groups {
			if len(idxs) < 2 {
				continue
			}
			winner := idxs[0]
			for _, i := range idxs[1:] {
				if dedupLess(props[i], props[winner]) {
					winner = i
				}
			}
			for _, i := range idxs {
				if i == winner {
					continue
				}
				props[i].EmitScope = model.ViewOnly
				ctx.Diagnostics.Add(diagnostics.NewInfo(diagnostics.CodeDedupWinner,
					site("shape.ClassSurfaceDedup", t.ClrFullName+"::"+props[i].ClrName),
					"demoted to ViewOnly in favor of "+props[winner].ClrName+" from "+props[winner].StableId.DeclaringClrFullName))
			}
		}
		return t.WithProperties(props)
	})
	ctx.Stage = "shape.ClassSurfaceDedup"
	return ctx
}

// dedupLess reports whether a ranks ahead of (wins over) b.
func dedupLess(a, b model.Property) bool {
	ak, bk := dedupKey(a), dedupKey(b)
	return ak < bk
}

func dedupKey(pr model.Property) string {
	explicitViewRank := 0
	if pr.Provenance == model.ExplicitViewProvenance {
		explicitViewRank = 1
	}
	genericRank := 1
	if referencesGenericParam(pr.PropertyType) {
		genericRank = 0
	}
	objectRank := 0
	if isObjectType(pr.PropertyType) {
		objectRank = 1
	}
	return fmt.Sprintf("%d|%d|%d|%s|%s", explicitViewRank, genericRank, objectRank,
		pr.StableId.DeclaringClrFullName, signature.PropertyOf(pr))
}

func isObjectType(ref model.TypeReference) bool {
	if ref == nil {
		return false
	}
	named, ok := ref.(model.NamedRef)
	if !ok {
		return false
	}
	return isObjectName(named.String())
}

func referencesGenericParam(ref model.TypeReference) bool {
	switch t := ref.(type) {
	case nil:
		return false
	case model.GenericParameterRef:
		return true
	case model.NamedRef:
		for _, a := range t.TypeArguments {
			if referencesGenericParam(a) {
				return true
			}
		}
		return false
	case model.NestedRef:
		return referencesGenericParam(t.Declaring)
	case model.ArrayRef:
		return referencesGenericParam(t.Element)
	case model.PointerRef:
		return referencesGenericParam(t.Pointee)
	case model.ByRefRef:
		return referencesGenericParam(t.Referenced)
	default:
		return false
	}
}
