package shape

import (
	"sort"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/policy"
	"github.com/tsoniclang/tsbindgen/internal/signature"
)

// DiamondResolutionPass groups a type's methods by name and, within a
// same-name group, detects two or more distinct canonical signatures
// reaching the type from different inheritance paths (spec §4.5 pass 5).
// Policy-driven: OverloadAll keeps every variant; PreferDerived keeps the
// most-derived (here: the one with Provenance == Original, tie-broken
// deterministically) and demotes the rest to ViewOnly; Error records a
// diagnostic and leaves the shape untouched.
type DiamondResolutionPass struct{}

func (p *DiamondResolutionPass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	pol := policy.Default()
	if ctx.Policy != nil {
		pol = ctx.Policy
	}

	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		if t.Kind != model.Class && t.Kind != model.Struct {
			return t
		}
		groups := make(map[string][]int) // ClrName -> indices into t.Methods
		for i, m := range t.Methods {
			groups[m.ClrName] = append(groups[m.ClrName], i)
		}

		methods := append([]model.Method(nil), t.Methods...)
		for name, idxs := range groups {
			if len(idxs) < 2 {
				continue
			}
			bySig := make(map[string][]int)
			for _, i := range idxs {
				sig := signature.MethodOf(methods[i])
				bySig[sig] = append(bySig[sig], i)
			}
			if len(bySig) < 2 {
				continue // same signature repeated, not a diamond
			}
			switch pol.Interface.Diamond {
			case policy.DiamondError:
				ctx.Diagnostics.Add(diagnostics.NewError(diagnostics.CodeAmbiguousOverload,
					site("shape.DiamondResolution", t.ClrFullName+"::"+name),
					"diamond-inherited overload set for "+name+" left unresolved under Error policy"))
			case policy.DiamondPreferDerived:
				winnerSig := pickDiamondWinner(bySig, methods)
				for sig, is := range bySig {
					if sig == winnerSig {
						continue
					}
					for _, i := range is {
						methods[i].EmitScope = model.ViewOnly
						methods[i].Provenance = model.DiamondResolved
					}
				}
			default: // OverloadAll
				// keep all variants; reservation (§4.6) and the overload
				// unifier (§4.7) disambiguate them later.
			}
		}
		return t.WithMethods(methods)
	})
	ctx.Stage = "shape.DiamondResolution"
	return ctx
}

// pickDiamondWinner selects the most-derived signature group: prefer
// Provenance == Original, then the lexicographically smallest signature
// for determinism.
func pickDiamondWinner(bySig map[string][]int, methods []model.Method) string {
	var sigs []string
	for sig := range bySig {
		sigs = append(sigs, sig)
	}
	sort.Strings(sigs)
	for _, sig := range sigs {
		for _, i := range bySig[sig] {
			if methods[i].Provenance == model.Original {
				return sig
			}
		}
	}
	return sigs[0]
}
