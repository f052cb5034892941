// Package pipeline wires the Load → Normalize → Shape → NameReserve → Plan
// → Gate stages together using the teacher's Processor/PipelineContext
// shape, generalized to carry the binding generator's context objects
// instead of a token stream and AST.
package pipeline

import (
	"github.com/google/uuid"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/naming"
	"github.com/tsoniclang/tsbindgen/internal/policy"
)

// PipelineContext is the one mutable carrier threaded through every stage.
// The Renamer and Diagnostics are the two process-wide mutable objects the
// spec calls out (§5); Graph is replaced wholesale by each stage rather
// than mutated (§9 deep immutability).
type PipelineContext struct {
	// RunID identifies this invocation of the pipeline. Generated once in
	// NewContext and carried read-only from there; every diagnostic and
	// the emission plan cache entry trace back to the run that produced
	// them through this value.
	RunID string

	Graph       *model.SymbolGraph
	Policy      *policy.Policy
	Renamer     *naming.Renamer
	Diagnostics *diagnostics.Bag

	// ImportGraph, ImportPlan, EmitOrder are populated by the Plan stages
	// and consumed by the Gate and Emit boundary. Left untyped here (any)
	// to avoid a pipeline -> planning import cycle; stage code type-asserts.
	ImportGraph any
	ImportPlan  any
	EmitOrder   any

	// Stage names the last Processor that ran, for diagnostic site
	// attribution when a stage fails before producing a more specific site.
	Stage string

	// Fatal holds a Load-boundary failure that must bubble up without
	// attempting partial processing of the offending assembly (spec §7).
	Fatal error

	// Extra carries auxiliary state a group of stages shares but that
	// doesn't warrant its own typed field (e.g. the Shape package's
	// interface index, built by pass 1 and consulted by later passes).
	Extra map[string]any
}

// NewContext builds the initial context for a run.
func NewContext(graph *model.SymbolGraph, pol *policy.Policy) *PipelineContext {
	r := naming.New()
	if pol != nil {
		r.AdoptStyle(naming.StyleTransformFor(pol.Emission.NameTransform))
	}
	runID := uuid.NewString()
	bag := diagnostics.NewBag()
	bag.SetRunID(runID)
	return &PipelineContext{
		RunID:       runID,
		Graph:       graph,
		Policy:      pol,
		Renamer:     r,
		Diagnostics: bag,
		Extra:       make(map[string]any),
	}
}
