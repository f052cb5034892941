// Package bindgen is the public facade tying the whole pipeline together:
// Load -> Normalize -> Shape (15 passes) -> NameReserve -> OverloadUnifier
// -> ImportGraph -> ImportExportPlanner -> EmissionOrderPlanner ->
// ConstraintAuditor -> ValidationGate -> Emit. Modeled on the teacher's
// pkg/cli/entry.go orchestration style: one function sequencing stages,
// each stage's own package owning its logic.
package bindgen

import (
	"context"
	"fmt"
	"os"

	"github.com/tsoniclang/tsbindgen/internal/constraintaudit"
	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/emitboundary"
	"github.com/tsoniclang/tsbindgen/internal/emitcache"
	"github.com/tsoniclang/tsbindgen/internal/emitorder"
	"github.com/tsoniclang/tsbindgen/internal/gate"
	"github.com/tsoniclang/tsbindgen/internal/importgraph"
	"github.com/tsoniclang/tsbindgen/internal/importplan"
	"github.com/tsoniclang/tsbindgen/internal/loadboundary"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/normalize"
	"github.com/tsoniclang/tsbindgen/internal/overload"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
	"github.com/tsoniclang/tsbindgen/internal/policy"
	"github.com/tsoniclang/tsbindgen/internal/reserve"
	"github.com/tsoniclang/tsbindgen/internal/shape"
	"github.com/tsoniclang/tsbindgen/internal/telemetry"
)

// Options configures one pipeline run.
type Options struct {
	// Paths are the manifest/assembly paths handed to the Load boundary.
	Paths []string
	// Source overrides the default loadboundary.ManifestSource, for tests
	// that want to hand the pipeline a graph directly.
	Source loadboundary.Source
	// Policy overrides the default policy; when nil, policy.Default() is used.
	Policy *policy.Policy
	// OutDir, when non-empty, triggers the Emit boundary after a
	// successful Gate; directories written are returned in Result.Written.
	OutDir string
	// Cache, when non-nil, is consulted before running and updated after.
	Cache *emitcache.Cache
	// Telemetry, when non-nil, wraps the run in stage spans/counters.
	Telemetry *telemetry.Telemetry
}

// Result is everything a caller (CLI or test) needs after a run.
type Result struct {
	RunID       string
	Graph       *model.SymbolGraph
	ImportGraph *importgraph.Graph
	ImportPlan  *importplan.Plan
	EmitOrder   *emitorder.Plan
	Diagnostics *diagnostics.Bag
	Gate        gate.Summary
	Written     []string
	FromCache   bool
}

// Run drives one full pipeline run. It never calls os.Exit; the caller
// (cmd/tsbindgen) decides the process exit code from Result.Gate.Failed.
func Run(ctx context.Context, opts Options) (*Result, error) {
	pol := opts.Policy
	if pol == nil {
		pol = policy.Default()
	}

	var cacheKey string
	if opts.Cache != nil {
		polBytes, err := policyFingerprint(pol)
		if err != nil {
			return nil, fmt.Errorf("bindgen: %w", err)
		}
		cacheKey = emitcache.Key(polBytes, pathsFingerprint(opts.Paths))
		if entry, found := opts.Cache.Lookup(cacheKey); found {
			return &Result{
				RunID:       entry.RunID,
				Diagnostics: diagnostics.NewBag(),
				Gate:        gate.Summary{CountsByCode: entry.CountsByCode, Failed: entry.Failed},
				FromCache:   true,
			}, nil
		}
	}

	source := opts.Source
	if source == nil {
		source = loadboundary.ManifestSource{}
	}

	tel := opts.Telemetry
	stage := func(name string, fn func()) {
		if tel == nil {
			fn()
			return
		}
		_, span := tel.StartStage(ctx, name)
		fn()
		tel.EndStage(ctx, span, name, nil)
	}

	graph, loadDiags, err := source.Load(opts.Paths)
	if err != nil {
		return nil, fmt.Errorf("bindgen: load: %w", err)
	}

	pctx := pipeline.NewContext(graph, pol)
	for _, d := range loadDiags {
		pctx.Diagnostics.Add(d)
	}
	if tel != nil {
		tel.RecordDiagnostics(ctx, loadDiags)
	}

	stage("normalize.Index", func() { pctx = (&normalize.Pass{}).Process(pctx) })
	stage("shape.Run", func() { pctx = shape.Run(pctx) })
	stage("reserve.NameReservation", func() { pctx = (&reserve.Pass{}).Process(pctx) })
	stage("overload.Unifier", func() { pctx = (&overload.Pass{}).Process(pctx) })

	var ig *importgraph.Graph
	var plan *importplan.Plan
	var eo *emitorder.Plan
	var summary gate.Summary

	stage("importgraph.Build", func() { ig = importgraph.Build(pctx.Graph) })
	stage("importplan.Build", func() {
		var idiags []*diagnostics.Diagnostic
		plan, idiags = importplan.Build(pctx.Graph, ig, pctx.Renamer, importplan.ImportPolicy{
			UnconditionalAlias: pol.Modules.AlwaysAliasImports,
		})
		for _, d := range idiags {
			pctx.Diagnostics.Add(d)
		}
		if tel != nil {
			tel.RecordDiagnostics(ctx, idiags)
		}
	})
	stage("emitorder.Build", func() { eo = emitorder.Build(pctx.Graph) })
	stage("constraintaudit.Run", func() {
		cdiags := constraintaudit.Run(pctx.Graph)
		for _, d := range cdiags {
			pctx.Diagnostics.Add(d)
		}
		if tel != nil {
			tel.RecordDiagnostics(ctx, cdiags)
		}
	})
	stage("gate.Run", func() { summary = gate.Run(pctx.Graph, plan, ig, pctx.Diagnostics) })

	result := &Result{
		RunID:       pctx.RunID,
		Graph:       pctx.Graph,
		ImportGraph: ig,
		ImportPlan:  plan,
		EmitOrder:   eo,
		Diagnostics: pctx.Diagnostics,
		Gate:        summary,
	}

	if !summary.Failed && opts.OutDir != "" {
		stage("emit.Write", func() {
			written, werr := emitboundary.Emit(emitboundary.EmissionPlan{
				Graph:      pctx.Graph,
				ImportPlan: plan,
				EmitOrder:  eo,
			}, opts.OutDir, nil)
			if werr != nil {
				err = fmt.Errorf("bindgen: emit: %w", werr)
				return
			}
			result.Written = written
		})
		if err != nil {
			return result, err
		}
	}

	if opts.Cache != nil {
		_ = opts.Cache.Store(cacheKey, emitcache.Entry{
			RunID:        pctx.RunID,
			CountsByCode: summary.CountsByCode,
			Failed:       summary.Failed,
		})
	}

	return result, nil
}

func policyFingerprint(pol *policy.Policy) ([]byte, error) {
	return []byte(fmt.Sprintf("%+v", pol)), nil
}

// pathsFingerprint hashes each input path's size and modification time
// rather than its full content, matching the teacher's own cache's choice
// to key on cheaply-available facts rather than re-read every input file
// on every run.
func pathsFingerprint(paths []string) string {
	out := ""
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			out += p + ":missing;"
			continue
		}
		out += fmt.Sprintf("%s:%d:%d;", p, info.Size(), info.ModTime().UnixNano())
	}
	return out
}
