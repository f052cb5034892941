// Package telemetry wraps a tracer/meter pair around the pipeline driver:
// one span per stage the driver wraps (Normalize, Shape as a single span
// over all fifteen passes, NameReserve, Overload, each Plan sub-stage,
// Gate, Emit; the Load boundary runs outside any span) and counters for
// diagnostics per code and per severity.
//
// This is ambient instrumentation, not a spec feature, and is always on:
// with no SDK configured the otel API's global providers are no-ops, so a
// run never pays for an exporter it hasn't wired up.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
)

const instrumentationName = "github.com/tsoniclang/tsbindgen/internal/pipeline"

// Telemetry holds the tracer and the counters the driver reports against.
// The zero value is not usable; construct with New.
type Telemetry struct {
	tracer         trace.Tracer
	diagByCode     metric.Int64Counter
	diagBySeverity metric.Int64Counter
	stageFailures  metric.Int64Counter
}

// New builds a Telemetry wrapping the process-wide global tracer/meter
// providers. Callers that want real export configure the global providers
// before calling New (e.g. via otel.SetTracerProvider); library code never
// does this itself, and cmd/tsbindgen configures none.
func New() (*Telemetry, error) {
	meter := otel.Meter(instrumentationName)

	diagByCode, err := meter.Int64Counter(
		"tsbindgen.diagnostics.by_code",
		metric.WithDescription("diagnostics emitted, by code"),
	)
	if err != nil {
		return nil, err
	}
	diagBySeverity, err := meter.Int64Counter(
		"tsbindgen.diagnostics.by_severity",
		metric.WithDescription("diagnostics emitted, by severity"),
	)
	if err != nil {
		return nil, err
	}
	stageFailures, err := meter.Int64Counter(
		"tsbindgen.stage.failures",
		metric.WithDescription("pipeline stages that ended in a fatal error"),
	)
	if err != nil {
		return nil, err
	}

	return &Telemetry{
		tracer:         otel.Tracer(instrumentationName),
		diagByCode:     diagByCode,
		diagBySeverity: diagBySeverity,
		stageFailures:  stageFailures,
	}, nil
}

// StartStage opens one span per pipeline stage, named after the stage
// (e.g. "shape.Run", "reserve.NameReservation", "gate.Run").
// The caller must End the returned span.
func (t *Telemetry) StartStage(ctx context.Context, stage string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, stage, trace.WithSpanKind(trace.SpanKindInternal))
}

// EndStage closes span, marking it failed if err is non-nil and recording
// a stage-failure count in that case.
func (t *Telemetry) EndStage(ctx context.Context, span trace.Span, stage string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		t.stageFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// RecordDiagnostics folds every diagnostic in added into the per-code and
// per-severity counters. The bindgen driver calls it with the Load
// boundary's diagnostics and with the diagnostics the import planner and
// the constraint auditor return; diagnostics that other stages add
// directly to the context's bag are not passed to it.
func (t *Telemetry) RecordDiagnostics(ctx context.Context, added []*diagnostics.Diagnostic) {
	for _, d := range added {
		t.diagByCode.Add(ctx, 1, metric.WithAttributes(attribute.String("code", string(d.Code))))
		t.diagBySeverity.Add(ctx, 1, metric.WithAttributes(attribute.String("severity", d.Severity.String())))
	}
}
