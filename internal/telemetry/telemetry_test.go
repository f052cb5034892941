package telemetry

import (
	"context"
	"testing"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
)

func TestNewAndStageLifecycle(t *testing.T) {
	tel, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, span := tel.StartStage(context.Background(), "shape.Run")
	if span == nil {
		t.Fatal("expected a non-nil span")
	}
	tel.EndStage(ctx, span, "shape.Run", nil)
}

func TestEndStageRecordsFailure(t *testing.T) {
	tel, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, span := tel.StartStage(context.Background(), "gate.Run")
	tel.EndStage(ctx, span, "gate.Run", errBoom)
}

func TestRecordDiagnosticsNoPanic(t *testing.T) {
	tel, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	diags := []*diagnostics.Diagnostic{
		diagnostics.NewInfo(diagnostics.CodeExternalReference, diagnostics.Site{Component: "test"}, "msg"),
		diagnostics.NewWarning(diagnostics.CodeExternalReference, diagnostics.Site{Component: "test"}, "msg"),
	}
	tel.RecordDiagnostics(context.Background(), diags)
}

var errBoom = testError("boom")

type testError string

func (e testError) Error() string { return string(e) }
