// Package telemetry wires the classification engine's per-stage timing and
// content fingerprinting into the OpenTelemetry API (trace and metric). It
// configures no SDK; NoOp backs a Recorder with OpenTelemetry's no-op
// providers.
package telemetry

import (
	"context"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Recorder records one span and one histogram sample per pipeline stage,
// plus a content fingerprint of the staged buffers.
type Recorder struct {
	tracer    trace.Tracer
	stageHist metric.Float64Histogram
}

// New builds a Recorder from a tracer and meter supplied by the caller.
// cmd/hsiclass does not call it; it uses NoOp.
func New(tracer trace.Tracer, meter metric.Meter) (*Recorder, error) {
	hist, err := meter.Float64Histogram(
		"hsiclass.stage.duration_ms",
		metric.WithDescription("Duration of a classification pipeline stage, in milliseconds"),
	)
	if err != nil {
		return nil, err
	}
	return &Recorder{tracer: tracer, stageHist: hist}, nil
}

// NoOp returns a Recorder backed by OpenTelemetry's no-op providers, for
// callers that have not configured a real SDK.
func NoOp() *Recorder {
	r, _ := New(tracenoop.NewTracerProvider().Tracer("hsiclass"), metricnoop.NewMeterProvider().Meter("hsiclass"))
	return r
}

// StartStage opens a span named stage and returns the start time alongside
// it; pair with EndStage.
func (r *Recorder) StartStage(ctx context.Context, stage string) (time.Time, trace.Span) {
	_, span := r.tracer.Start(ctx, stage)
	return time.Now(), span
}

// EndStage closes span and records its duration in the stage histogram,
// returning the elapsed milliseconds for the caller's own timing record.
func (r *Recorder) EndStage(span trace.Span, start time.Time) float64 {
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	span.SetAttributes(attribute.Float64("duration_ms", elapsed))
	span.End()
	r.stageHist.Record(context.Background(), elapsed)
	return elapsed
}

// Fingerprint hashes the staged cube and spectra buffers together so two
// runs can be proven to have classified identical inputs.
func (r *Recorder) Fingerprint(cube, spectra []float32) uint64 {
	h := xxhash.New()
	writeFloats(h, cube)
	writeFloats(h, spectra)
	return h.Sum64()
}

func writeFloats(h *xxhash.Digest, v []float32) {
	buf := make([]byte, 4)
	for _, f := range v {
		bits := math.Float32bits(f)
		buf[0] = byte(bits)
		buf[1] = byte(bits >> 8)
		buf[2] = byte(bits >> 16)
		buf[3] = byte(bits >> 24)
		_, _ = h.Write(buf)
	}
}
