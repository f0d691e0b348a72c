package runpod

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-openapi/runtime"
	httptransport "github.com/go-openapi/runtime/client"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/tomblancdev/runpod-go"

// Metric names recorded for every request.
const (
	MetricRequests        = "runpod.client.requests"
	MetricRequestDuration = "runpod.client.request.duration"
)

// telemetry holds the instruments shared by every runtime of a client.
type telemetry struct {
	tracerProvider trace.TracerProvider
	requests       metric.Int64Counter
	duration       metric.Float64Histogram
}

func newTelemetry(mp metric.MeterProvider, tp trace.TracerProvider) (*telemetry, error) {
	if mp == nil {
		mp = noop.NewMeterProvider()
	}
	meter := mp.Meter(instrumentationName, metric.WithInstrumentationVersion(Version))

	requests, err := meter.Int64Counter(MetricRequests,
		metric.WithDescription("Number of RunPod API requests by operation and status"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, configError("creating request counter", err)
	}
	duration, err := meter.Float64Histogram(MetricRequestDuration,
		metric.WithDescription("Duration of RunPod API requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, configError("creating duration histogram", err)
	}

	return &telemetry{tracerProvider: tp, requests: requests, duration: duration}, nil
}

// wrap decorates rt with tracing, when a tracer provider is set, and metrics.
func (t *telemetry) wrap(target Target, rt *httptransport.Runtime) runtime.ClientTransport {
	var next runtime.ClientTransport = rt
	if t == nil {
		return next
	}
	m := &meteredTransport{next: next, target: target, telemetry: t}
	if t.tracerProvider != nil {
		// The runtime's otel transport takes its tracer from the parent span,
		// which Submit starts below.
		m.next = rt.WithOpenTelemetry(httptransport.WithTracerProvider(t.tracerProvider))
		m.tracer = t.tracerProvider.Tracer(instrumentationName, trace.WithInstrumentationVersion(Version))
	}
	return m
}

type meteredTransport struct {
	next   runtime.ClientTransport
	target Target
	tracer trace.Tracer
	*telemetry
}

func (m *meteredTransport) Submit(op *runtime.ClientOperation) (interface{}, error) {
	ctx := op.Context
	if ctx == nil {
		ctx = context.Background()
	}
	labels := []attribute.KeyValue{
		attribute.String("runpod.api", m.target.String()),
		attribute.String("runpod.operation", op.ID),
		attribute.String("http.request.method", op.Method),
	}

	var span trace.Span
	if m.tracer != nil {
		ctx, span = m.tracer.Start(ctx, op.ID,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(labels...),
		)
		op.Context = ctx
	}

	start := time.Now()
	result, err := m.next.Submit(op)
	elapsed := time.Since(start)
	out := outcome(result, err)

	if span != nil {
		span.SetAttributes(attribute.String("runpod.outcome", out))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}

	attrs := metric.WithAttributes(append(labels, attribute.String("runpod.outcome", out))...)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
	return result, err
}

// outcome is the HTTP status code, or the error kind when no response arrived.
func outcome(result interface{}, err error) string {
	if err == nil {
		if resp, ok := result.(*RawResponse); ok {
			return strconv.Itoa(resp.Status)
		}
		return "ok"
	}
	var rpErr *Error
	if errors.As(err, &rpErr) {
		if rpErr.Status != 0 {
			return strconv.Itoa(rpErr.Status)
		}
		return string(rpErr.Kind)
	}
	return string(KindTransport)
}
