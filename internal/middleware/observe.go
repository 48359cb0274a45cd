package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/mmynk/tripledger/internal/metrics"
	"github.com/mmynk/tripledger/internal/telemetry"
)

// MetricsInterceptor records the count and latency of every RPC.
func MetricsInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			m.ObserveRPC(req.Spec().Procedure, codeString(err), time.Since(start))
			return resp, err
		}
	}
}

// TracingInterceptor starts a server span per RPC, continuing any trace
// propagated in the request headers.
func TracingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(req.Header()))
			procedure := req.Spec().Procedure

			ctx, span := telemetry.Tracer().Start(ctx, procedure,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("rpc.system", "connect_rpc"),
					attribute.String("rpc.method", procedure),
				),
			)
			defer span.End()

			resp, err := next(ctx, req)
			span.SetAttributes(attribute.String("rpc.connect_rpc.error_code", codeString(err)))
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, connect.CodeOf(err).String())
			}
			return resp, err
		}
	}
}

func codeString(err error) string {
	if err == nil {
		return "ok"
	}
	return connect.CodeOf(err).String()
}
