package bwlwa

import (
	"context"
	"net/http"
	"os"
	"slices"

	"github.com/aws-observability/aws-otel-go/exporters/xrayudp"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/detectors/aws/lambda"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
)

func newExporter(ctx context.Context, exporterType string) (sdktrace.SpanExporter, error) {
	switch exporterType {
	case "stdout", "":
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "xrayudp":
		// Lambda runs an X-Ray daemon; no collector layer needed.
		return xrayudp.NewSpanExporter(ctx)
	default:
		return nil, errors.Newf("unsupported BW_OTEL_EXPORTER: %q (supported: stdout, xrayudp)", exporterType)
	}
}

// newResource describes the service. On Lambda the function attributes are
// detected and merged in.
func newResource(ctx context.Context, exporterType, serviceName string) (*resource.Resource, error) {
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))
	if exporterType != "xrayudp" {
		return res, nil
	}
	detected, err := lambda.NewResourceDetector().Detect(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "detect lambda resource")
	}
	merged, err := resource.Merge(detected, res)
	if err != nil {
		return nil, errors.Wrap(err, "merge resources")
	}
	return merged, nil
}

// NewTracerProvider provides the app's tracer provider. Spans are exported
// synchronously: Lambda may freeze the container between invocations, which
// would strand a batch. Setting OTEL_SDK_DISABLED=true yields a no-op provider.
func NewTracerProvider(lc fx.Lifecycle, env Environment) (trace.TracerProvider, error) {
	if os.Getenv("OTEL_SDK_DISABLED") == "true" {
		return noop.NewTracerProvider(), nil
	}

	ctx := context.Background()
	exp, err := newExporter(ctx, env.otelExporter())
	if err != nil {
		return nil, err
	}
	res, err := newResource(ctx, env.otelExporter(), env.serviceName())
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exp)),
		sdktrace.WithResource(res),
		sdktrace.WithIDGenerator(xray.NewIDGenerator()),
	)
	lc.Append(fx.Hook{OnStop: tp.Shutdown})
	return tp, nil
}

// NewPropagator provides the propagator matching the exporter. X-Ray only
// understands its own header; locally W3C trace context is accepted as well.
func NewPropagator(env Environment) propagation.TextMapPropagator {
	if env.otelExporter() == "xrayudp" {
		return xray.Propagator{}
	}
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
		xray.Propagator{},
	)
}

// withTracing starts a server span per request, except for excluded paths.
func withTracing(
	tp trace.TracerProvider, prop propagation.TextMapPropagator, service string, excluded ...string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, service,
			otelhttp.WithTracerProvider(tp),
			otelhttp.WithPropagators(prop),
			otelhttp.WithFilter(func(r *http.Request) bool {
				return !slices.Contains(excluded, r.URL.Path)
			}),
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}
}
