// Package bwlwa provides a batteries-included framework for building HTTP services
// that run on AWS Lambda with Lambda Web Adapter (LWA).
//
// # Overview
//
// bwlwa handles the boilerplate of setting up an HTTP server optimized for Lambda:
// environment parsing, structured logging, OpenTelemetry tracing, AWS SDK clients,
// and graceful shutdown. A complete application can be created in a single call:
//
//	bwlwa.NewApp[Env](func(m *bwlwa.Mux, h *Handlers) {
//	    m.HandleFunc("GET /groups", h.ListGroups)
//	    m.HandleFunc("GET /groups/{groupId}", h.GetGroup, "get-group")
//	},
//	    bwlwa.WithAWSClient(func(cfg aws.Config) *dynamodb.Client {
//	        return dynamodb.NewFromConfig(cfg)
//	    }),
//	    bwlwa.WithFx(fx.Provide(NewHandlers)),
//	).Run()
//
// # Environment Configuration
//
// Define your environment by embedding [BaseEnvironment]:
//
//	type Env struct {
//	    bwlwa.BaseEnvironment
//	    GroupsTable string `env:"GROUPS_TABLE,required"`
//	}
//
// BaseEnvironment provides the following environment variables:
//
//	| Variable                      | Required | Default | Description                                      |
//	|-------------------------------|----------|---------|--------------------------------------------------|
//	| AWS_LWA_PORT                  | Yes      | -       | Port the HTTP server listens on                  |
//	| AWS_LWA_READINESS_CHECK_PATH  | Yes      | -       | Health check endpoint path for LWA readiness     |
//	| AWS_REGION                    | Yes      | -       | AWS region (set automatically by Lambda runtime) |
//	| BW_SERVICE_NAME               | Yes      | -       | Service name for logging and tracing             |
//	| BW_LOG_LEVEL                  | No       | info    | Log level (debug, info, warn, error)             |
//	| BW_OTEL_EXPORTER              | No       | stdout  | Trace exporter: "stdout" or "xrayudp"            |
//
// The AWS_LWA_* variables match the official Lambda Web Adapter configuration,
// so values you set for LWA are automatically picked up by bwlwa.
//
// # Runtime
//
// [Runtime] carries app-scoped dependencies (typed environment, route
// reversal, the app logger) and is injected into handler constructors via fx.
//
// # Context Functions
//
// Request-scoped values are accessed through context functions:
//
//   - [Log] returns a trace-correlated zap logger
//   - [Span] returns the current OpenTelemetry span for custom instrumentation
//   - [LWA] retrieves Lambda execution context (request ID, deadline, etc.)
//
// # Tracing
//
// OpenTelemetry tracing is configured automatically based on BW_OTEL_EXPORTER:
//
//   - "stdout" (default): Pretty-printed spans for local development
//   - "xrayudp": X-Ray UDP exporter for Lambda with proper trace ID format
//
// The tracer provider and propagator are injected explicitly (no globals),
// allowing for proper testing and isolation.
//
// # AWS Clients
//
// Register AWS SDK v2 clients with [WithAWSClient]. The client type is
// provided to fx as-is and injected into constructors:
//
//	bwlwa.WithAWSClient(func(cfg aws.Config) *dynamodb.Client {
//	    return dynamodb.NewFromConfig(cfg)
//	})
//
// Clients are automatically instrumented with OpenTelemetry.
//
// # Health Checks
//
// A health endpoint is automatically registered at AWS_LWA_READINESS_CHECK_PATH
// (required env var). Lambda Web Adapter uses this to determine readiness.
// Customize with [WithHealthHandler].
package bwlwa
