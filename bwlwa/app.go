package bwlwa

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/advdv/bhttp"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// App is a configured LWA application.
type App struct {
	fx *fx.App
}

type appConfig struct {
	fxOptions []fx.Option
	health    bhttp.HandlerFunc[context.Context]
	awsConfig bool
}

// Option configures an App.
type Option func(*appConfig)

// WithAWSClient registers an AWS SDK client for injection into handler
// constructors. The config passed to the factory is instrumented with
// OpenTelemetry:
//
//	bwlwa.WithAWSClient(func(cfg aws.Config) *dynamodb.Client {
//	    return dynamodb.NewFromConfig(cfg)
//	})
func WithAWSClient[T any](factory func(aws.Config) T) Option {
	return func(c *appConfig) {
		c.awsConfig = true
		c.fxOptions = append(c.fxOptions, AWSClientProvider(factory))
	}
}

// WithFx adds fx options, typically providers for handlers and repositories.
func WithFx(opts ...fx.Option) Option {
	return func(c *appConfig) {
		c.fxOptions = append(c.fxOptions, opts...)
	}
}

// WithHealthHandler replaces the default readiness handler, which answers 200.
func WithHealthHandler(h bhttp.HandlerFunc[context.Context]) Option {
	return func(c *appConfig) {
		c.health = h
	}
}

// NewApp wires an application. The routing function is invoked by fx, so it
// may declare any provided type as a parameter after the *Mux.
func NewApp[E Environment](routing any, opts ...Option) *App {
	cfg := &appConfig{health: defaultHealth}
	for _, opt := range opts {
		opt(cfg)
	}

	options := []fx.Option{
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		fx.Provide(
			ParseEnv[E](),
			func(e E) Environment { return e },
			NewLogger,
			NewTracerProvider,
			NewPropagator,
			func(logger *zap.Logger) *Mux {
				return NewMux(withLogger(logger), withLWAContext())
			},
			NewRuntime[E],
		),
		fx.Invoke(func(m *Mux, env Environment) {
			m.HandleFunc("GET "+env.readinessCheckPath(), cfg.health)
		}),
		fx.Invoke(routing),
		fx.Invoke(registerServer),
	}
	if cfg.awsConfig {
		options = append(options, fx.Provide(provideAWSConfig))
	}
	options = append(options, cfg.fxOptions...)

	return &App{fx: fx.New(options...)}
}

// Run starts the app and blocks until a termination signal.
func (a *App) Run() {
	a.fx.Run()
}

// Start starts the app and stops it once ctx is done.
func (a *App) Start(ctx context.Context) error {
	if err := a.fx.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.fx.Stop(stopCtx)
}

// Err returns the error fx encountered while wiring the app, if any.
func (a *App) Err() error {
	return a.fx.Err()
}

// NewLogger builds the JSON production logger used by the app.
func NewLogger(env Environment) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(env.logLevel())
	cfg.EncoderConfig.TimeKey = "time"
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", env.serviceName())), nil
}

func registerServer(
	lc fx.Lifecycle,
	env Environment,
	mux *Mux,
	logger *zap.Logger,
	tp trace.TracerProvider,
	prop propagation.TextMapPropagator,
) {
	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(env.port())),
		Handler:           withTracing(tp, prop, env.serviceName(), env.readinessCheckPath())(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func defaultHealth(_ context.Context, w bhttp.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(http.StatusOK)
	return nil
}
