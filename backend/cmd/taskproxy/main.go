// Command taskproxy serves the same API as taskback as a plain Lambda
// handler behind an API Gateway proxy integration, without Lambda Web Adapter.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/basewarphq/bwtasks/backend/internal/handler"
	"github.com/basewarphq/bwtasks/backend/internal/store"
	"github.com/basewarphq/bwtasks/bwlwa"
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type config struct {
	ServiceName string        `env:"BW_SERVICE_NAME" envDefault:"taskproxy"`
	LogLevel    zapcore.Level `env:"BW_LOG_LEVEL" envDefault:"info"`
	GroupsTable string        `env:"GROUPS_TABLE,required"`
	UsersTable  string        `env:"USERS_TABLE,required"`
	TasksTable  string        `env:"TASKS_TABLE,required"`
}

func main() {
	proxy, err := setup(context.Background())
	if err != nil {
		log.Fatalf("taskproxy: %+v", err)
	}
	lambda.Start(proxy.Handle)
}

func setup(ctx context.Context) (*handler.Proxy, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger, err := zcfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	logger = logger.With(zap.String("service", cfg.ServiceName))

	awsCfg, err := bwlwa.NewAWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	otelaws.AppendMiddlewares(&awsCfg.APIOptions)

	st, err := store.NewDynamo(dynamodb.NewFromConfig(awsCfg), store.Tables{
		Groups: cfg.GroupsTable,
		Users:  cfg.UsersTable,
		Tasks:  cfg.TasksTable,
	})
	if err != nil {
		return nil, err
	}
	return handler.NewProxy(handler.NewAll(st, logger)...), nil
}
