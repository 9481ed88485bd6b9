// Command taskback serves the groups, users and tasks API behind Lambda Web Adapter.
package main

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/basewarphq/bwtasks/backend/internal/handler"
	"github.com/basewarphq/bwtasks/backend/internal/store"
	"github.com/basewarphq/bwtasks/bwlwa"
	"github.com/cockroachdb/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Env is the configuration of the backend.
type Env struct {
	bwlwa.BaseEnvironment
	GroupsTable  string `env:"GROUPS_TABLE"`
	UsersTable   string `env:"USERS_TABLE"`
	TasksTable   string `env:"TASKS_TABLE"`
	StoreBackend string `env:"BW_STORE_BACKEND" envDefault:"dynamodb"`
}

func main() {
	bwlwa.NewApp[Env](routing,
		bwlwa.WithAWSClient(func(cfg aws.Config) *dynamodb.Client {
			return dynamodb.NewFromConfig(cfg)
		}),
		bwlwa.WithFx(fx.Provide(newStore, newHandlers)),
	).Run()
}

func routing(m *bwlwa.Mux, hs []*handler.Handler) {
	handler.Register(m, hs...)
}

// newStore picks the store backend. The memory backend exists for local runs
// and keeps nothing across restarts.
func newStore(env Env, client *dynamodb.Client, logger *zap.Logger) (store.Store, error) {
	switch env.StoreBackend {
	case "memory":
		logger.Warn("using in-memory store; records are lost on restart")
		return store.NewMemory(), nil
	case "dynamodb":
		return store.NewDynamo(client, store.Tables{
			Groups: env.GroupsTable,
			Users:  env.UsersTable,
			Tasks:  env.TasksTable,
		})
	default:
		return nil, errors.Newf("unsupported BW_STORE_BACKEND: %q (supported: dynamodb, memory)", env.StoreBackend)
	}
}

func newHandlers(st store.Store, logger *zap.Logger) []*handler.Handler {
	return handler.NewAll(st, logger)
}
