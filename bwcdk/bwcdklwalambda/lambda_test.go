//nolint:paralleltest // jsii runtime doesn't support parallel tests
package bwcdklwalambda_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdklwalambda"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdkutil"
)

// testEntry points to an actual Go command in the repo.
// Tests requiring CDK runtime must run from the module root.
var testEntry = "backend/cmd/taskback"

func init() {
	dir, _ := os.Getwd()
	for dir != "/" {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			_ = os.Chdir(dir)
			break
		}
		dir = filepath.Dir(dir)
	}
}

func newStack() awscdk.Stack {
	app := awscdk.NewApp(nil)
	bwcdkutil.StoreConfig(app, &bwcdkutil.Config{
		Qualifier:   "testqual",
		Region:      "eu-west-1",
		Deployments: []string{"Dev"},
	})
	stack := awscdk.NewStack(app, jsii.String("TestStack"), &awscdk.StackProps{
		Env: &awscdk.Environment{Region: jsii.String("eu-west-1")},
	})
	bwcdkutil.StoreDeploymentIdent(stack, "Dev")
	return stack
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name          string
		entry         string
		wantComponent string
		wantCommand   string
		wantErr       bool
	}{
		{name: "simple path", entry: "backend/cmd/taskback", wantComponent: "backend", wantCommand: "taskback"},
		{name: "relative path", entry: "../../backend/cmd/taskback", wantComponent: "backend", wantCommand: "taskback"},
		{name: "deep path", entry: "some/deep/component/cmd/handler", wantComponent: "component", wantCommand: "handler"},
		{name: "missing cmd segment", entry: "backend/taskback", wantErr: true},
		{name: "empty entry", entry: "", wantErr: true},
		{name: "only cmd", entry: "cmd/handler", wantErr: true},
		{name: "empty command", entry: "backend/cmd/", wantErr: true},
		{name: "empty component", entry: "/cmd/handler", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			component, command, err := bwcdklwalambda.ParseEntry(tt.entry)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if component != tt.wantComponent || command != tt.wantCommand {
				t.Errorf("ParseEntry() = %q, %q, want %q, %q", component, command, tt.wantComponent, tt.wantCommand)
			}
		})
	}
}

func TestNew(t *testing.T) {
	defer jsii.Close()

	stack := newStack()
	fn := bwcdklwalambda.New(stack, bwcdklwalambda.Props{
		Entry: jsii.String(testEntry),
		Environment: &map[string]*string{
			"TASKS_TABLE":  jsii.String("tasks"),
			"AWS_LWA_PORT": jsii.String("9999"),
		},
	})

	if fn.Name() != "BackendTaskback" {
		t.Errorf("Name() = %q, want %q", fn.Name(), "BackendTaskback")
	}
	if fn.Function() == nil || fn.LogGroup() == nil {
		t.Fatal("Function() and LogGroup() should not be nil")
	}

	assertions.Template_FromStack(stack, nil).HasResourceProperties(
		jsii.String("AWS::Lambda::Function"), map[string]any{
			"FunctionName":  "testqual-dev-backend-taskback",
			"Architectures": []any{"arm64"},
			"MemorySize":    128,
			"Environment": map[string]any{
				"Variables": assertions.Match_ObjectLike(&map[string]any{
					"TASKS_TABLE":                  "tasks",
					"AWS_LWA_PORT":                 "8080",
					"AWS_LWA_READINESS_CHECK_PATH": "/health",
					"BW_SERVICE_NAME":              "testqual-dev-backend-taskback",
					"BW_OTEL_EXPORTER":             "xrayudp",
				}),
			},
		})
}

func TestNew_InvalidEntry(t *testing.T) {
	defer jsii.Close()

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for invalid entry")
		}
	}()

	bwcdklwalambda.New(newStack(), bwcdklwalambda.Props{
		Entry: jsii.String("invalid/path"),
	})
}
