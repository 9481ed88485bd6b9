//nolint:paralleltest // jsii runtime doesn't support parallel tests
package bwcdkrestgateway_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdkrestgateway"
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

func TestCollectionAndItem(t *testing.T) {
	routes := bwcdkrestgateway.CollectionAndItem("tasks", "taskId")
	if len(routes) != 2 {
		t.Fatalf("got %d routes, want 2", len(routes))
	}
	if *routes[0].Path != "/tasks" || *routes[1].Path != "/tasks/{taskId}" {
		t.Errorf("paths = %q, %q", *routes[0].Path, *routes[1].Path)
	}
	var methods []string
	for _, m := range *routes[1].Methods {
		methods = append(methods, *m)
	}
	if !slices.Equal(methods, []string{"GET", "PUT", "DELETE"}) {
		t.Errorf("item methods = %v", methods)
	}
}

func TestNew(t *testing.T) {
	defer jsii.Close()

	stack := newStack()
	routes := append(
		bwcdkrestgateway.CollectionAndItem("groups", "groupId"),
		bwcdkrestgateway.CollectionAndItem("tasks", "taskId")...)

	gateway := bwcdkrestgateway.New(stack, bwcdkrestgateway.Props{
		Entry:  jsii.String(testEntry),
		Routes: &routes,
		Cors: &bwcdkrestgateway.CorsProps{
			AllowOrigins: jsii.Strings("*"),
			AllowMethods: jsii.Strings("GET", "POST", "PUT", "DELETE", "OPTIONS"),
			AllowHeaders: jsii.Strings("Content-Type", "Authorization"),
		},
	})

	if gateway.Lambda() == nil || gateway.RestApi() == nil || gateway.AccessLogGroup() == nil {
		t.Fatal("gateway accessors should not be nil")
	}
	if gateway.URL() == nil {
		t.Error("URL() should not be nil")
	}

	tmpl := assertions.Template_FromStack(stack, nil)
	// groups, {groupId}, tasks, {taskId}
	tmpl.ResourceCountIs(jsii.String("AWS::ApiGateway::Resource"), jsii.Number(4))
	tmpl.HasResourceProperties(jsii.String("AWS::ApiGateway::Resource"), map[string]any{
		"PathPart": "{taskId}",
	})
	tmpl.HasResourceProperties(jsii.String("AWS::ApiGateway::Method"), map[string]any{
		"HttpMethod": "DELETE",
	})
	tmpl.HasResourceProperties(jsii.String("AWS::ApiGateway::Method"), map[string]any{
		"HttpMethod": "OPTIONS",
		"Integration": assertions.Match_ObjectLike(&map[string]any{
			"IntegrationResponses": assertions.Match_ArrayWith(&[]any{
				assertions.Match_ObjectLike(&map[string]any{
					"ResponseParameters": assertions.Match_ObjectLike(&map[string]any{
						"method.response.header.Access-Control-Allow-Origin": "'*'",
					}),
				}),
			}),
		}),
	})
	tmpl.HasResourceProperties(jsii.String("AWS::ApiGateway::Stage"), map[string]any{
		"StageName":      "prod",
		"TracingEnabled": true,
	})
}

func TestNew_WithoutCors(t *testing.T) {
	defer jsii.Close()

	stack := newStack()
	routes := bwcdkrestgateway.CollectionAndItem("users", "userId")
	bwcdkrestgateway.New(stack, bwcdkrestgateway.Props{
		Entry:  jsii.String(testEntry),
		Routes: &routes,
	})

	tmpl := assertions.Template_FromStack(stack, nil)
	// GET+POST on /users, GET+PUT+DELETE on /users/{userId}
	tmpl.ResourceCountIs(jsii.String("AWS::ApiGateway::Method"), jsii.Number(5))
}
