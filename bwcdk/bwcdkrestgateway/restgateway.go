// Package bwcdkrestgateway provides a REST gateway construct that fronts a Go
// Lambda function running AWS Lambda Web Adapter.
//
// Only the declared routes and methods are exposed; everything else the
// function serves (like its readiness path) stays unreachable from the internet.
package bwcdkrestgateway

import (
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdkloggroup"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdklwalambda"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdkutil"
	"github.com/iancoleman/strcase"
)

// StageName is the single deployment stage of every gateway.
const StageName = "prod"

// RestGateway provides access to a REST gateway backed by a Go Lambda function.
type RestGateway interface {
	// Lambda returns the underlying LWA Lambda construct.
	Lambda() bwcdklwalambda.Lambda
	// RestApi returns the API Gateway REST API.
	RestApi() awsapigateway.RestApi
	// AccessLogGroup returns the CloudWatch Log Group for API Gateway access logs.
	AccessLogGroup() awslogs.ILogGroup
	// URL returns the invoke URL of the stage, ending in "/".
	URL() *string
}

// Route exposes one path with a set of methods.
type Route struct {
	// Path such as "/tasks" or "/tasks/{taskId}".
	Path *string
	// Methods such as "GET" or "POST".
	Methods *[]*string
}

// CorsProps configures the preflight response of every route.
type CorsProps struct {
	AllowOrigins *[]*string
	AllowMethods *[]*string
	AllowHeaders *[]*string
}

// Props configures the RestGateway construct.
type Props struct {
	// Entry is the path to the Go command directory.
	// Passed to the underlying LWA Lambda construct.
	// Required.
	Entry *string
	// Routes are the paths to expose via API Gateway.
	// Required.
	Routes *[]*Route
	// Environment variables to pass to the Lambda function.
	Environment *map[string]*string
	// Cors adds an OPTIONS preflight method to every route.
	// Optional.
	Cors *CorsProps
}

type restGateway struct {
	lambda         bwcdklwalambda.Lambda
	restApi        awsapigateway.RestApi
	accessLogGroup awslogs.ILogGroup
}

// New creates a RestGateway construct with a Lambda-backed REST API on the
// default execute-api endpoint.
func New(scope constructs.Construct, props Props) RestGateway {
	con := &restGateway{}

	con.lambda = bwcdklwalambda.New(scope, bwcdklwalambda.Props{
		Entry:       props.Entry,
		Environment: props.Environment,
	})

	scope = constructs.NewConstruct(scope, jsii.String(con.lambda.Name()+"RGw"))

	con.accessLogGroup = bwcdkloggroup.New(scope, con.lambda.Name()+"Access", bwcdkloggroup.Props{
		Purpose: jsii.String("API Gateway access logs of " + con.lambda.Name()),
	}).LogGroup()

	var preflight *awsapigateway.CorsOptions
	if props.Cors != nil {
		preflight = &awsapigateway.CorsOptions{
			AllowOrigins: props.Cors.AllowOrigins,
			AllowMethods: props.Cors.AllowMethods,
			AllowHeaders: props.Cors.AllowHeaders,
		}
	}

	con.restApi = awsapigateway.NewRestApi(scope, jsii.String("Api"), &awsapigateway.RestApiProps{
		RestApiName: jsii.String(bwcdkutil.ResourceName(scope, con.lambda.Name()+"Gateway", bwcdkutil.CasingCamel)),
		EndpointConfiguration: &awsapigateway.EndpointConfiguration{
			Types: &[]awsapigateway.EndpointType{awsapigateway.EndpointType_REGIONAL},
		},
		DefaultCorsPreflightOptions: preflight,
		DeployOptions: &awsapigateway.StageOptions{
			StageName:            jsii.String(StageName),
			TracingEnabled:       jsii.Bool(true),
			AccessLogDestination: awsapigateway.NewLogGroupLogDestination(con.accessLogGroup),
			AccessLogFormat: awsapigateway.AccessLogFormat_JsonWithStandardFields(
				&awsapigateway.JsonWithStandardFieldProps{
					Caller:         jsii.Bool(true),
					HttpMethod:     jsii.Bool(true),
					Ip:             jsii.Bool(true),
					Protocol:       jsii.Bool(true),
					RequestTime:    jsii.Bool(true),
					ResourcePath:   jsii.Bool(true),
					ResponseLength: jsii.Bool(true),
					Status:         jsii.Bool(true),
					User:           jsii.Bool(true),
				}),
		},
	})

	integration := awsapigateway.NewLambdaIntegration(con.lambda.Function(), &awsapigateway.LambdaIntegrationOptions{
		Proxy: jsii.Bool(true),
	})

	for _, route := range *props.Routes {
		addRoute(con.restApi.Root(), route, integration)
	}

	awscdk.NewCfnOutput(scope, jsii.String("GatewayURL"), &awscdk.CfnOutputProps{
		Key:         jsii.String(con.lambda.Name() + "GatewayURL"),
		Description: jsii.String("API Gateway endpoint URL"),
		Value:       con.restApi.Url(),
	})

	return con
}

// addRoute adds the methods of a route, creating intermediate resources that
// do not exist yet. Routes sharing a prefix share its resources.
func addRoute(root awsapigateway.IResource, route *Route, integration awsapigateway.LambdaIntegration) {
	resource := root
	for _, part := range strings.Split(strings.Trim(*route.Path, "/"), "/") {
		if part == "" {
			continue
		}
		if child := resource.GetResource(jsii.String(part)); child != nil {
			resource = child
			continue
		}
		resource = resource.AddResource(jsii.String(part), nil)
	}

	for _, method := range *route.Methods {
		resource.AddMethod(jsii.String(strings.ToUpper(*method)), integration, nil)
	}
}

// CollectionAndItem returns the two routes of a resource: the collection path
// with POST and GET, and the item path with GET, PUT and DELETE.
func CollectionAndItem(resource, itemParam string) []*Route {
	return []*Route{
		{
			Path:    jsii.String("/" + resource),
			Methods: jsii.Strings("GET", "POST"),
		},
		{
			Path:    jsii.String("/" + resource + "/{" + strcase.ToLowerCamel(itemParam) + "}"),
			Methods: jsii.Strings("GET", "PUT", "DELETE"),
		},
	}
}

func (r *restGateway) Lambda() bwcdklwalambda.Lambda {
	return r.lambda
}

func (r *restGateway) RestApi() awsapigateway.RestApi {
	return r.restApi
}

func (r *restGateway) AccessLogGroup() awslogs.ILogGroup {
	return r.accessLogGroup
}

func (r *restGateway) URL() *string {
	return r.restApi.Url()
}
