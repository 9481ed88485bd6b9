// Package cdk defines the infrastructure of one deployment of the task
// manager: the entity tables, the API and the static website.
package cdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdkdynamo"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdkparams"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdkrestgateway"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdkwebsite"
)

// Paths are relative to the directory cdk runs from (infra/cdk/cdk).
var (
	BackendEntry  = "../../../backend/cmd/taskback"
	WebsiteSource = "../../../website"
)

// table describes the key shape of one entity kind's table.
type table struct {
	Resource     string
	EnvVar       string
	PartitionKey string
	SortKey      string
}

var tables = []table{
	{Resource: "groups", EnvVar: "GROUPS_TABLE", PartitionKey: "groupId"},
	{Resource: "users", EnvVar: "USERS_TABLE", PartitionKey: "userId", SortKey: "groupId"},
	{Resource: "tasks", EnvVar: "TASKS_TABLE", PartitionKey: "taskId", SortKey: "groupId"},
}

// Deployment holds the constructs of one deployment.
type Deployment struct {
	Tables  []bwcdkdynamo.Dynamo
	Gateway bwcdkrestgateway.RestGateway
	Website bwcdkwebsite.Website
}

// NewDeployment creates the infrastructure of one deployment in stack.
func NewDeployment(stack awscdk.Stack, deploymentIdent string) *Deployment {
	_ = deploymentIdent
	dep := &Deployment{}

	env := map[string]*string{"BW_STORE_BACKEND": jsii.String("dynamodb")}
	var routes []*bwcdkrestgateway.Route
	for _, tbl := range tables {
		var sortKey *string
		if tbl.SortKey != "" {
			sortKey = jsii.String(tbl.SortKey)
		}
		d := bwcdkdynamo.New(stack, bwcdkdynamo.Props{
			Identifier:   jsii.String(tbl.Resource),
			PartitionKey: jsii.String(tbl.PartitionKey),
			SortKey:      sortKey,
		})
		dep.Tables = append(dep.Tables, d)
		env[tbl.EnvVar] = d.Table().TableName()
		routes = append(routes, bwcdkrestgateway.CollectionAndItem(tbl.Resource, tbl.PartitionKey)...)
	}

	dep.Gateway = bwcdkrestgateway.New(stack, bwcdkrestgateway.Props{
		Entry:       jsii.String(BackendEntry),
		Routes:      &routes,
		Environment: &env,
		Cors: &bwcdkrestgateway.CorsProps{
			AllowOrigins: jsii.Strings("*"),
			AllowMethods: jsii.Strings("GET", "POST", "PUT", "DELETE", "OPTIONS"),
			AllowHeaders: jsii.Strings("Content-Type", "Authorization"),
		},
	})
	for _, d := range dep.Tables {
		d.GrantReadWriteData(dep.Gateway.Lambda().Function())
	}

	bwcdkparams.Store(stack, "ApiUrlParam", "api", "url", dep.Gateway.URL())

	dep.Website = bwcdkwebsite.New(stack, bwcdkwebsite.Props{
		Source: jsii.String(WebsiteSource),
		APIURL: dep.Gateway.URL(),
	})

	return dep
}
