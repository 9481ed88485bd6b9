package bwcdkutil

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

const deploymentIdentContextKey = "__bwcdkutil_deployment_ident"

// StoreDeploymentIdent records the deployment a stack belongs to. Constructs
// below the stack read it back with DeploymentIdent.
func StoreDeploymentIdent(stack awscdk.Stack, deploymentIdent string) {
	stack.Node().SetContext(jsii.String(deploymentIdentContextKey), deploymentIdent)
}

// DeploymentIdent returns the deployment identifier of the enclosing stack,
// or "" outside a deployment stack.
func DeploymentIdent(scope constructs.Construct) string {
	s, _ := scope.Node().TryGetContext(jsii.String(deploymentIdentContextKey)).(string)
	return s
}
