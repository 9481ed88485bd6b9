// Package bwcdkparams publishes CDK construct values to AWS Systems Manager
// Parameter Store so that scripts, the CLI and other stacks can discover them
// without cross-stack references.
package bwcdkparams

import (
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsssm"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdkutil"
)

// ParameterName generates a hierarchical SSM parameter path.
// Returns /{qualifier}/{deployment}/{namespace}/{name}, or
// /{qualifier}/{namespace}/{name} outside a deployment stack.
func ParameterName(scope constructs.Construct, namespace string, name string) *string {
	qual := bwcdkutil.Qualifier(scope)
	if dep := bwcdkutil.DeploymentIdent(scope); dep != "" {
		return jsii.Sprintf("/%s/%s/%s/%s", qual, strings.ToLower(dep), namespace, name)
	}
	return jsii.Sprintf("/%s/%s/%s", qual, namespace, name)
}

// Store creates a parameter in SSM Parameter Store.
func Store(
	scope constructs.Construct, id string, namespace string, name string, value *string,
) awsssm.StringParameter {
	return awsssm.NewStringParameter(scope, jsii.String(id),
		&awsssm.StringParameterProps{
			ParameterName: ParameterName(scope, namespace, name),
			StringValue:   value,
		})
}

// LookupLocal retrieves a parameter from SSM Parameter Store at deploy time.
func LookupLocal(scope constructs.Construct, namespace string, name string) *string {
	return awsssm.StringParameter_ValueForStringParameter(scope,
		ParameterName(scope, namespace, name), nil)
}
