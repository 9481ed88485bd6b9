package bwcdkutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/iancoleman/strcase"
)

// DeploymentStackName returns the CloudFormation stack name for a deployment stack.
func DeploymentStackName(qualifier, regionIdent, deploymentIdent string) string {
	return strcase.ToLowerCamel(fmt.Sprintf("%s-%s", qualifier, regionIdent)) + deploymentIdent
}

// NewStackFromConfig creates the stack of one deployment using a validated Config.
func NewStackFromConfig(scope constructs.Construct, cfg *Config, deploymentIdent string) awscdk.Stack {
	if deploymentIdent == "" || strings.ToUpper(deploymentIdent[:1]) != deploymentIdent[:1] {
		panic("deployment identifier must start with a upper-case letter, got: " + deploymentIdent)
	}

	regionIdent := cfg.RegionIdent()
	stackName := DeploymentStackName(cfg.Qualifier, regionIdent, deploymentIdent)
	baseIdent := strcase.ToLowerCamel(fmt.Sprintf("%s-%s", cfg.Qualifier, regionIdent))

	stack := awscdk.NewStack(scope, jsii.String(stackName), &awscdk.StackProps{
		Env: &awscdk.Environment{
			Account: jsii.String(os.Getenv("CDK_DEFAULT_ACCOUNT")),
			Region:  jsii.String(cfg.Region),
		},
		Description: jsii.String(fmt.Sprintf("%s (region: %s, deployment: %s)", baseIdent, cfg.Region, deploymentIdent)),
		Synthesizer: awscdk.NewDefaultStackSynthesizer(&awscdk.DefaultStackSynthesizerProps{
			Qualifier: jsii.String(cfg.Qualifier),
		}),
	})
	StoreDeploymentIdent(stack, deploymentIdent)

	awscdk.Annotations_Of(stack).AcknowledgeWarning(
		jsii.String("@aws-cdk/aws-lambda-go-alpha:goBuildFlagsSecurityWarning"),
		jsii.String("Build flags are controlled by bwcdkutil.ReproducibleGoBundling and are safe"),
	)

	return stack
}
