package bwcdkutil

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
)

// DeploymentConstructor creates the infrastructure of one deployment in the given stack.
type DeploymentConstructor func(stack awscdk.Stack, deploymentIdent string)

// AppConfig configures the CDK app setup.
type AppConfig struct {
	// Prefix for context keys (e.g., "myapp-" for "myapp-qualifier", "myapp-region", etc.)
	Prefix string
	// DeployersGroup is the IAM group that can deploy to all environments.
	DeployersGroup string
	// RestrictedDeployments are deployment identifiers that require DeployersGroup membership.
	RestrictedDeployments []string
}

// SetupApp validates the CDK context, stores the Config in the construct tree
// and creates one stack per allowed deployment in the configured region.
//
// It panics with a descriptive error when the context is missing or invalid.
func SetupApp(app awscdk.App, cfg AppConfig, newDeployment DeploymentConstructor) {
	config, err := NewConfig(app, cfg)
	if err != nil {
		panic(err)
	}
	StoreConfig(app, config)

	for _, deploymentIdent := range config.AllowedDeployments() {
		stack := NewStackFromConfig(app, config, deploymentIdent)
		newDeployment(stack, deploymentIdent)
	}
}
