// Package bwcdkutil provides utilities for AWS CDK applications in Go.
//
// # Quick Start
//
// Use [SetupApp] to create one stack per deployment:
//
//	func main() {
//	    defer jsii.Close()
//	    app := awscdk.NewApp(nil)
//
//	    bwcdkutil.SetupApp(app, bwcdkutil.AppConfig{
//	        Prefix:                "myapp-",
//	        DeployersGroup:        "myapp-deployers",
//	        RestrictedDeployments: []string{"Prod"},
//	    }, NewDeployment)
//
//	    app.Synth(nil)
//	}
//
// # CDK Context Configuration
//
// The package reads configuration from CDK context (cdk.json). With prefix "myapp-":
//
//	{
//	  "myapp-qualifier": "myapp",
//	  "myapp-region": "eu-west-1",
//	  "myapp-deployments": ["Dev", "Prod"],
//	  "myapp-deployer-groups": "myapp-deployers"
//	}
//
// Deployment stacks are only created when "deployer-groups" is set, so a bare
// synth (e.g. during bootstrap) produces an empty app.
//
// # Features
//
//   - [SetupApp]: deployment stack orchestration
//   - [NewStackFromConfig]: stack creation with qualifier and region naming
//   - [ResourceName]: qualifier and deployment prefixed resource names
//   - [ReproducibleGoBundling]: Lambda bundling for identical builds
//   - [Config.AllowedDeployments]: group-based deployment authorization
package bwcdkutil
