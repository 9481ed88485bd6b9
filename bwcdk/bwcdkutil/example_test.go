package bwcdkutil_test

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdkutil"
)

// NewDeployment creates the infrastructure of one deployment.
func NewDeployment(stack awscdk.Stack, deploymentIdent string) {
	_ = deploymentIdent

	awss3.NewBucket(stack, jsii.String("Bucket"), &awss3.BucketProps{
		BucketName: jsii.String(bwcdkutil.ResourceName(stack, "assets", bwcdkutil.CasingKebab)),
	})
}

// Example_setupApp demonstrates how to use SetupApp to create one stack per
// deployment.
//
// The cdk.json context should include:
//
//	{
//	  "myapp-qualifier": "myapp",
//	  "myapp-region": "eu-west-1",
//	  "myapp-deployments": ["Dev", "Prod"]
//	}
func Example_setupApp() {
	defer jsii.Close()

	ctx := map[string]any{
		"myapp-qualifier":       "myapp",
		"myapp-region":          "eu-west-1",
		"myapp-deployments":     []any{"Dev", "Prod"},
		"myapp-deployer-groups": "myapp-deployers",
	}

	app := awscdk.NewApp(&awscdk.AppProps{
		Context: &ctx,
	})

	bwcdkutil.SetupApp(app, bwcdkutil.AppConfig{
		Prefix:         "myapp-",
		DeployersGroup: "myapp-deployers",
	}, NewDeployment)
	// Output:
}
