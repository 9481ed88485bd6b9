package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdkutil"
	"github.com/basewarphq/bwtasks/infra/cdk"
)

const projectPrefix = "bwtasks"

func main() {
	defer jsii.Close()
	app := awscdk.NewApp(nil)

	bwcdkutil.SetupApp(app, bwcdkutil.AppConfig{
		Prefix:                projectPrefix + "-",
		DeployersGroup:        projectPrefix + "-deployers",
		RestrictedDeployments: []string{"Prod"},
	}, func(stack awscdk.Stack, deploymentIdent string) {
		cdk.NewDeployment(stack, deploymentIdent)
	})

	app.Synth(nil)
}
