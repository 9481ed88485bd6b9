// Package bwcdkwebsite provides a static website construct: an S3 bucket
// configured for website hosting plus a deployment of a local directory.
//
// The deployment also writes a config.json next to the site so the browser
// code can find the API it talks to.
package bwcdkwebsite

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3deployment"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdkutil"
)

// IndexDocument is served for the website root.
const IndexDocument = "index.html"

// ConfigObjectKey is the object holding the runtime configuration of the site.
const ConfigObjectKey = "config.json"

// Website provides access to a static website.
type Website interface {
	// Bucket returns the bucket the site is served from.
	Bucket() awss3.IBucket
	// URL returns the website endpoint.
	URL() *string
}

// Props configures the Website construct.
type Props struct {
	// Source is the local directory deployed to the bucket.
	// Required.
	Source *string
	// APIURL is published in config.json as "apiUrl".
	// Optional.
	APIURL *string
}

type website struct {
	bucket awss3.IBucket
}

// New creates a publicly readable website bucket and deploys Source to it.
func New(scope constructs.Construct, props Props) Website {
	scope = constructs.NewConstruct(scope, jsii.String("Website"))
	con := &website{}

	bucket := awss3.NewBucket(scope, jsii.String("Bucket"), &awss3.BucketProps{
		BucketName:           jsii.String(bwcdkutil.ResourceName(scope, "website", bwcdkutil.CasingKebab)),
		WebsiteIndexDocument: jsii.String(IndexDocument),
		PublicReadAccess:     jsii.Bool(true),
		BlockPublicAccess:    awss3.BlockPublicAccess_BLOCK_ACLS(),
		RemovalPolicy:        awscdk.RemovalPolicy_DESTROY,
		AutoDeleteObjects:    jsii.Bool(true),
	})
	con.bucket = bucket

	sources := []awss3deployment.ISource{
		awss3deployment.Source_Asset(props.Source, nil),
	}
	if props.APIURL != nil {
		sources = append(sources, awss3deployment.Source_JsonData(jsii.String(ConfigObjectKey),
			map[string]any{"apiUrl": props.APIURL}, nil))
	}

	awss3deployment.NewBucketDeployment(scope, jsii.String("Deployment"), &awss3deployment.BucketDeploymentProps{
		Sources:           &sources,
		DestinationBucket: bucket,
	})

	awscdk.NewCfnOutput(scope, jsii.String("WebsiteURL"), &awscdk.CfnOutputProps{
		Key:         jsii.String("WebsiteURL"),
		Description: jsii.String("Static website endpoint URL"),
		Value:       bucket.BucketWebsiteUrl(),
	})

	return con
}

func (w *website) Bucket() awss3.IBucket {
	return w.bucket
}

func (w *website) URL() *string {
	return w.bucket.BucketWebsiteUrl()
}
