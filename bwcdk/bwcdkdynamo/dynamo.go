// Package bwcdkdynamo provides a DynamoDB table construct for one entity kind.
//
// Each table is keyed by the attributes that identify the records it holds: a
// partition key and, for kinds that are scoped by another entity, a sort key.
// The table name is published to SSM Parameter Store so other stacks can look
// it up without cross-stack references.
package bwcdkdynamo

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdkparams"
	"github.com/basewarphq/bwtasks/bwcdk/bwcdkutil"
)

const paramsNamespace = "dynamo"

// Dynamo provides access to a DynamoDB table.
type Dynamo interface {
	// Table returns the DynamoDB table.
	Table() awsdynamodb.ITableV2
	// Identifier returns the identifier the table was created with.
	Identifier() string

	// GrantReadData grants read-only permissions to the table.
	GrantReadData(grantee awsiam.IGrantable)
	// GrantReadWriteData grants read/write permissions to the table.
	GrantReadWriteData(grantee awsiam.IGrantable)
}

// Props configures the Dynamo construct.
type Props struct {
	// Identifier distinguishes this table from others in the same deployment.
	// Used in resource names and SSM parameter paths.
	// Example: "tasks" produces table name "{qualifier}-{deployment}-tasks-table".
	// Required.
	Identifier *string
	// PartitionKey is the name of the string partition key attribute.
	// Required.
	PartitionKey *string
	// SortKey is the name of the string sort key attribute.
	// Optional.
	SortKey *string
}

type dynamo struct {
	table      awsdynamodb.ITableV2
	identifier string
}

// New creates an on-demand DynamoDB table and stores its name in SSM under
// "dynamo/{identifier}/table-name".
func New(scope constructs.Construct, props Props) Dynamo {
	if props.Identifier == nil || *props.Identifier == "" {
		panic("bwcdkdynamo: Identifier is required")
	}
	if props.PartitionKey == nil || *props.PartitionKey == "" {
		panic("bwcdkdynamo: PartitionKey is required")
	}
	identifier := *props.Identifier

	constructID := "Dynamo" + bwcdkutil.ResourceName(scope, identifier, bwcdkutil.CasingCamel)
	scope = constructs.NewConstruct(scope, jsii.String(constructID))
	con := &dynamo{identifier: identifier}

	tableProps := &awsdynamodb.TablePropsV2{
		TableName:     jsii.String(bwcdkutil.ResourceName(scope, identifier+"-table", bwcdkutil.CasingKebab)),
		PartitionKey:  &awsdynamodb.Attribute{Name: props.PartitionKey, Type: awsdynamodb.AttributeType_STRING},
		Billing:       awsdynamodb.Billing_OnDemand(nil),
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
		PointInTimeRecoverySpecification: &awsdynamodb.PointInTimeRecoverySpecification{
			PointInTimeRecoveryEnabled: jsii.Bool(true),
		},
	}
	if props.SortKey != nil && *props.SortKey != "" {
		tableProps.SortKey = &awsdynamodb.Attribute{Name: props.SortKey, Type: awsdynamodb.AttributeType_STRING}
	}
	con.table = awsdynamodb.NewTableV2(scope, jsii.String("Table"), tableProps)

	bwcdkparams.Store(scope, "TableNameParam", paramsNamespace, identifier+"/table-name", con.table.TableName())

	return con
}

// LookupDynamo retrieves a DynamoDB table whose name was stored by New.
func LookupDynamo(scope constructs.Construct, identifier string) awsdynamodb.ITableV2 {
	tableName := bwcdkparams.LookupLocal(scope, paramsNamespace, identifier+"/table-name")
	return awsdynamodb.TableV2_FromTableName(scope, jsii.String("LookupDynamo"+identifier), tableName)
}

func (d *dynamo) Table() awsdynamodb.ITableV2 {
	return d.table
}

func (d *dynamo) Identifier() string {
	return d.identifier
}

func (d *dynamo) GrantReadData(grantee awsiam.IGrantable) {
	d.table.GrantReadData(grantee)
}

func (d *dynamo) GrantReadWriteData(grantee awsiam.IGrantable) {
	d.table.GrantReadWriteData(grantee)
}
