package store

import (
	"context"
	"maps"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/basewarphq/bwtasks/backend/internal/entity"
	"github.com/cockroachdb/errors"
)

// DynamoAPI is the subset of the DynamoDB client used by Dynamo.
type DynamoAPI interface {
	dynamodb.ScanAPIClient
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

// Dynamo stores each kind in its own DynamoDB table.
type Dynamo struct {
	client DynamoAPI
	tables Tables
}

var _ Store = (*Dynamo)(nil)

// NewDynamo creates a Dynamo store. Every kind must have a table name.
func NewDynamo(client DynamoAPI, tables Tables) (*Dynamo, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return &Dynamo{client: client, tables: tables}, nil
}

func (d *Dynamo) Get(ctx context.Context, kind entity.Kind, key entity.Key) (entity.Record, error) {
	table, err := d.tables.Name(kind)
	if err != nil {
		return nil, err
	}
	av, err := marshalKey(key)
	if err != nil {
		return nil, err
	}

	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       av,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get item from %s", table)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var rec entity.Record
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, errors.Wrapf(err, "unmarshal item from %s", table)
	}
	return rec, nil
}

func (d *Dynamo) Put(ctx context.Context, kind entity.Kind, rec entity.Record) error {
	table, err := d.tables.Name(kind)
	if err != nil {
		return err
	}
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return errors.Wrap(err, "marshal record")
	}

	if _, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	}); err != nil {
		return errors.Wrapf(err, "put item into %s", table)
	}
	return nil
}

func (d *Dynamo) Update(ctx context.Context, kind entity.Kind, key entity.Key, fields entity.Record) error {
	if len(fields) == 0 {
		return nil
	}
	table, err := d.tables.Name(kind)
	if err != nil {
		return err
	}
	av, err := marshalKey(key)
	if err != nil {
		return err
	}
	expr, err := updateExpression(fields)
	if err != nil {
		return err
	}

	if _, err := d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       av,
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}); err != nil {
		return errors.Wrapf(err, "update item in %s", table)
	}
	return nil
}

func (d *Dynamo) Delete(ctx context.Context, kind entity.Kind, key entity.Key) error {
	table, err := d.tables.Name(kind)
	if err != nil {
		return err
	}
	av, err := marshalKey(key)
	if err != nil {
		return err
	}

	if _, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       av,
	}); err != nil {
		return errors.Wrapf(err, "delete item from %s", table)
	}
	return nil
}

// Scan reads every page of the kind's table.
func (d *Dynamo) Scan(ctx context.Context, kind entity.Kind) ([]entity.Record, error) {
	table, err := d.tables.Name(kind)
	if err != nil {
		return nil, err
	}

	recs := []entity.Record{}
	pages := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName: aws.String(table),
	})
	for pages.HasMorePages() {
		out, err := pages.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "scan %s", table)
		}
		var page []entity.Record
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, errors.Wrapf(err, "unmarshal items from %s", table)
		}
		recs = append(recs, page...)
	}
	return recs, nil
}

func marshalKey(key entity.Key) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(map[string]string(key))
	if err != nil {
		return nil, errors.Wrap(err, "marshal key")
	}
	return av, nil
}

// updateExpression builds "SET #0 = :0, #1 = :1, ..." over fields in name
// order. Placeholders keep reserved words such as name, role and status legal.
func updateExpression(fields entity.Record) (expression.Expression, error) {
	var upd expression.UpdateBuilder
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		upd = upd.Set(expression.Name(name), expression.Value(fields[name]))
	}
	expr, err := expression.NewBuilder().WithUpdate(upd).Build()
	if err != nil {
		return expression.Expression{}, errors.Wrap(err, "build update expression")
	}
	return expr, nil
}
