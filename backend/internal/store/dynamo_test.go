package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/basewarphq/bwtasks/backend/internal/entity"
	"github.com/basewarphq/bwtasks/backend/internal/store"
	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
)

// fakeDynamo records the last input of each call and serves canned outputs.
type fakeDynamo struct {
	getOut  *dynamodb.GetItemOutput
	pages   []*dynamodb.ScanOutput
	failErr error

	get    *dynamodb.GetItemInput
	put    *dynamodb.PutItemInput
	update *dynamodb.UpdateItemInput
	del    *dynamodb.DeleteItemInput
	scans  []*dynamodb.ScanInput
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.get = in
	if f.failErr != nil {
		return nil, f.failErr
	}
	if f.getOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getOut, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.put = in
	return &dynamodb.PutItemOutput{}, f.failErr
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.update = in
	return &dynamodb.UpdateItemOutput{}, f.failErr
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.del = in
	return &dynamodb.DeleteItemOutput{}, f.failErr
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scans = append(f.scans, in)
	if f.failErr != nil {
		return nil, f.failErr
	}
	return f.pages[len(f.scans)-1], nil
}

var testTables = store.Tables{Groups: "groups-tbl", Users: "users-tbl", Tasks: "tasks-tbl"}

func newDynamo(t *testing.T, fake *fakeDynamo) *store.Dynamo {
	t.Helper()
	d, err := store.NewDynamo(fake, testTables)
	if err != nil {
		t.Fatalf("NewDynamo: %v", err)
	}
	return d
}

func TestNewDynamo_RequiresAllTables(t *testing.T) {
	t.Parallel()

	_, err := store.NewDynamo(&fakeDynamo{}, store.Tables{Groups: "g", Tasks: "t"})
	if err == nil {
		t.Fatal("expected error for missing users table")
	}
	if got, want := err.Error(), "table name for Users is required"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestDynamo_Get(t *testing.T) {
	t.Parallel()

	fake := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
		"userId":  &types.AttributeValueMemberS{Value: "u1"},
		"groupId": &types.AttributeValueMemberS{Value: "g1"},
		"name":    &types.AttributeValueMemberS{Value: "Ann"},
		"manager": &types.AttributeValueMemberNULL{Value: true},
	}}}
	d := newDynamo(t, fake)

	got, err := d.Get(context.Background(), entity.KindUser, entity.Key{"userId": "u1", "groupId": "g1"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := entity.Record{"userId": "u1", "groupId": "g1", "name": "Ann", "manager": nil}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	if aws.ToString(fake.get.TableName) != "users-tbl" {
		t.Errorf("table = %q, want users-tbl", aws.ToString(fake.get.TableName))
	}
	if len(fake.get.Key) != 2 {
		t.Errorf("key has %d attributes, want 2", len(fake.get.Key))
	}
}

func TestDynamo_GetAbsent(t *testing.T) {
	t.Parallel()

	d := newDynamo(t, &fakeDynamo{})
	_, err := d.Get(context.Background(), entity.KindGroup, entity.Key{"groupId": "nope"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDynamo_PutMarshalsNull(t *testing.T) {
	t.Parallel()

	fake := &fakeDynamo{}
	d := newDynamo(t, fake)
	err := d.Put(context.Background(), entity.KindGroup, entity.Record{"groupId": "g1", "name": "Ops", "leaderId": nil})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	if aws.ToString(fake.put.TableName) != "groups-tbl" {
		t.Errorf("table = %q, want groups-tbl", aws.ToString(fake.put.TableName))
	}
	if _, ok := fake.put.Item["leaderId"].(*types.AttributeValueMemberNULL); !ok {
		t.Errorf("leaderId = %T, want NULL attribute", fake.put.Item["leaderId"])
	}
}

func TestDynamo_UpdateExpression(t *testing.T) {
	t.Parallel()

	fake := &fakeDynamo{}
	d := newDynamo(t, fake)
	err := d.Update(context.Background(), entity.KindUser,
		entity.Key{"userId": "u1", "groupId": "g1"},
		entity.Record{"name": "Ann", "email": "a@x.io", "role": "admin"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	in := fake.update
	expr := aws.ToString(in.UpdateExpression)
	if !strings.HasPrefix(expr, "SET ") {
		t.Errorf("update expression %q should be a SET clause", expr)
	}

	got := map[string]string{}
	for placeholder, name := range in.ExpressionAttributeNames {
		got[name] = placeholder
	}
	for _, field := range []string{"name", "email", "role"} {
		placeholder, ok := got[field]
		if !ok {
			t.Errorf("field %q has no name placeholder", field)
			continue
		}
		if !strings.Contains(expr, placeholder+" = ") {
			t.Errorf("expression %q does not set %s (%s)", expr, field, placeholder)
		}
	}
	if len(in.ExpressionAttributeValues) != 3 {
		t.Errorf("got %d values, want 3", len(in.ExpressionAttributeValues))
	}
	if _, ok := in.ExpressionAttributeNames["createdAt"]; ok {
		t.Error("createdAt must not be part of an update")
	}
}

func TestDynamo_ScanReadsAllPages(t *testing.T) {
	t.Parallel()

	lastKey := map[string]types.AttributeValue{"groupId": &types.AttributeValueMemberS{Value: "g1"}}
	fake := &fakeDynamo{pages: []*dynamodb.ScanOutput{
		{
			Items:            []map[string]types.AttributeValue{{"groupId": &types.AttributeValueMemberS{Value: "g1"}}},
			LastEvaluatedKey: lastKey,
		},
		{
			Items: []map[string]types.AttributeValue{{"groupId": &types.AttributeValueMemberS{Value: "g2"}}},
		},
	}}
	d := newDynamo(t, fake)

	recs, err := d.Scan(context.Background(), entity.KindGroup)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []entity.Record{{"groupId": "g1"}, {"groupId": "g2"}}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Errorf("scan mismatch (-want +got):\n%s", diff)
	}
	if len(fake.scans) != 2 || fake.scans[1].ExclusiveStartKey == nil {
		t.Error("second page should continue from the last evaluated key")
	}
}

func TestDynamo_ScanEmptyTable(t *testing.T) {
	t.Parallel()

	d := newDynamo(t, &fakeDynamo{pages: []*dynamodb.ScanOutput{{}}})
	recs, err := d.Scan(context.Background(), entity.KindTask)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("recs = %#v, want empty non-nil slice", recs)
	}
}

func TestDynamo_WrapsClientErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("throttled")
	d := newDynamo(t, &fakeDynamo{failErr: boom})

	err := d.Delete(context.Background(), entity.KindGroup, entity.Key{"groupId": "g1"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if !strings.Contains(err.Error(), "delete item from groups-tbl") {
		t.Errorf("error %q lacks operation context", err.Error())
	}
}
