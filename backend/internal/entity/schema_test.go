package entity_test

import (
	"testing"

	"github.com/basewarphq/bwtasks/backend/internal/entity"
	"github.com/google/go-cmp/cmp"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	for _, s := range entity.All() {
		byKind, ok := entity.ByKind(s.Kind)
		if !ok || byKind != s {
			t.Errorf("ByKind(%q) did not return the registered schema", s.Kind)
		}
		byRes, ok := entity.ByResource(s.Resource)
		if !ok || byRes != s {
			t.Errorf("ByResource(%q) did not return the registered schema", s.Resource)
		}
		for _, f := range s.Key.Fields() {
			if !contains(s.Fields(), f) {
				t.Errorf("%s: key field %q is not a declared field", s.Kind, f)
			}
		}
		for _, f := range s.Mutable {
			if contains(s.Key.Fields(), f) {
				t.Errorf("%s: key field %q must not be mutable", s.Kind, f)
			}
		}
	}

	if _, ok := entity.ByResource("projects"); ok {
		t.Error("unknown resource should not resolve")
	}
}

func TestResolveKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		schema  *entity.Schema
		path    string
		query   map[string]string
		want    entity.Key
		wantErr string
	}{
		{
			name:   "single key ignores query",
			schema: entity.Group,
			path:   "g1",
			query:  map[string]string{"groupId": "other"},
			want:   entity.Key{"groupId": "g1"},
		},
		{
			name:   "composite key reads sort component from query",
			schema: entity.Task,
			path:   "t1",
			query:  map[string]string{"groupId": "g1"},
			want:   entity.Key{"taskId": "t1", "groupId": "g1"},
		},
		{
			name:    "composite key without sort component",
			schema:  entity.User,
			path:    "u1",
			wantErr: "Missing required query parameter: groupId",
		},
		{
			name:    "missing path value",
			schema:  entity.Group,
			wantErr: "Missing required path parameter: groupId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.schema.ResolveKey(tt.path, tt.query)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				if !entity.IsValidation(err) {
					t.Errorf("expected a validation error, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("key mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKeyOf(t *testing.T) {
	t.Parallel()

	key, err := entity.User.KeyOf(entity.Record{"userId": "u1", "groupId": "g1", "name": "Ann"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(entity.Key{"userId": "u1", "groupId": "g1"}, key); diff != "" {
		t.Errorf("key mismatch (-want +got):\n%s", diff)
	}

	_, err = entity.User.KeyOf(entity.Record{"userId": "u1", "groupId": nil})
	if err == nil || err.Error() != "Missing required key field: groupId" {
		t.Errorf("error = %v, want missing key field", err)
	}

	_, err = entity.Group.KeyOf(entity.Record{"groupId": float64(7)})
	if err == nil || err.Error() != "Key field groupId must be a string" {
		t.Errorf("error = %v, want non-string key error", err)
	}
}

func TestSubset(t *testing.T) {
	t.Parallel()

	rec := entity.Record{
		"groupId": "g1", "name": "Ops", "leaderId": nil, "createdAt": "2020-01-01T00:00:00.000Z",
	}
	want := entity.Record{"name": "Ops", "leaderId": nil}
	if diff := cmp.Diff(want, entity.Group.Subset(rec)); diff != "" {
		t.Errorf("subset mismatch (-want +got):\n%s", diff)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
