// Package entity declares the record kinds served by the API and the rules that
// turn a raw request body into a record that may be written to the store.
//
// A [Schema] is pure data: required fields, optional fields with their default
// rule, enumerated constraints, the key shape and the fields an update may
// rewrite. [Validate] and [Schema.KeyOf] are the only behavior built on it.
package entity

import (
	"slices"
	"time"
)

// Kind identifies one of the record kinds.
type Kind string

const (
	KindGroup Kind = "group"
	KindUser  Kind = "user"
	KindTask  Kind = "task"
)

// Record is a flat record as decoded from JSON or read from the store.
type Record map[string]any

// Default produces the value of an optional field that is absent from the input.
type Default func(now time.Time) any

// Static returns a Default that always yields v.
func Static(v any) Default {
	return func(time.Time) any { return v }
}

// Timestamp is the Default for fields that hold the write time.
func Timestamp(now time.Time) any {
	return now.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// Optional declares an optional field and its default rule.
type Optional struct {
	Field   string
	Default Default
}

// Constraint restricts a field to an enumerated set of values.
type Constraint struct {
	Field  string
	Values []string
}

// KeyShape is the addressing scheme of a kind: a partition field and, for
// composite keys, a sort field.
type KeyShape struct {
	Partition string
	Sort      string
}

// Single returns a key shape addressed by one field.
func Single(field string) KeyShape {
	return KeyShape{Partition: field}
}

// Composite returns a key shape addressed by a partition and a sort field.
func Composite(partition, sort string) KeyShape {
	return KeyShape{Partition: partition, Sort: sort}
}

// IsComposite reports whether both key components are needed to address a record.
func (k KeyShape) IsComposite() bool {
	return k.Sort != ""
}

// Fields returns the key fields in partition, sort order.
func (k KeyShape) Fields() []string {
	if k.IsComposite() {
		return []string{k.Partition, k.Sort}
	}
	return []string{k.Partition}
}

// Schema describes one record kind.
type Schema struct {
	Kind Kind
	// Resource is the collection name used in URL paths, e.g. "groups".
	Resource    string
	Required    []string
	Optional    []Optional
	Constraints []Constraint
	Key         KeyShape
	// Mutable lists the fields an update writes. Everything else, createdAt
	// included, is only written by create.
	Mutable []string
}

// IsMutable reports whether an update may write field.
func (s *Schema) IsMutable(field string) bool {
	return slices.Contains(s.Mutable, field)
}

// Fields returns every declared field: required first, then optional, each in
// declaration order.
func (s *Schema) Fields() []string {
	fields := slices.Clone(s.Required)
	for _, opt := range s.Optional {
		fields = append(fields, opt.Field)
	}
	return fields
}

var (
	// Group is addressed by groupId alone.
	Group = &Schema{
		Kind:     KindGroup,
		Resource: "groups",
		Required: []string{"groupId", "name"},
		Optional: []Optional{
			{Field: "leaderId", Default: Static(nil)},
			{Field: "createdAt", Default: Timestamp},
		},
		Key:     Single("groupId"),
		Mutable: []string{"name", "leaderId"},
	}

	// User is addressed by userId within a group.
	User = &Schema{
		Kind:     KindUser,
		Resource: "users",
		Required: []string{"userId", "name", "email", "role"},
		Optional: []Optional{
			{Field: "groupId", Default: Static(nil)},
		},
		Key:     Composite("userId", "groupId"),
		Mutable: []string{"name", "email", "role"},
	}

	// Task is addressed by taskId within a group.
	Task = &Schema{
		Kind:     KindTask,
		Resource: "tasks",
		Required: []string{"taskId", "groupId", "description", "assignedTo"},
		Optional: []Optional{
			{Field: "status", Default: Static("PENDING")},
			{Field: "createdAt", Default: Timestamp},
		},
		Constraints: []Constraint{
			{Field: "status", Values: []string{"PENDING", "COMPLETED"}},
		},
		Key:     Composite("taskId", "groupId"),
		Mutable: []string{"description", "status", "assignedTo"},
	}
)

// All returns the schemas of every kind in a stable order.
func All() []*Schema {
	return []*Schema{Group, User, Task}
}

// ByKind returns the schema registered for kind.
func ByKind(kind Kind) (*Schema, bool) {
	for _, s := range All() {
		if s.Kind == kind {
			return s, true
		}
	}
	return nil, false
}

// ByResource returns the schema whose collection name is resource.
func ByResource(resource string) (*Schema, bool) {
	for _, s := range All() {
		if s.Resource == resource {
			return s, true
		}
	}
	return nil, false
}
