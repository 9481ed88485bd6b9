// Package store persists entity records in a managed key-value store.
//
// The adapters perform no validation: callers hand in well-formed keys and
// validated records. Every operation is a single store round trip; nothing is
// cached between calls.
package store

import (
	"context"

	"github.com/basewarphq/bwtasks/backend/internal/entity"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned by Get when no record exists at the key.
var ErrNotFound = errors.New("record not found")

// Store is the key-value interface the request handler works against.
type Store interface {
	// Get returns the record at key, or ErrNotFound.
	Get(ctx context.Context, kind entity.Kind, key entity.Key) (entity.Record, error)
	// Put writes rec as a whole, replacing any record at the same key.
	Put(ctx context.Context, kind entity.Kind, rec entity.Record) error
	// Update sets the given fields on the record at key. Fields not named are
	// left untouched.
	Update(ctx context.Context, kind entity.Kind, key entity.Key, fields entity.Record) error
	// Delete removes the record at key. Deleting an absent key succeeds.
	Delete(ctx context.Context, kind entity.Kind, key entity.Key) error
	// Scan returns every record of kind in one pass, in no particular order.
	Scan(ctx context.Context, kind entity.Kind) ([]entity.Record, error)
}

// Tables names the store table of each kind.
type Tables struct {
	Groups string `validate:"required"`
	Users  string `validate:"required"`
	Tasks  string `validate:"required"`
}

// Validate checks that every kind has a table.
func (t Tables) Validate() error {
	if err := validator.New().Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return errors.Newf("table name for %s is required", verrs[0].Field())
		}
		return errors.Wrap(err, "validate tables")
	}
	return nil
}

// Name returns the table holding records of kind.
func (t Tables) Name(kind entity.Kind) (string, error) {
	switch kind {
	case entity.KindGroup:
		return t.Groups, nil
	case entity.KindUser:
		return t.Users, nil
	case entity.KindTask:
		return t.Tasks, nil
	default:
		return "", errors.Newf("no table for kind %q", kind)
	}
}
