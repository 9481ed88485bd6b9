package store

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/basewarphq/bwtasks/backend/internal/entity"
	"github.com/cockroachdb/errors"
)

// Memory keeps records in process memory. It backs handler tests and local
// runs without AWS; it is safe for concurrent use and, like the DynamoDB
// store, the last write to a key wins.
type Memory struct {
	mu     sync.RWMutex
	tables map[entity.Kind]map[string]entity.Record
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{tables: map[entity.Kind]map[string]entity.Record{}}
}

func (m *Memory) Get(_ context.Context, kind entity.Kind, key entity.Key) (entity.Record, error) {
	id, err := memKey(kind, key)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.tables[kind][id]
	if !ok {
		return nil, ErrNotFound
	}
	return maps.Clone(rec), nil
}

func (m *Memory) Put(_ context.Context, kind entity.Kind, rec entity.Record) error {
	schema, ok := entity.ByKind(kind)
	if !ok {
		return errors.Newf("no table for kind %q", kind)
	}
	key := entity.Key{}
	for _, f := range schema.Key.Fields() {
		key[f], _ = rec[f].(string)
	}
	id, err := memKey(kind, key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.table(kind)[id] = maps.Clone(rec)
	return nil
}

// Update creates the record from its key when absent, as DynamoDB UpdateItem does.
func (m *Memory) Update(_ context.Context, kind entity.Kind, key entity.Key, fields entity.Record) error {
	id, err := memKey(kind, key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	tbl := m.table(kind)
	rec, ok := tbl[id]
	if !ok {
		rec = entity.Record{}
		for f, v := range key {
			rec[f] = v
		}
	} else {
		rec = maps.Clone(rec)
	}
	maps.Copy(rec, fields)
	tbl[id] = rec
	return nil
}

func (m *Memory) Delete(_ context.Context, kind entity.Kind, key entity.Key) error {
	id, err := memKey(kind, key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables[kind], id)
	return nil
}

// Scan returns a snapshot of the kind's records, ordered by key.
func (m *Memory) Scan(_ context.Context, kind entity.Kind) ([]entity.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tbl := m.tables[kind]
	recs := make([]entity.Record, 0, len(tbl))
	for _, id := range slices.Sorted(maps.Keys(tbl)) {
		recs = append(recs, maps.Clone(tbl[id]))
	}
	return recs, nil
}

func (m *Memory) table(kind entity.Kind) map[string]entity.Record {
	tbl, ok := m.tables[kind]
	if !ok {
		tbl = map[string]entity.Record{}
		m.tables[kind] = tbl
	}
	return tbl
}

// memKey joins the key components in schema order.
func memKey(kind entity.Kind, key entity.Key) (string, error) {
	schema, ok := entity.ByKind(kind)
	if !ok {
		return "", errors.Newf("no table for kind %q", kind)
	}
	parts := make([]string, 0, 2)
	for _, f := range schema.Key.Fields() {
		v, ok := key[f]
		if !ok || v == "" {
			return "", errors.Newf("key for %s is missing %q", kind, f)
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, "\x1f"), nil
}
