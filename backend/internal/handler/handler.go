// Package handler serves the CRUD surface of one entity kind.
//
// A Handler is transport agnostic: it takes a parsed Request (method, path
// parameters, query parameters, raw body) and always produces a Response. The
// bhttp and API Gateway adapters in this package translate to and from it.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/basewarphq/bwtasks/backend/internal/entity"
	"github.com/basewarphq/bwtasks/backend/internal/store"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Request is a parsed inbound request.
type Request struct {
	Method     string
	PathParams map[string]string
	Query      map[string]string
	Body       string
}

// Response is the formatted outcome of a request.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// Handler dispatches requests for a single entity kind.
type Handler struct {
	schema *entity.Schema
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock overrides the time source used for timestamp defaults.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// New creates a Handler for schema backed by st.
func New(schema *entity.Schema, st store.Store, logger *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		schema: schema,
		store:  st,
		logger: logger.With(zap.String("kind", string(schema.Kind))),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Schema returns the schema the handler serves.
func (h *Handler) Schema() *entity.Schema {
	return h.schema
}

// Handle runs one request to completion. Errors never escape: they are
// converted into a 400 or 500 response here and nowhere else.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("entity.kind", string(h.schema.Kind)),
		attribute.String("entity.operation", req.Method),
	)

	var (
		status int
		body   any
		err    error
	)
	switch req.Method {
	case http.MethodPost:
		status = http.StatusCreated
		body, err = h.create(ctx, req)
	case http.MethodGet:
		status = http.StatusOK
		if h.partition(req) == "" {
			body, err = h.readAll(ctx)
		} else {
			body, err = h.readOne(ctx, req)
		}
	case http.MethodPut:
		status = http.StatusOK
		body, err = h.update(ctx, req)
	case http.MethodDelete:
		status = http.StatusNoContent
		err = h.remove(ctx, req)
	default:
		return respond(http.StatusBadRequest, errorBody{Error: "Unsupported method"})
	}
	if err != nil {
		return h.fail(ctx, req, err)
	}
	return respond(status, body)
}

func (h *Handler) create(ctx context.Context, req Request) (entity.Record, error) {
	raw, err := parseBody(req.Body)
	if err != nil {
		return nil, err
	}
	rec, err := entity.ValidateAt(h.schema, raw, h.now())
	if err != nil {
		return nil, err
	}
	if _, err := h.schema.KeyOf(rec); err != nil {
		return nil, err
	}
	if err := h.store.Put(ctx, h.schema.Kind, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// readOne returns nil, rendered as a JSON null, when no record exists at the key.
func (h *Handler) readOne(ctx context.Context, req Request) (entity.Record, error) {
	key, err := h.schema.ResolveKey(h.partition(req), req.Query)
	if err != nil {
		return nil, err
	}
	rec, err := h.store.Get(ctx, h.schema.Kind, key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return rec, nil
}

func (h *Handler) readAll(ctx context.Context) ([]entity.Record, error) {
	return h.store.Scan(ctx, h.schema.Kind)
}

// update writes only the mutable fields but answers with the full validated
// record. Key fields from the path and query win over the body.
func (h *Handler) update(ctx context.Context, req Request) (entity.Record, error) {
	key, err := h.schema.ResolveKey(h.partition(req), req.Query)
	if err != nil {
		return nil, err
	}
	raw, err := parseBody(req.Body)
	if err != nil {
		return nil, err
	}
	rec, err := entity.ValidateAt(h.schema, entity.Merge(raw, key), h.now())
	if err != nil {
		return nil, err
	}
	if err := h.store.Update(ctx, h.schema.Kind, key, h.schema.Subset(rec)); err != nil {
		return nil, err
	}
	return rec, nil
}

func (h *Handler) remove(ctx context.Context, req Request) error {
	key, err := h.schema.ResolveKey(h.partition(req), req.Query)
	if err != nil {
		return err
	}
	return h.store.Delete(ctx, h.schema.Kind, key)
}

func (h *Handler) partition(req Request) string {
	return req.PathParams[h.schema.Key.Partition]
}

func parseBody(body string) (entity.Record, error) {
	var rec entity.Record
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil, errors.Wrap(err, "parse request body")
	}
	return rec, nil
}
