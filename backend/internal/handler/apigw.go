package handler

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/basewarphq/bwtasks/backend/internal/entity"
	"github.com/basewarphq/bwtasks/backend/internal/store"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Proxy serves API Gateway proxy-integration events, routing each to the
// handler of the resource named by the event's first path segment.
type Proxy struct {
	handlers map[string]*Handler
}

// NewProxy creates a Proxy over the given handlers.
func NewProxy(hs ...*Handler) *Proxy {
	p := &Proxy{handlers: make(map[string]*Handler, len(hs))}
	for _, h := range hs {
		p.handlers[h.schema.Resource] = h
	}
	return p
}

// NewAll creates one handler per registered entity kind, all backed by st.
func NewAll(st store.Store, logger *zap.Logger, opts ...Option) []*Handler {
	schemas := entity.All()
	hs := make([]*Handler, 0, len(schemas))
	for _, s := range schemas {
		hs = append(hs, New(s, st, logger, opts...))
	}
	return hs
}

// Handle has the signature lambda.Start expects.
func (p *Proxy) Handle(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	path := ev.Resource
	if path == "" {
		path = ev.Path
	}
	resource, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")

	h, ok := p.handlers[resource]
	if !ok {
		return toProxyResponse(respond(http.StatusNotFound, errorBody{Error: "Unknown resource: " + resource})), nil
	}
	body := ev.Body
	if ev.IsBase64Encoded {
		data, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return toProxyResponse(h.fail(ctx, Request{Method: ev.HTTPMethod},
				errors.Wrap(err, "decode request body"))), nil
		}
		body = string(data)
	}
	resp := h.Handle(ctx, Request{
		Method:     ev.HTTPMethod,
		PathParams: ev.PathParameters,
		Query:      ev.QueryStringParameters,
		Body:       body,
	})
	return toProxyResponse(resp), nil
}

func toProxyResponse(resp Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}
