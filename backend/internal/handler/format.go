package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/basewarphq/bwtasks/backend/internal/entity"
	"github.com/basewarphq/bwtasks/bwlwa"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// corsHeaders are attached to every response, success or failure.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type",
	"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE",
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func headers() map[string]string {
	hdr := make(map[string]string, len(corsHeaders)+1)
	for k, v := range corsHeaders {
		hdr[k] = v
	}
	hdr["Content-Type"] = "application/json"
	return hdr
}

// respond renders body as JSON. A 204 carries no body at all.
func respond(status int, body any) Response {
	resp := Response{StatusCode: status, Headers: headers()}
	if status == http.StatusNoContent {
		return resp
	}
	data, err := json.Marshal(body)
	if err != nil {
		return Response{
			StatusCode: http.StatusInternalServerError,
			Headers:    resp.Headers,
			Body:       mustMarshal(errorBody{Error: err.Error(), Details: fmt.Sprintf("%+v", err)}),
		}
	}
	resp.Body = string(data)
	return resp
}

// fail maps err to a response. Validation failures are the caller's fault and
// never carry a diagnostic trace; anything else is a 500 that does.
func (h *Handler) fail(ctx context.Context, req Request, err error) Response {
	logger := h.logger.With(bwlwa.TraceFields(ctx)...).With(zap.String("method", req.Method))
	span := bwlwa.Span(ctx)
	span.RecordError(err)

	if entity.IsValidation(err) {
		logger.Info("rejected request", zap.Error(err))
		return respond(http.StatusBadRequest, errorBody{Error: err.Error()})
	}

	logger.Error("request failed", zap.Error(err))
	span.SetStatus(codes.Error, err.Error())
	return respond(http.StatusInternalServerError, errorBody{
		Error:   err.Error(),
		Details: fmt.Sprintf("%+v", err),
	})
}

func mustMarshal(v any) string {
	data, _ := json.Marshal(v)
	return string(data)
}
