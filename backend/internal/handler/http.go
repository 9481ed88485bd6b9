package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/advdv/bhttp"
	"github.com/basewarphq/bwtasks/bwlwa"
	"github.com/cockroachdb/errors"
)

// Register mounts the collection and item routes of every handler on m. The
// patterns carry no method so that unsupported methods reach the handler and
// get its 400 response instead of the mux's 405.
func Register(m *bwlwa.Mux, hs ...*Handler) {
	for _, h := range hs {
		res := h.schema.Resource
		m.HandleFunc("/"+res, h.ServeBHTTP, res)
		m.HandleFunc("/"+res+"/{"+h.schema.Key.Partition+"}", h.ServeBHTTP, res+"-item")
	}
}

// ServeBHTTP adapts the handler to a bhttp route. The partition key is read
// from the path wildcard named after the key field.
func (h *Handler) ServeBHTTP(ctx context.Context, w bhttp.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return writeResponse(w, h.fail(ctx, Request{Method: r.Method}, errors.Wrap(err, "read request body")))
	}

	req := Request{
		Method:     r.Method,
		PathParams: map[string]string{},
		Query:      map[string]string{},
		Body:       string(body),
	}
	if v := r.PathValue(h.schema.Key.Partition); v != "" {
		req.PathParams[h.schema.Key.Partition] = v
	}
	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			req.Query[name] = values[0]
		}
	}
	return writeResponse(w, h.Handle(ctx, req))
}

func writeResponse(w http.ResponseWriter, resp Response) error {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body == "" {
		return nil
	}
	_, err := io.WriteString(w, resp.Body)
	return err
}
