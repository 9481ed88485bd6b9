package bwlwa

import (
	"context"
	"net/http"

	"github.com/advdv/bhttp"
)

// Mux is an alias for bhttp.ServeMux with standard context.
type Mux = bhttp.ServeMux[context.Context]

// NewMux creates a new Mux with sensible defaults. Middleware is installed
// before any route is registered.
func NewMux(mw ...bhttp.Middleware) *Mux {
	logger := bhttp.NewStdLogger(nil)
	m := bhttp.NewCustomServeMux(
		bhttp.StdContextInit,
		-1, // unlimited buffer
		logger,
		http.NewServeMux(),
		bhttp.NewReverser(),
	)
	if len(mw) > 0 {
		m.Use(mw...)
	}
	return m
}
