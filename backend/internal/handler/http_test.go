package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/basewarphq/bwtasks/backend/internal/handler"
	"github.com/basewarphq/bwtasks/backend/internal/store"
	"github.com/basewarphq/bwtasks/bwlwa"
	"go.uber.org/zap/zaptest"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := bwlwa.NewMux()
	handler.Register(mux, handler.NewAll(store.NewMemory(), zaptest.NewLogger(t))...)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func send(t *testing.T, method, url, body string) (int, http.Header, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, resp.Header, string(data)
}

func TestHTTP_TaskLifecycle(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	status, hdr, _ := send(t, http.MethodPost, srv.URL+"/tasks",
		`{"taskId":"t1","groupId":"g1","description":"Write docs","assignedTo":"u1"}`)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	if hdr.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header on HTTP response")
	}

	status, _, body := send(t, http.MethodGet, srv.URL+"/tasks/t1?groupId=g1", "")
	if status != http.StatusOK || !strings.Contains(body, `"description":"Write docs"`) {
		t.Fatalf("read = %d %s", status, body)
	}

	status, _, body = send(t, http.MethodPut, srv.URL+"/tasks/t1?groupId=g1",
		`{"description":"Write docs","assignedTo":"u1","status":"COMPLETED"}`)
	if status != http.StatusOK || !strings.Contains(body, `"status":"COMPLETED"`) {
		t.Fatalf("update = %d %s", status, body)
	}

	status, _, body = send(t, http.MethodGet, srv.URL+"/tasks/t1", "")
	if status != http.StatusBadRequest {
		t.Fatalf("read without groupId = %d %s, want 400", status, body)
	}

	status, _, body = send(t, http.MethodDelete, srv.URL+"/tasks/t1?groupId=g1", "")
	if status != http.StatusNoContent || body != "" {
		t.Fatalf("delete = %d %q", status, body)
	}

	status, _, body = send(t, http.MethodGet, srv.URL+"/tasks", "")
	if status != http.StatusOK || body != "[]" {
		t.Fatalf("list = %d %s", status, body)
	}
}

func TestHTTP_UnsupportedMethodReachesHandler(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	status, _, body := send(t, http.MethodPatch, srv.URL+"/groups/g1", `{}`)
	if status != http.StatusBadRequest || body != `{"error":"Unsupported method"}` {
		t.Errorf("PATCH = %d %s", status, body)
	}
}
