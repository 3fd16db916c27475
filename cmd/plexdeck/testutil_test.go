package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockServer is a fluent builder for an httptest.Server that checks the
// request it receives and replies with a canned response.
type mockServer struct {
	t           *testing.T
	server      *httptest.Server
	handler     http.HandlerFunc
	expectPath  string
	expectQuery string
	expectMeth  string
	body        *[]byte
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	return &mockServer{t: t}
}

func (m *mockServer) ExpectPath(path string) *mockServer {
	m.expectPath = path
	return m
}

// ExpectQuery checks the raw (encoded) query string.
func (m *mockServer) ExpectQuery(query string) *mockServer {
	m.expectQuery = query
	return m
}

func (m *mockServer) ExpectMethod(method string) *mockServer {
	m.expectMeth = method
	return m
}

func (m *mockServer) ExpectGET() *mockServer    { return m.ExpectMethod(http.MethodGet) }
func (m *mockServer) ExpectPOST() *mockServer   { return m.ExpectMethod(http.MethodPost) }
func (m *mockServer) ExpectPUT() *mockServer    { return m.ExpectMethod(http.MethodPut) }
func (m *mockServer) ExpectDELETE() *mockServer { return m.ExpectMethod(http.MethodDelete) }

// CaptureBody stores the request body in dst.
func (m *mockServer) CaptureBody(dst *[]byte) *mockServer {
	m.body = dst
	return m
}

func (m *mockServer) RespondJSON(v any) *mockServer {
	return m.RespondStatusJSON(http.StatusOK, v)
}

func (m *mockServer) RespondStatusJSON(code int, v any) *mockServer {
	m.handler = func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(m.t, w, code, v)
	}
	return m
}

func (m *mockServer) RespondStatus(code int) *mockServer {
	m.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	}
	return m
}

// RespondError replies the way the daemon's writeError does.
func (m *mockServer) RespondError(code int, errCode, message string) *mockServer {
	return m.RespondStatusJSON(code, map[string]string{"error": message, "code": errCode})
}

func (m *mockServer) Build() *httptest.Server {
	m.t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.expectPath != "" {
			assert.Equal(m.t, m.expectPath, r.URL.Path, "unexpected request path")
		}
		if m.expectQuery != "" {
			assert.Equal(m.t, m.expectQuery, r.URL.RawQuery, "unexpected query")
		}
		if m.expectMeth != "" {
			assert.Equal(m.t, m.expectMeth, r.Method, "unexpected request method")
		}
		if m.body != nil {
			*m.body, _ = io.ReadAll(r.Body)
		}
		if m.handler != nil {
			m.handler(w, r)
		}
	})

	m.server = httptest.NewServer(handler)
	return m.server
}

func respondJSON(t *testing.T, w http.ResponseWriter, code int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode JSON response: %v", err)
	}
}

// withServerURL points the commands at url until the returned func runs.
func withServerURL(url string) func() {
	old := serverURL
	serverURL = url
	return func() { serverURL = old }
}
