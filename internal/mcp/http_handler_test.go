package mcp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	server := NewServer(Config{
		Services:      Services{},
		TransportMode: "stdio",
	})
	return NewHTTPHandler(server, nil)
}

func postJSONRPC(t *testing.T, handler http.Handler, body string) jsonrpcResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp jsonrpcResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHTTPHandler_Initialize(t *testing.T) {
	handler := newTestHandler(t)

	resp := postJSONRPC(t, handler, `{
		"jsonrpc": "2.0",
		"id": 1,
		"method": "initialize",
		"params": {
			"protocolVersion": "2025-03-26",
			"capabilities": {},
			"clientInfo": {"name": "test-client", "version": "0.0.1"}
		}
	}`)

	require.Nil(t, resp.Error)
	result, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	require.Contains(t, string(result), `"casewatch"`)
}

func TestHTTPHandler_RejectsNonPost(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/rpc", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHTTPHandler_MalformedBodyIsParseError(t *testing.T) {
	handler := newTestHandler(t)

	resp := postJSONRPC(t, handler, `{"jsonrpc": "2.0", "method":`)
	require.NotNil(t, resp.Error)
	require.Equal(t, -32700, resp.Error.Code)
}
