package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewHTTPHandler creates a simple HTTP handler for single-shot JSON-RPC
// requests, bridging to the SDK server through an in-memory transport.
func NewHTTPHandler(server *sdkmcp.Server, logger *slog.Logger) http.Handler {
	return &httpHandler{
		server: server,
		logger: logger,
	}
}

type httpHandler struct {
	server *sdkmcp.Server
	logger *slog.Logger
}

type jsonrpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id,omitempty"`
}

type jsonrpcResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	Result  any           `json:"result,omitempty"`
	Error   *jsonrpcError `json:"error,omitempty"`
	ID      any           `json:"id,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, -32700, "Parse error", nil)
		return
	}

	var req jsonrpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, -32700, "Parse error", nil)
		return
	}

	t1, t2 := sdkmcp.NewInMemoryTransports()

	session, err := h.server.Connect(r.Context(), t1, nil)
	if err != nil {
		h.writeError(w, -32603, fmt.Sprintf("Internal error: %v", err), req.ID)
		return
	}
	defer session.Close()

	conn, err := t2.Connect(r.Context())
	if err != nil {
		h.writeError(w, -32603, fmt.Sprintf("Internal error: %v", err), req.ID)
		return
	}
	defer conn.Close()

	id, err := jsonrpc.MakeID(req.ID)
	if err != nil {
		h.writeError(w, -32700, "Parse error", nil)
		return
	}

	if err := conn.Write(r.Context(), &jsonrpc.Request{
		ID:     id,
		Method: req.Method,
		Params: req.Params,
	}); err != nil {
		h.writeError(w, -32603, fmt.Sprintf("Internal error: %v", err), req.ID)
		return
	}

	msg, err := conn.Read(r.Context())
	if err != nil {
		h.writeError(w, -32603, fmt.Sprintf("Internal error: %v", err), req.ID)
		return
	}

	resp, ok := msg.(*jsonrpc.Response)
	if !ok {
		h.writeError(w, -32603, "Internal error: unexpected message type", req.ID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jsonrpcResponse{
		JSONRPC: "2.0",
		Result:  resp.Result,
		Error:   convertSDKError(resp.Error),
		ID:      resp.ID.Raw(),
	})
}

func (h *httpHandler) writeError(w http.ResponseWriter, code int, message string, id any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK) // JSON-RPC errors are still 200 OK
	json.NewEncoder(w).Encode(jsonrpcResponse{
		JSONRPC: "2.0",
		Error: &jsonrpcError{
			Code:    code,
			Message: message,
		},
		ID: id,
	})
}

func convertSDKError(err error) *jsonrpcError {
	if err == nil {
		return nil
	}
	var wireErr *jsonrpc.Error
	if errors.As(err, &wireErr) {
		return &jsonrpcError{
			Code:    int(wireErr.Code),
			Message: wireErr.Message,
			Data:    wireErr.Data,
		}
	}
	return &jsonrpcError{
		Code:    -32603,
		Message: err.Error(),
	}
}
