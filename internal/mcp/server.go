package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/timmy/mememania/internal/domain"
	"github.com/timmy/mememania/internal/logger"
)

// Server dispatches JSON-RPC requests to registered tools.
// It keeps no per-session state: every request is handled on its own.
type Server struct {
	info         Implementation
	instructions string
	registry     *Registry
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithInstructions sets the instructions returned from initialize.
func WithInstructions(text string) ServerOption {
	return func(s *Server) {
		s.instructions = text
	}
}

// NewServer creates a server exposing the tools in registry.
func NewServer(info Implementation, registry *Registry, opts ...ServerOption) *Server {
	s := &Server{
		info:     info,
		registry: registry,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the server's tool registry.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Handle processes one JSON-RPC message.
// Parameters:
//   - ctx: request context.
//   - body: raw JSON-RPC message.
// Returns:
//   - *Response: response to send, or nil for notifications.
func (s *Server) Handle(ctx context.Context, body []byte) *Response {
	if !json.Valid(body) {
		return errorResponse(nil, &RPCError{Code: CodeParseError, Message: "Parse error"})
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return errorResponse(nil, &RPCError{Code: CodeInvalidRequest, Message: "Invalid Request: " + err.Error()})
	}
	if req.JSONRPC != JSONRPCVersion || req.Method == "" {
		return errorResponse(req.ID, &RPCError{Code: CodeInvalidRequest, Message: "Invalid Request"})
	}

	ctx = logger.WithField(ctx, logger.FieldRPCMethod, req.Method)

	if req.IsNotification() {
		s.handleNotification(ctx, &req)
		return nil
	}

	result, err := s.dispatch(ctx, &req)
	if err != nil {
		return errorResponse(req.ID, toRPCError(err))
	}
	return &Response{JSONRPC: JSONRPCVersion, ID: req.ID, Result: result}
}

func (s *Server) dispatch(ctx context.Context, req *Request) (interface{}, error) {
	switch req.Method {
	case MethodInitialize:
		return s.handleInitialize(ctx, req.Params)
	case MethodPing:
		return struct{}{}, nil
	case MethodToolsList:
		return &ListToolsResult{Tools: s.registry.Definitions()}, nil
	case MethodToolsCall:
		return s.handleCallTool(ctx, req.Params)
	default:
		return nil, &RPCError{Code: CodeMethodNotFound, Message: fmt.Sprintf("Method not found: %s", req.Method)}
	}
}

func (s *Server) handleNotification(ctx context.Context, req *Request) {
	if req.Method == MethodInitialized {
		logger.CtxDebug(ctx, "Client initialized")
		return
	}
	logger.CtxDebug(ctx, "Ignoring notification")
}

func (s *Server) handleInitialize(ctx context.Context, params json.RawMessage) (*InitializeResult, error) {
	var p InitializeParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, &RPCError{Code: CodeInvalidParams, Message: "Invalid params: " + err.Error()}
		}
	}

	version := LatestProtocolVersion
	if slices.Contains(SupportedProtocolVersions, p.ProtocolVersion) {
		version = p.ProtocolVersion
	}

	logger.CtxInfo(ctx, "Initialize: client=%s/%s, protocol=%s", p.ClientInfo.Name, p.ClientInfo.Version, version)

	return &InitializeResult{
		ProtocolVersion: version,
		Capabilities: ServerCapabilities{
			Tools: &ToolsCapability{ListChanged: false},
		},
		ServerInfo:   s.info,
		Instructions: s.instructions,
	}, nil
}

func (s *Server) handleCallTool(ctx context.Context, params json.RawMessage) (*ToolResult, error) {
	var p CallToolParams
	if err := json.Unmarshal(params, &p); err != nil || p.Name == "" {
		return nil, &RPCError{Code: CodeInvalidParams, Message: "Invalid params: tool name is required"}
	}

	tool, ok := s.registry.Get(p.Name)
	if !ok {
		return nil, &RPCError{Code: CodeInvalidParams, Message: fmt.Sprintf("Unknown tool: %s", p.Name)}
	}

	ctx = logger.WithField(ctx, logger.FieldTool, p.Name)
	start := time.Now()

	result, err := tool.Call(ctx, p.Arguments)
	if err != nil {
		logger.With(logger.Fields{
			logger.FieldDurationMs: time.Since(start).Milliseconds(),
		}).Error(ctx, "Tool call failed: %v", err)
		return nil, err
	}

	logger.With(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Info(ctx, "Tool call completed")

	return result, nil
}

// toRPCError maps domain errors onto JSON-RPC error codes.
func toRPCError(err error) *RPCError {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}

	switch {
	case errors.Is(err, domain.ErrInvalidParameter):
		return &RPCError{Code: CodeInvalidParams, Message: err.Error()}
	default:
		return &RPCError{Code: CodeInternalError, Message: err.Error()}
	}
}

func errorResponse(id json.RawMessage, rpcErr *RPCError) *Response {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return &Response{JSONRPC: JSONRPCVersion, ID: id, Error: rpcErr}
}
