package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/mememania/internal/logger"
	"github.com/timmy/mememania/internal/mcp"
)

// maxRequestBytes bounds a single JSON-RPC message.
const maxRequestBytes = 1 << 20

// MCPHandler serves the stateless streamable-HTTP tool endpoint.
type MCPHandler struct {
	server *mcp.Server
}

// NewMCPHandler creates a new MCP handler.
// Parameters:
//   - server: JSON-RPC dispatcher with the registered tools.
// Returns:
//   - *MCPHandler: initialized handler.
func NewMCPHandler(server *mcp.Server) *MCPHandler {
	return &MCPHandler{server: server}
}

// Handle handles POST on the MCP endpoint.
// Requests get a JSON response; notifications get 202 Accepted with no body.
func (h *MCPHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes))
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "Failed to read request body: %v", err)
		c.JSON(http.StatusRequestEntityTooLarge, &mcp.Response{
			JSONRPC: mcp.JSONRPCVersion,
			ID:      []byte("null"),
			Error:   &mcp.RPCError{Code: mcp.CodeInvalidRequest, Message: "Request body too large"},
		})
		return
	}

	resp := h.server.Handle(c.Request.Context(), body)
	if resp == nil {
		c.Status(http.StatusAccepted)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MethodNotAllowed rejects GET and DELETE; this server keeps no sessions
// and offers no server-initiated stream.
func (h *MCPHandler) MethodNotAllowed(c *gin.Context) {
	c.Header("Allow", http.MethodPost)
	c.JSON(http.StatusMethodNotAllowed, gin.H{
		"error": "Method not allowed",
	})
}
