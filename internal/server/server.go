package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-morph-mcp/internal/imaging"
	"github.com/ironsheep/image-morph-mcp/internal/morph"
	"github.com/ironsheep/image-morph-mcp/internal/session"
)

// ServerName is reported to clients during initialize.
const ServerName = "image-morph-mcp"

// Server handles MCP protocol communication
type Server struct {
	cache   *imaging.RasterCache
	session *session.Session
	logger  logrus.FieldLogger
	version string
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`

	// notification is set when the decoded request carried no id member.
	notification bool
}

// UnmarshalJSON decodes a request and records whether it is a notification.
// An explicit "id": null is a request, not a notification.
func (r *MCPRequest) UnmarshalJSON(data []byte) error {
	type plain MCPRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	_, hasID := members["id"]

	*r = MCPRequest(p)
	r.notification = !hasID
	return nil
}

// IsNotification reports whether the request expects no response.
func (r *MCPRequest) IsNotification() bool {
	return r.notification
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON-RPC error codes used by the server.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// New creates a new MCP server instance. The engine runs every morphology
// operation; version is reported in serverInfo.
func New(engine morph.Engine, logger logrus.FieldLogger, version string) *Server {
	return &Server{
		cache:   imaging.NewRasterCache(),
		session: session.New(engine, logger.WithField("component", "session")),
		logger:  logger,
		version: version,
	}
}

// Run serves MCP over stdin and stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads line-delimited JSON-RPC requests from in and writes responses
// to out until in is exhausted.
func (s *Server) Serve(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	// State restores carry whole rasters, so allow large lines.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 64*1024*1024)

	encoder := json.NewEncoder(out)

	s.logger.WithField("version", s.version).Info("MCP server listening on stdio")
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp *MCPResponse
		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.WithError(err).Warn("Failed to parse request")
			resp = s.errorResponse(nil, codeParseError, "Parse error", err.Error())
		} else {
			resp = s.handleRequest(&req)
		}

		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				return errors.Wrap(err, "failed to encode response")
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "scanner error")
	}

	s.logger.Info("Input closed, MCP server stopping")
	return nil
}

// handleRequest routes requests to appropriate handlers. Notifications are
// still handled but never answered.
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	s.logger.WithFields(logrus.Fields{
		"method":       req.Method,
		"notification": req.IsNotification(),
	}).Debug("Request received")

	resp := s.dispatch(req)
	if req.IsNotification() {
		return nil
	}
	return resp
}

func (s *Server) dispatch(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, codeMethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    ServerName,
				"version": s.version,
			},
		},
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
// An empty data string is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}
