package server

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-morph-mcp/internal/detection"
	"github.com/ironsheep/image-morph-mcp/internal/imaging"
	"github.com/ironsheep/image-morph-mcp/internal/morph"
	"github.com/ironsheep/image-morph-mcp/internal/ocr"
	"github.com/ironsheep/image-morph-mcp/internal/session"
)

// Raster sources accepted by the read-only tools.
const (
	sourceCurrent  = "current"
	sourceOriginal = "original"
)

// maxRepeat bounds morph_apply's repeat argument.
const maxRepeat = 100

// errInvalidParams marks errors caused by the caller's arguments rather than
// by tool execution. They are reported with code -32602.
var errInvalidParams = errors.New("invalid params")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "morph_load", "morph_apply").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsList returns every tool definition.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Bad arguments and unknown tools return code -32602; tool execution errors
// return code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	log := s.logger.WithField("tool", params.Name)
	start := time.Now()

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.WithError(err).Warn("Tool call failed")
		if errors.Is(err, errInvalidParams) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	log.WithField("duration", time.Since(start).String()).Debug("Tool call completed")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image
	case "morph_load":
		return s.handleLoad(args)
	case "morph_save":
		return s.handleSave(args)
	case "morph_render":
		return s.handleRender(args)

	// Kernel
	case "morph_kernel":
		return s.kernelResult(), nil
	case "morph_kernel_resize":
		return s.handleKernelResize(args)
	case "morph_kernel_toggle":
		return s.handleKernelToggle(args)
	case "morph_kernel_dont_care":
		return s.handleKernelDontCare(args)

	// Operations
	case "morph_operations":
		return map[string]interface{}{"operations": session.Operations()}, nil
	case "morph_apply":
		return s.handleApply(args)
	case "morph_reset":
		return s.handleReset()

	// Session
	case "morph_state":
		return s.handleState(args)
	case "morph_restore":
		return s.handleRestore(args)

	// Analysis
	case "morph_sample_pixel":
		return s.handleSamplePixel(args)
	case "morph_stats":
		return s.handleStats(args)
	case "morph_diff":
		return s.handleDiff()
	case "morph_components":
		return s.handleComponents(args)
	case "morph_ocr":
		return s.handleOCR(args)

	default:
		return nil, errors.Wrapf(errInvalidParams, "unknown tool: %s", name)
	}
}

// decodeArgs unmarshals tool arguments into v. Missing or null arguments
// leave v untouched; unknown fields are rejected.
func decodeArgs(args json.RawMessage, v interface{}) error {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrapf(errInvalidParams, "invalid arguments: %v", err)
	}
	return nil
}

// raster returns the session raster named by source.
func (s *Server) raster(source string) (*morph.Raster, error) {
	switch source {
	case "", sourceCurrent:
		return s.session.Current()
	case sourceOriginal:
		return s.session.Original()
	default:
		return nil, errors.Wrapf(errInvalidParams, "unknown source %q: want %s or %s",
			source, sourceCurrent, sourceOriginal)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Handlers ===

// LoadResult is returned by morph_load.
type LoadResult struct {
	imaging.RasterInfo
	Stats   *imaging.StatsResult `json:"stats"`
	Kernel  *morph.Kernel        `json:"kernel"`
	Message string               `json:"message"`
}

func (s *Server) handleLoad(args json.RawMessage) (interface{}, error) {
	var p struct {
		Path string `json:"path"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}
	if p.Path == "" {
		return nil, errors.Wrap(errInvalidParams, "path is required")
	}

	// Reload from disk so edits to the file between loads are seen.
	s.cache.Evict(p.Path)
	info, err := imaging.LoadInfo(s.cache, p.Path)
	if err != nil {
		return nil, err
	}
	r, err := s.cache.Load(p.Path)
	if err != nil {
		return nil, err
	}
	s.session.Load(r)

	current, err := s.session.Current()
	if err != nil {
		return nil, err
	}
	return &LoadResult{
		RasterInfo: *info,
		Stats:      imaging.Stats(current),
		Kernel:     s.session.Kernel(),
		Message:    "Image loaded and binarized",
	}, nil
}

func (s *Server) handleSave(args json.RawMessage) (interface{}, error) {
	var p struct {
		Path   string `json:"path"`
		Source string `json:"source"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}
	if p.Path == "" {
		return nil, errors.Wrap(errInvalidParams, "path is required")
	}
	r, err := s.raster(p.Source)
	if err != nil {
		return nil, err
	}
	if err := imaging.Save(r, p.Path); err != nil {
		return nil, err
	}
	s.logger.WithField("path", p.Path).Info("Raster saved")
	return map[string]interface{}{
		"path":   p.Path,
		"width":  r.Width(),
		"height": r.Height(),
	}, nil
}

func (s *Server) handleRender(args json.RawMessage) (interface{}, error) {
	p := struct {
		Source string  `json:"source"`
		Scale  float64 `json:"scale"`
	}{Scale: 1.0}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}
	r, err := s.raster(p.Source)
	if err != nil {
		return nil, err
	}
	return imaging.Render(r, p.Scale)
}

// === Kernel Handlers ===

// KernelResult describes the structuring element.
type KernelResult struct {
	Dimension int      `json:"dimension"`
	Center    int      `json:"center"`
	Rows      []string `json:"rows"`
}

func (s *Server) kernelResult() *KernelResult {
	k := s.session.Kernel()
	return &KernelResult{Dimension: k.Dimension(), Center: k.Center(), Rows: k.Rows()}
}

func (s *Server) handleKernelResize(args json.RawMessage) (interface{}, error) {
	var p struct {
		Dimension *int `json:"dimension"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}
	if p.Dimension == nil {
		return nil, errors.Wrap(errInvalidParams, "dimension is required")
	}
	if err := s.session.ResizeKernel(*p.Dimension); err != nil {
		return nil, errors.Wrapf(errInvalidParams, "%v", err)
	}
	return s.kernelResult(), nil
}

// cellArgs are the coordinates of one kernel cell.
type cellArgs struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

func decodeCell(args json.RawMessage) (int, int, error) {
	var p cellArgs
	if err := decodeArgs(args, &p); err != nil {
		return 0, 0, err
	}
	if p.X == nil || p.Y == nil {
		return 0, 0, errors.Wrap(errInvalidParams, "x and y are required")
	}
	return *p.X, *p.Y, nil
}

func (s *Server) handleKernelToggle(args json.RawMessage) (interface{}, error) {
	x, y, err := decodeCell(args)
	if err != nil {
		return nil, err
	}
	if _, err := s.session.ToggleCell(x, y); err != nil {
		return nil, errors.Wrapf(errInvalidParams, "%v", err)
	}
	return s.kernelResult(), nil
}

func (s *Server) handleKernelDontCare(args json.RawMessage) (interface{}, error) {
	x, y, err := decodeCell(args)
	if err != nil {
		return nil, err
	}
	if err := s.session.SetDontCare(x, y); err != nil {
		return nil, errors.Wrapf(errInvalidParams, "%v", err)
	}
	return s.kernelResult(), nil
}

// === Operation Handlers ===

// ApplyResult is returned by morph_apply and morph_reset.
type ApplyResult struct {
	Operation string               `json:"operation,omitempty"`
	Repeat    int                  `json:"repeat,omitempty"`
	History   []string             `json:"history"`
	Stats     *imaging.StatsResult `json:"stats"`
}

func (s *Server) handleApply(args json.RawMessage) (interface{}, error) {
	p := struct {
		Operation string `json:"operation"`
		Repeat    int    `json:"repeat"`
	}{Repeat: 1}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}
	if _, ok := session.Lookup(p.Operation); !ok {
		return nil, errors.Wrapf(errInvalidParams, "unknown operation %q", p.Operation)
	}
	if p.Repeat < 1 || p.Repeat > maxRepeat {
		return nil, errors.Wrapf(errInvalidParams, "repeat must be between 1 and %d", maxRepeat)
	}

	var current *morph.Raster
	for i := 0; i < p.Repeat; i++ {
		var err error
		if current, err = s.session.Apply(p.Operation); err != nil {
			return nil, err
		}
	}

	s.logger.WithFields(logrus.Fields{
		"operation": p.Operation,
		"repeat":    p.Repeat,
	}).Info("Operation applied")

	return &ApplyResult{
		Operation: p.Operation,
		Repeat:    p.Repeat,
		History:   s.session.History(),
		Stats:     imaging.Stats(current),
	}, nil
}

func (s *Server) handleReset() (interface{}, error) {
	if err := s.session.Reset(); err != nil {
		return nil, err
	}
	current, err := s.session.Current()
	if err != nil {
		return nil, err
	}
	return &ApplyResult{
		History: s.session.History(),
		Stats:   imaging.Stats(current),
	}, nil
}

// === Session Handlers ===

// StateResult is returned by morph_state. State is only present when
// rasters were requested.
type StateResult struct {
	Loaded  bool           `json:"loaded"`
	Width   int            `json:"width,omitempty"`
	Height  int            `json:"height,omitempty"`
	Kernel  *morph.Kernel  `json:"kernel"`
	History []string       `json:"history"`
	State   *session.State `json:"state,omitempty"`
}

func (s *Server) handleState(args json.RawMessage) (interface{}, error) {
	var p struct {
		IncludeRasters bool `json:"include_rasters"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}

	st := s.session.State()
	result := &StateResult{
		Loaded:  st.Current != nil,
		Kernel:  st.Kernel,
		History: st.History,
	}
	if st.Current != nil {
		result.Width = st.Current.Width()
		result.Height = st.Current.Height()
	}
	if p.IncludeRasters {
		result.State = &st
	}
	return result, nil
}

func (s *Server) handleRestore(args json.RawMessage) (interface{}, error) {
	var p struct {
		State *session.State `json:"state"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}
	if p.State == nil {
		return nil, errors.Wrap(errInvalidParams, "state is required")
	}
	if err := s.session.Restore(*p.State); err != nil {
		return nil, errors.Wrapf(errInvalidParams, "%v", err)
	}
	return s.handleState(nil)
}

// === Analysis Handlers ===

func (s *Server) handleSamplePixel(args json.RawMessage) (interface{}, error) {
	var p struct {
		X      *int   `json:"x"`
		Y      *int   `json:"y"`
		Source string `json:"source"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}
	if p.X == nil || p.Y == nil {
		return nil, errors.Wrap(errInvalidParams, "x and y are required")
	}
	r, err := s.raster(p.Source)
	if err != nil {
		return nil, err
	}
	return imaging.SamplePixel(r, *p.X, *p.Y)
}

func (s *Server) handleStats(args json.RawMessage) (interface{}, error) {
	var p struct {
		Source string `json:"source"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}
	r, err := s.raster(p.Source)
	if err != nil {
		return nil, err
	}
	return imaging.Stats(r), nil
}

func (s *Server) handleDiff() (interface{}, error) {
	original, err := s.session.Original()
	if err != nil {
		return nil, err
	}
	current, err := s.session.Current()
	if err != nil {
		return nil, err
	}
	return imaging.Diff(original, current)
}

func (s *Server) handleComponents(args json.RawMessage) (interface{}, error) {
	p := struct {
		MinArea int    `json:"min_area"`
		Source  string `json:"source"`
	}{MinArea: 1}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}
	if p.MinArea < 0 {
		return nil, errors.Wrap(errInvalidParams, "min_area must not be negative")
	}
	r, err := s.raster(p.Source)
	if err != nil {
		return nil, err
	}
	return detection.Components(r, p.MinArea)
}

func (s *Server) handleOCR(args json.RawMessage) (interface{}, error) {
	var p struct {
		Language string `json:"language"`
		Source   string `json:"source"`
		Region   *struct {
			X1 int `json:"x1"`
			Y1 int `json:"y1"`
			X2 int `json:"x2"`
			Y2 int `json:"y2"`
		} `json:"region"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}
	r, err := s.raster(p.Source)
	if err != nil {
		return nil, err
	}
	if p.Region == nil {
		return ocr.Recognize(r, p.Language)
	}
	return ocr.RecognizeRegion(r, p.Region.X1, p.Region.Y1, p.Region.X2, p.Region.Y2, p.Language)
}
