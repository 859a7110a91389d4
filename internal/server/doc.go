// Package server implements the MCP (Model Context Protocol) server for
// interactive binary morphology.
//
// This package provides a JSON-RPC 2.0 server that exposes one editing
// session: a binarized image, the result of the operations applied to it, and
// an editable structuring element (kernel).
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Logs go to stderr so they never interleave with responses.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image:
//   - morph_load: Load and binarize an image file
//   - morph_save: Write the current or original raster to a file
//   - morph_render: Return a raster as a base64 PNG, optionally scaled
//
// Kernel:
//   - morph_kernel: Show the kernel rows
//   - morph_kernel_resize: Replace the kernel with a full one of odd size
//   - morph_kernel_toggle: Flip a cell between foreground and background
//   - morph_kernel_dont_care: Mark a cell don't care
//
// Operations:
//   - morph_operations: List the operations
//   - morph_apply: Apply an operation, optionally repeated
//   - morph_reset: Return to the binarized original
//
// Session:
//   - morph_state: Describe the session, optionally with both rasters
//   - morph_restore: Replace the session with a saved state
//
// Analysis:
//   - morph_sample_pixel: Color of one pixel
//   - morph_stats: White, black and other pixel counts
//   - morph_diff: Changes between original and current
//   - morph_components: Connected white regions
//   - morph_ocr: Tesseract text recognition
//
// # Error Handling
//
// Bad arguments and unknown tools are reported with code -32602, unknown
// methods with -32601 and malformed requests with -32700. Failures inside a
// tool, such as a missing image, use -32000 with the error text in data.
//
// # Usage
//
//	srv := server.New(morph.Engine{}, logger, "1.0.0")
//	if err := srv.Run(); err != nil {
//	    logger.Fatal(err)
//	}
package server
