// Package server implements the MCP (Model Context Protocol) server for the
// image canvas.
//
// This package provides a JSON-RPC 2.0 server that exposes the canvas
// package through the MCP protocol: clients create or load images, set a
// drawing style, draw primitives, transform and composite whole images, and
// encode or write the results.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Construction:
//   - image_new: Blank image of a given size, layout and fill
//   - image_load: Image from a file path or URL
//   - image_decode: Image from base64 bytes or a data URI
//   - image_copy: Duplicate an image or copy a region of it
//
// Inspection:
//   - image_info: Dimensions, layout, source and default format
//   - image_sample_color: Color at a pixel
//   - image_metadata: EXIF tags of a file or URL
//
// Drawing:
//   - image_set_style: Color, background, stroke, transparency, antialiasing
//   - image_axis: Translate, rotate, shear or reset the drawing axis
//   - image_draw: Lines, shapes, curves, arcs and text
//
// Whole-image operations:
//   - image_transform: Crop, resize, scale to fit, flip, rotate, shear,
//     negative, grayscale, border, blur, sharpen and edge detection
//   - image_overlay: Porter-Duff blend of another image
//   - image_paste: Draw another image at an offset
//   - image_split_grid: Cut into independent tiles
//
// Output:
//   - image_encode: Base64 of the encoded image
//   - image_write: Encode to a file
//   - image_formats: Readable and writable formats, named colors
//   - image_release: Drop one image, or all of them, from the registry
//
// # Image Registry
//
// Every image created by a tool is stored in a Registry under a random UUID
// and addressed by that ID in later calls. Images stay registered until
// image_release is called or the input stream closes.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (arguments that do not
//     decode) or -32601 (unknown method)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.WithConfig(cfg), server.WithLogger(log))
//	if err := srv.Run(ctx); err != nil {
//	    log.Error("Server error: %v", err)
//	}
package server
