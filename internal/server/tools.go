package server

import (
	"github.com/ironsheep/image-canvas-mcp/internal/canvas"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func schema(props map[string]interface{}, required ...string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func enumProp(description string, values ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        values,
		"description": description,
	}
}

var (
	idProp  = prop("string", "ID of a registered image, as returned by image_new, image_load, image_decode or image_copy")
	topProp = prop("string", "ID of the registered image to place on top")
)

var primitiveKinds = []string{
	"point", "line", "polyline", "polygon", "rect", "round_rect", "beveled_rect",
	"oval", "arc", "quad_curve", "cubic_curve", "text", "clear_rect",
}

var compositeRules = []string{"SRC", "SRC_OVER", "SRC_IN", "SRC_OUT", "DST_OVER", "DST_IN", "DST_OUT"}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Construction
		{
			Name:        "image_new",
			Description: "Create a blank image filled with a color. Returns the ID used by every other tool.",
			InputSchema: schema(map[string]interface{}{
				"width":  prop("integer", "Width in pixels (> 0)"),
				"height": prop("integer", "Height in pixels (> 0)"),
				"layout": enumProp("Channel layout. Default rgb", "rgb", "argb", "gray"),
				"fill":   prop("string", "Fill color: a name (\"white\"), \"#RRGGBB\", \"#RRGGBBAA\" or \"r,g,b\". Default black"),
			}, "width", "height"),
		},
		{
			Name:        "image_load",
			Description: "Load an image from a file path or http(s) URL. The location becomes the image's default write target and format hint.",
			InputSchema: schema(map[string]interface{}{
				"location": prop("string", "Absolute file path or http(s) URL"),
			}, "location"),
		},
		{
			Name:        "image_decode",
			Description: "Create an image from base64-encoded bytes or a data URI.",
			InputSchema: schema(map[string]interface{}{
				"data":   prop("string", "Base64 payload or data:image/...;base64,... URI"),
				"source": prop("string", "Optional origin path recorded as the default write target"),
			}, "data"),
		},
		{
			Name:        "image_copy",
			Description: "Copy an image, or a region of it, into a new image. Omit width and height to duplicate the whole image with its drawing style.",
			InputSchema: schema(map[string]interface{}{
				"id":     idProp,
				"x":      prop("integer", "Left edge of the region"),
				"y":      prop("integer", "Top edge of the region"),
				"width":  prop("integer", "Region width"),
				"height": prop("integer", "Region height"),
				"dx":     prop("integer", "Horizontal offset of the region inside the copy"),
				"dy":     prop("integer", "Vertical offset of the region inside the copy"),
			}, "id"),
		},

		// Inspection
		{
			Name:        "image_info",
			Description: "Get the dimensions, channel layout, source and default output format of an image.",
			InputSchema: schema(map[string]interface{}{"id": idProp}, "id"),
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: schema(map[string]interface{}{
				"id": idProp,
				"x":  prop("integer", "X coordinate (0-based, from left)"),
				"y":  prop("integer", "Y coordinate (0-based, from top)"),
			}, "id", "x", "y"),
		},
		{
			Name:        "image_metadata",
			Description: "Read the EXIF tags of an image file or URL as a flat name to value map.",
			InputSchema: schema(map[string]interface{}{
				"location": prop("string", "File path or URL to read"),
				"id":       prop("string", "Registered image whose source is read when no location is given"),
			}),
		},

		// Drawing context
		{
			Name:        "image_set_style",
			Description: "Update the drawing context used by image_draw. Only the given attributes change; an invalid attribute rejects the whole update.",
			InputSchema: schema(map[string]interface{}{
				"id":         idProp,
				"color":      prop("string", "Drawing color"),
				"background": prop("string", "Background color used by clear_rect"),
				"stroke": map[string]interface{}{
					"type":        "object",
					"description": "Outline style",
					"properties": map[string]interface{}{
						"width":       prop("number", "Line width (>= 0)"),
						"cap":         enumProp("End cap", "butt", "round", "square"),
						"join":        enumProp("Line join", "miter", "round", "bevel"),
						"miter_limit": prop("number", "Miter limit (>= 1)"),
						"dash":        map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "number"}, "description": "Dash lengths; an empty array draws solid lines"},
						"dash_phase":  prop("number", "Offset into the dash pattern"),
					},
				},
				"transparency": prop("number", "Drawing transparency in percent, 0 (opaque) to 100"),
				"antialias":    prop("boolean", "Smooth primitive edges"),
			}, "id"),
		},
		{
			Name:        "image_axis",
			Description: "Transform the drawing axis. Axis changes compose and affect later primitives only; resizing operations reset the axis.",
			InputSchema: schema(map[string]interface{}{
				"id":      idProp,
				"op":      enumProp("Axis operation", "translate", "rotate", "shear", "reset"),
				"dx":      prop("number", "translate: horizontal offset"),
				"dy":      prop("number", "translate: vertical offset"),
				"degrees": prop("number", "rotate: clockwise angle in degrees"),
				"px":      prop("number", "rotate: pivot X"),
				"py":      prop("number", "rotate: pivot Y"),
				"shx":     prop("number", "shear: horizontal factor"),
				"shy":     prop("number", "shear: vertical factor"),
			}, "id", "op"),
		},
		{
			Name:        "image_draw",
			Description: "Draw primitives in order using the image's drawing context.",
			InputSchema: schema(map[string]interface{}{
				"id": idProp,
				"primitives": map[string]interface{}{
					"type":        "array",
					"description": "Shapes to draw",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"kind":        enumProp("Primitive kind", primitiveKinds...),
							"points":      map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "object"}, "description": "Vertices as {x, y}: point 1, line 2, quad_curve 3, cubic_curve 4, polyline/polygon 2 or more"},
							"x":           prop("number", "Left edge, or text baseline start"),
							"y":           prop("number", "Top edge, or text baseline"),
							"width":       prop("number", "Box width"),
							"height":      prop("number", "Box height"),
							"arc_width":   prop("number", "round_rect: corner arc width"),
							"arc_height":  prop("number", "round_rect: corner arc height"),
							"start_angle": prop("number", "arc: start angle in degrees, counter-clockwise from 3 o'clock"),
							"sweep":       prop("number", "arc: angular extent in degrees"),
							"filled":      prop("boolean", "Fill instead of outlining"),
							"raised":      prop("boolean", "beveled_rect: raised (default) or sunken"),
							"text":        prop("string", "text: the string to draw"),
							"style":       map[string]interface{}{"type": "object", "description": "text: {font, size, bold, italic, underline, strikethrough}"},
						},
						"required": []string{"kind"},
					},
				},
			}, "id", "primitives"),
		},

		// Whole-image operations
		{
			Name:        "image_transform",
			Description: "Apply a whole-image operation. Operations that change the dimensions reset the drawing axis.",
			InputSchema: schema(map[string]interface{}{
				"id":            idProp,
				"op":            enumProp("Operation", "crop", "resize", "scale_to_fit", "flip", "rotate", "shear", "negative", "grayscale", "border", "blur", "sharpen", "edges"),
				"x":             prop("integer", "crop: left edge"),
				"y":             prop("integer", "crop: top edge"),
				"width":         prop("integer", "crop/resize: width; scale_to_fit: maximum width (0 = unbounded)"),
				"height":        prop("integer", "crop/resize: height; scale_to_fit: maximum height (0 = unbounded)"),
				"interpolation": enumProp("resize/scale_to_fit: resampling filter. Default bilinear", "nearest", "bilinear", "bicubic", "lanczos"),
				"blur_factor":   prop("number", "resize/scale_to_fit: smoothing above 1, within 0-10"),
				"mode":          enumProp("flip: mode", "horizontal", "vertical", "90", "180", "270", "diagonal", "antidiagonal"),
				"degrees":       prop("number", "rotate: clockwise angle; the canvas grows to hold the result"),
				"factor":        prop("number", "shear: shear factor"),
				"direction":     enumProp("shear: direction", "horizontal", "vertical"),
				"thickness":     prop("integer", "border: width in pixels"),
				"color":         prop("string", "border: color. Default black"),
				"radius":        prop("integer", "blur: radius 3-10. Default 3"),
				"gain":          prop("number", "sharpen: gain -1 to 2, negative softens. Default 1"),
				"low":           prop("integer", "edges: weak gradient threshold 0-255. Default 50"),
				"high":          prop("integer", "edges: strong gradient threshold 0-255. Default 150"),
			}, "id", "op"),
		},
		{
			Name:        "image_overlay",
			Description: "Blend another image onto this one at the top-left corner with a Porter-Duff rule.",
			InputSchema: schema(map[string]interface{}{
				"id":           idProp,
				"top":          topProp,
				"rule":         enumProp("Compositing rule. Default SRC_OVER", compositeRules...),
				"transparency": prop("number", "Alpha multiplier for the top image, 0-1. Default 0.25"),
			}, "id", "top"),
		},
		{
			Name:        "image_paste",
			Description: "Draw another image onto this one with its own alpha, top-left corner at (x, y).",
			InputSchema: schema(map[string]interface{}{
				"id":  idProp,
				"top": topProp,
				"x":   prop("integer", "Horizontal offset"),
				"y":   prop("integer", "Vertical offset"),
			}, "id", "top"),
		},
		{
			Name:        "image_split_grid",
			Description: "Split an image into a grid of independent tiles, each registered under its own ID. Tiles are indexed [row][column].",
			InputSchema: schema(map[string]interface{}{
				"id":      idProp,
				"columns": prop("integer", "Tiles per row"),
				"rows":    prop("integer", "Number of rows"),
			}, "id", "columns", "rows"),
		},

		// Output
		{
			Name:        "image_encode",
			Description: "Encode an image and return it as base64. The format defaults to the source extension, then to the configured default.",
			InputSchema: schema(map[string]interface{}{
				"id":      idProp,
				"format":  enumProp("Output format", canvas.WritableFormats()...),
				"quality": prop("integer", "JPEG quality 1-100"),
			}, "id"),
		},
		{
			Name:        "image_write",
			Description: "Write an image to a file. Without a path the image's source location is used.",
			InputSchema: schema(map[string]interface{}{
				"id":        idProp,
				"path":      prop("string", "Destination file path"),
				"format":    enumProp("Output format; inferred from the path when omitted", canvas.WritableFormats()...),
				"quality":   prop("integer", "JPEG quality 1-100"),
				"overwrite": prop("boolean", "Replace an existing file"),
			}, "id"),
		},
		{
			Name:        "image_formats",
			Description: "List the formats that can be read and written, and the named colors accepted wherever a color is given.",
			InputSchema: schema(map[string]interface{}{}),
		},
		{
			Name:        "image_release",
			Description: "Forget a registered image, or all of them, and free the memory. Returns the IDs still registered.",
			InputSchema: schema(map[string]interface{}{
				"id":  idProp,
				"all": prop("boolean", "Release every registered image; id is ignored"),
			}),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
