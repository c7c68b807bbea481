package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/image-canvas-mcp/internal/canvas"
	"github.com/ironsheep/image-canvas-mcp/internal/metadata"
)

// errInvalidParams marks tool arguments that could not be decoded.
var errInvalidParams = errors.New("invalid params")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_new", "image_draw").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Arguments that do not decode return code -32602; any other tool failure
// returns code -32000 with the error text as data.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	s.log.Debug("Calling tool %s", params.Name)
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Warn("Tool %s failed: %v", params.Name, err)
		if errors.Is(err, errInvalidParams) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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
//
// Each tool handler decodes its arguments, applies defaults for optional
// parameters, looks images up in the registry and calls into canvas.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Construction
	case "image_new":
		return s.handleImageNew(args)
	case "image_load":
		return s.handleImageLoad(ctx, args)
	case "image_decode":
		return s.handleImageDecode(args)
	case "image_copy":
		return s.handleImageCopy(args)

	// Inspection
	case "image_info":
		return s.handleImageInfo(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_metadata":
		return s.handleImageMetadata(ctx, args)

	// Drawing context and primitives
	case "image_set_style":
		return s.handleImageSetStyle(args)
	case "image_axis":
		return s.handleImageAxis(args)
	case "image_draw":
		return s.handleImageDraw(args)

	// Whole-image operations
	case "image_transform":
		return s.handleImageTransform(args)
	case "image_overlay":
		return s.handleImageOverlay(args)
	case "image_paste":
		return s.handleImagePaste(args)
	case "image_split_grid":
		return s.handleImageSplitGrid(args)

	// Output
	case "image_encode":
		return s.handleImageEncode(args)
	case "image_write":
		return s.handleImageWrite(ctx, args)
	case "image_formats":
		return s.handleImageFormats()
	case "image_release":
		return s.handleImageRelease(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
// Empty data is omitted.
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

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = []byte("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}
	return nil
}

// imageResult describes a registered image.
type imageResult struct {
	ID string `json:"id"`
	canvas.Info
}

func describe(id string, img *canvas.Image) imageResult {
	return imageResult{ID: id, Info: img.Info()}
}

// register stores img and describes it.
func (s *Server) register(img *canvas.Image) imageResult {
	id := s.images.Add(img)
	s.log.Debug("Registered image %s (%dx%d)", id, img.Width(), img.Height())
	return describe(id, img)
}

func (s *Server) checkDimensions(w, h int) error {
	limit := s.cfg.MaxDimension
	if limit > 0 && (w > limit || h > limit) {
		return fmt.Errorf("%w: %dx%d exceeds the %d pixel limit", canvas.ErrInvalidGeometry, w, h, limit)
	}
	return nil
}

type idArgs struct {
	ID string `json:"id"`
}

// lookup decodes args into v and returns the registered image named by
// *id, which points into v.
func (s *Server) lookup(args json.RawMessage, v interface{}, id *string) (*canvas.Image, error) {
	if err := decodeArgs(args, v); err != nil {
		return nil, err
	}
	return s.images.Get(*id)
}

// === Construction Handlers ===

type imageNewArgs struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Layout string `json:"layout"`
	Fill   string `json:"fill"`
}

func (s *Server) handleImageNew(args json.RawMessage) (interface{}, error) {
	var a imageNewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Layout == "" {
		a.Layout = canvas.LayoutRGB.String()
	}
	if err := s.checkDimensions(a.Width, a.Height); err != nil {
		return nil, err
	}
	img, err := canvas.New(a.Width, a.Height, a.Layout, a.Fill)
	if err != nil {
		return nil, err
	}
	return s.register(img), nil
}

type imageLoadArgs struct {
	Location string `json:"location"`
}

func (s *Server) handleImageLoad(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := canvas.Load(ctx, a.Location, canvas.WithStore(s.store))
	if err != nil {
		return nil, err
	}
	return s.register(img), nil
}

type imageDecodeArgs struct {
	Data   string `json:"data"`
	Source string `json:"source"`
}

func (s *Server) handleImageDecode(args json.RawMessage) (interface{}, error) {
	var a imageDecodeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	var opts []canvas.Option
	if a.Source != "" {
		opts = append(opts, canvas.WithSource(a.Source))
	}
	img, err := canvas.DecodeBase64(a.Data, opts...)
	if err != nil {
		return nil, err
	}
	return s.register(img), nil
}

type imageCopyArgs struct {
	idArgs
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
	DX     int `json:"dx"`
	DY     int `json:"dy"`
}

func (s *Server) handleImageCopy(args json.RawMessage) (interface{}, error) {
	var a imageCopyArgs
	img, err := s.lookup(args, &a, &a.ID)
	if err != nil {
		return nil, err
	}
	if a.Width == 0 && a.Height == 0 {
		return s.register(img.Clone()), nil
	}
	cp, err := img.Copy(a.X, a.Y, a.Width, a.Height, a.DX, a.DY)
	if err != nil {
		return nil, err
	}
	return s.register(cp), nil
}

// === Inspection Handlers ===

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a idArgs
	img, err := s.lookup(args, &a, &a.ID)
	if err != nil {
		return nil, err
	}
	return describe(a.ID, img), nil
}

type imageSampleColorArgs struct {
	idArgs
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	img, err := s.lookup(args, &a, &a.ID)
	if err != nil {
		return nil, err
	}
	return img.SampleColor(a.X, a.Y)
}

type imageMetadataArgs struct {
	ID       string `json:"id"`
	Location string `json:"location"`
}

type metadataResult struct {
	Location string        `json:"location"`
	EXIF     metadata.Tags `json:"exif"`
}

func (s *Server) handleImageMetadata(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageMetadataArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	location := a.Location
	if location == "" && a.ID != "" {
		img, err := s.images.Get(a.ID)
		if err != nil {
			return nil, err
		}
		location = img.Source()
	}
	if location == "" {
		return nil, fmt.Errorf("%w: metadata needs a location or an image with a source", canvas.ErrNoSourcePath)
	}
	tags, err := metadata.Read(ctx, s.store, location)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Read %d EXIF tags from %s: %s", len(tags), location, strings.Join(tags.Names(), ", "))
	return metadataResult{Location: location, EXIF: tags}, nil
}

// === Drawing Context Handlers ===

type strokeArgs struct {
	Width      *float64  `json:"width"`
	Cap        string    `json:"cap"`
	Join       string    `json:"join"`
	MiterLimit *float64  `json:"miter_limit"`
	Dash       []float64 `json:"dash"`
	DashPhase  *float64  `json:"dash_phase"`
}

type imageSetStyleArgs struct {
	idArgs
	Color        string      `json:"color"`
	Background   string      `json:"background"`
	Stroke       *strokeArgs `json:"stroke"`
	Transparency *float64    `json:"transparency"`
	Antialias    *bool       `json:"antialias"`
}

type strokeResult struct {
	Width      float64   `json:"width"`
	Cap        string    `json:"cap"`
	Join       string    `json:"join"`
	MiterLimit float64   `json:"miter_limit"`
	Dash       []float64 `json:"dash,omitempty"`
	DashPhase  float64   `json:"dash_phase"`
}

type styleResult struct {
	ID           string              `json:"id"`
	Color        *canvas.ColorResult `json:"color"`
	Background   *canvas.ColorResult `json:"background"`
	Stroke       strokeResult        `json:"stroke"`
	Transparency float64             `json:"transparency"`
	Antialias    bool                `json:"antialias"`
	Axis         canvas.Matrix       `json:"axis"`
}

func describeStyle(id string, dc canvas.DrawingContext) styleResult {
	return styleResult{
		ID:         id,
		Color:      canvas.DescribeColor(dc.Color),
		Background: canvas.DescribeColor(dc.Background),
		Stroke: strokeResult{
			Width:      dc.Stroke.Width,
			Cap:        dc.Stroke.Cap.String(),
			Join:       dc.Stroke.Join.String(),
			MiterLimit: dc.Stroke.MiterLimit,
			Dash:       dc.Stroke.Dash,
			DashPhase:  dc.Stroke.DashPhase,
		},
		Transparency: dc.Transparency,
		Antialias:    dc.Antialias,
		Axis:         dc.Axis,
	}
}

// handleImageSetStyle validates every given attribute before applying any,
// so a rejected call leaves the context unchanged.
func (s *Server) handleImageSetStyle(args json.RawMessage) (interface{}, error) {
	var a imageSetStyleArgs
	img, err := s.lookup(args, &a, &a.ID)
	if err != nil {
		return nil, err
	}

	for _, spec := range []string{a.Color, a.Background} {
		if spec == "" {
			continue
		}
		if _, err := canvas.ParseColor(spec); err != nil {
			return nil, err
		}
	}
	if a.Transparency != nil && (*a.Transparency < 0 || *a.Transparency > 100) {
		return nil, fmt.Errorf("%w: transparency must be within 0-100, got %v", canvas.ErrInvalidArgument, *a.Transparency)
	}
	if a.Stroke != nil {
		spec := canvas.StrokeSpec{
			Width:      a.Stroke.Width,
			Cap:        a.Stroke.Cap,
			Join:       a.Stroke.Join,
			MiterLimit: a.Stroke.MiterLimit,
			Dash:       a.Stroke.Dash,
			DashPhase:  a.Stroke.DashPhase,
		}
		if _, err := img.SetStroke(spec); err != nil {
			return nil, err
		}
	}

	if a.Color != "" {
		img.SetColor(a.Color)
	}
	if a.Background != "" {
		img.SetBackgroundColor(a.Background)
	}
	if a.Transparency != nil {
		img.SetTransparency(*a.Transparency)
	}
	if a.Antialias != nil {
		img.SetAntialiasing(*a.Antialias)
	}
	return describeStyle(a.ID, img.Context()), nil
}

type imageAxisArgs struct {
	idArgs
	Op      string  `json:"op"`
	DX      float64 `json:"dx"`
	DY      float64 `json:"dy"`
	Degrees float64 `json:"degrees"`
	PX      float64 `json:"px"`
	PY      float64 `json:"py"`
	SHX     float64 `json:"shx"`
	SHY     float64 `json:"shy"`
}

func (s *Server) handleImageAxis(args json.RawMessage) (interface{}, error) {
	var a imageAxisArgs
	img, err := s.lookup(args, &a, &a.ID)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(a.Op) {
	case "translate":
		img.TranslateAxis(a.DX, a.DY)
	case "rotate":
		img.RotateAxis(a.Degrees, a.PX, a.PY)
	case "shear":
		img.ShearAxis(a.SHX, a.SHY)
	case "reset":
		img.ResetAxis()
	default:
		return nil, fmt.Errorf("%w: unknown axis operation %q", canvas.ErrInvalidArgument, a.Op)
	}
	return describeStyle(a.ID, img.Context()), nil
}

// === Primitive Drawing Handlers ===

type primitiveArgs struct {
	Kind      string            `json:"kind"`
	Points    []canvas.Point    `json:"points"`
	X         float64           `json:"x"`
	Y         float64           `json:"y"`
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	ArcWidth  float64           `json:"arc_width"`
	ArcHeight float64           `json:"arc_height"`
	Start     float64           `json:"start_angle"`
	Sweep     float64           `json:"sweep"`
	Filled    bool              `json:"filled"`
	Raised    *bool             `json:"raised"`
	Text      string            `json:"text"`
	Style     *canvas.TextStyle `json:"style"`
}

func (p primitiveArgs) primitive() (canvas.Primitive, error) {
	kind, err := canvas.ParsePrimitiveKind(p.Kind)
	if err != nil {
		return canvas.Primitive{}, err
	}
	raised := true
	if p.Raised != nil {
		raised = *p.Raised
	}
	return canvas.Primitive{
		Kind:       kind,
		Points:     p.Points,
		X:          p.X,
		Y:          p.Y,
		Width:      p.Width,
		Height:     p.Height,
		ArcWidth:   p.ArcWidth,
		ArcHeight:  p.ArcHeight,
		StartAngle: p.Start,
		Sweep:      p.Sweep,
		Filled:     p.Filled,
		Raised:     raised,
		Text:       p.Text,
		Style:      p.Style,
	}, nil
}

type imageDrawArgs struct {
	idArgs
	Primitives []primitiveArgs `json:"primitives"`
}

type drawResult struct {
	imageResult
	Drawn int `json:"drawn"`
}

// handleImageDraw paints primitives in order. Kinds are checked up front;
// a primitive rejected while drawing stops the batch and earlier ones stay
// painted.
func (s *Server) handleImageDraw(args json.RawMessage) (interface{}, error) {
	var a imageDrawArgs
	img, err := s.lookup(args, &a, &a.ID)
	if err != nil {
		return nil, err
	}

	prims := make([]canvas.Primitive, len(a.Primitives))
	for i, p := range a.Primitives {
		if prims[i], err = p.primitive(); err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
	}
	for i, p := range prims {
		if _, err := img.Draw(p); err != nil {
			return nil, fmt.Errorf("primitive %d (%s): %w", i, p.Kind, err)
		}
	}
	return drawResult{imageResult: describe(a.ID, img), Drawn: len(prims)}, nil
}

// === Whole-Image Operation Handlers ===

type imageTransformArgs struct {
	idArgs
	Op string `json:"op"`

	// crop, resize, scale_to_fit
	X             int     `json:"x"`
	Y             int     `json:"y"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Interpolation string  `json:"interpolation"`
	BlurFactor    float64 `json:"blur_factor"`

	// flip, rotate, shear
	Mode      string  `json:"mode"`
	Degrees   float64 `json:"degrees"`
	Factor    float64 `json:"factor"`
	Direction string  `json:"direction"`

	// border, blur, sharpen, edges
	Thickness int      `json:"thickness"`
	Color     string   `json:"color"`
	Radius    int      `json:"radius"`
	Gain      *float64 `json:"gain"`
	Low       *int     `json:"low"`
	High      *int     `json:"high"`
}

func (s *Server) handleImageTransform(args json.RawMessage) (interface{}, error) {
	var a imageTransformArgs
	img, err := s.lookup(args, &a, &a.ID)
	if err != nil {
		return nil, err
	}

	switch strings.ReplaceAll(strings.ToLower(a.Op), "-", "_") {
	case "crop":
		_, err = img.Crop(a.X, a.Y, a.Width, a.Height)
	case "resize":
		if err = s.checkDimensions(a.Width, a.Height); err == nil {
			_, err = img.Resize(a.Width, a.Height, a.Interpolation, a.BlurFactor)
		}
	case "scale_to_fit":
		if err = s.checkDimensions(a.Width, a.Height); err == nil {
			_, err = img.ScaleToFit(a.Width, a.Height, a.Interpolation, a.BlurFactor)
		}
	case "flip":
		_, err = img.Flip(a.Mode)
	case "rotate":
		_, err = img.Rotate(a.Degrees)
	case "shear":
		var w, h int
		if w, h, err = img.ShearBounds(a.Factor, a.Direction); err == nil {
			if err = s.checkDimensions(w, h); err == nil {
				_, err = img.Shear(a.Factor, a.Direction)
			}
		}
	case "negative":
		img.Negative()
	case "grayscale", "greyscale":
		img.GrayScale()
	case "border":
		color := a.Color
		if color == "" {
			color = "black"
		}
		if err = s.checkDimensions(img.Width()+2*a.Thickness, img.Height()+2*a.Thickness); err == nil {
			_, err = img.AddBorder(a.Thickness, color)
		}
	case "blur":
		radius := a.Radius
		if radius == 0 {
			radius = canvas.DefaultBlurRadius
		}
		_, err = img.Blur(radius)
	case "sharpen":
		gain := canvas.DefaultSharpenGain
		if a.Gain != nil {
			gain = *a.Gain
		}
		_, err = img.Sharpen(gain)
	case "edges":
		low, high := canvas.DefaultEdgeLow, canvas.DefaultEdgeHigh
		if a.Low != nil {
			low = *a.Low
		}
		if a.High != nil {
			high = *a.High
		}
		_, err = img.DetectEdges(low, high)
	default:
		err = fmt.Errorf("%w: unknown transform %q", canvas.ErrInvalidArgument, a.Op)
	}
	if err != nil {
		return nil, err
	}
	return describe(a.ID, img), nil
}

type imageOverlayArgs struct {
	idArgs
	Top          string   `json:"top"`
	Rule         string   `json:"rule"`
	Transparency *float64 `json:"transparency"`
}

func (s *Server) handleImageOverlay(args json.RawMessage) (interface{}, error) {
	var a imageOverlayArgs
	img, err := s.lookup(args, &a, &a.ID)
	if err != nil {
		return nil, err
	}
	top, err := s.images.Get(a.Top)
	if err != nil {
		return nil, err
	}
	transparency := canvas.DefaultOverlayTransparency
	if a.Transparency != nil {
		transparency = *a.Transparency
	}
	if _, err := img.Overlay(top, a.Rule, transparency); err != nil {
		return nil, err
	}
	return describe(a.ID, img), nil
}

type imagePasteArgs struct {
	idArgs
	Top string `json:"top"`
	X   int    `json:"x"`
	Y   int    `json:"y"`
}

func (s *Server) handleImagePaste(args json.RawMessage) (interface{}, error) {
	var a imagePasteArgs
	img, err := s.lookup(args, &a, &a.ID)
	if err != nil {
		return nil, err
	}
	top, err := s.images.Get(a.Top)
	if err != nil {
		return nil, err
	}
	if _, err := img.Paste(top, a.X, a.Y); err != nil {
		return nil, err
	}
	return describe(a.ID, img), nil
}

type imageSplitGridArgs struct {
	idArgs
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

type gridResult struct {
	Columns int             `json:"columns"`
	Rows    int             `json:"rows"`
	Tiles   [][]imageResult `json:"tiles"`
}

func (s *Server) handleImageSplitGrid(args json.RawMessage) (interface{}, error) {
	var a imageSplitGridArgs
	img, err := s.lookup(args, &a, &a.ID)
	if err != nil {
		return nil, err
	}
	grid, err := img.SplitGrid(a.Columns, a.Rows)
	if err != nil {
		return nil, err
	}

	res := gridResult{Columns: a.Columns, Rows: a.Rows, Tiles: make([][]imageResult, len(grid))}
	for r, row := range grid {
		res.Tiles[r] = make([]imageResult, len(row))
		for c, tile := range row {
			res.Tiles[r][c] = s.register(tile)
		}
	}
	return res, nil
}

// === Output Handlers ===

type imageEncodeArgs struct {
	idArgs
	Format  string `json:"format"`
	Quality int    `json:"quality"`
}

type encodeResult struct {
	Format   string `json:"format"`
	MimeType string `json:"mime_type"`
	Size     int    `json:"size_bytes"`
	Data     string `json:"data"`
}

// outputFormat applies the configured default to images without a source.
func (s *Server) outputFormat(img *canvas.Image, requested string) string {
	if requested == "" && img.Source() == "" {
		return s.cfg.DefaultFormat
	}
	return requested
}

func (s *Server) quality(requested int) int {
	if requested == 0 {
		return s.cfg.JPEGQuality
	}
	return requested
}

func (s *Server) handleImageEncode(args json.RawMessage) (interface{}, error) {
	var a imageEncodeArgs
	img, err := s.lookup(args, &a, &a.ID)
	if err != nil {
		return nil, err
	}

	name := s.outputFormat(img, a.Format)
	if name == "" {
		name = img.Info().Format
	}
	f, err := canvas.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	data, err := img.EncodeWithOptions(canvas.EncodeOptions{Format: string(f), Quality: s.quality(a.Quality)})
	if err != nil {
		return nil, err
	}
	return encodeResult{
		Format:   string(f),
		MimeType: f.MimeType(),
		Size:     len(data),
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

type imageWriteArgs struct {
	idArgs
	Path      string `json:"path"`
	Format    string `json:"format"`
	Quality   int    `json:"quality"`
	Overwrite *bool  `json:"overwrite"`
}

type writeResult struct {
	Path   string `json:"path"`
	Format string `json:"format"`
}

func (s *Server) handleImageWrite(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageWriteArgs
	img, err := s.lookup(args, &a, &a.ID)
	if err != nil {
		return nil, err
	}

	overwrite := s.cfg.AllowOverwrite
	if a.Overwrite != nil {
		overwrite = *a.Overwrite
	}
	err = img.Write(ctx, a.Path, canvas.WriteOptions{
		Format:      a.Format,
		Quality:     s.quality(a.Quality),
		NoOverwrite: !overwrite,
		Store:       s.store,
	})
	if err != nil {
		return nil, err
	}

	path := a.Path
	if path == "" {
		path = img.Source()
	}
	format, _ := img.WriteFormat(path, a.Format)
	s.log.Info("Wrote image %s to %s", a.ID, path)
	return writeResult{Path: path, Format: string(format)}, nil
}

type formatsResult struct {
	Readable []string `json:"readable"`
	Writable []string `json:"writable"`
	Colors   []string `json:"colors"`
}

func (s *Server) handleImageFormats() (interface{}, error) {
	return formatsResult{
		Readable: canvas.ReadableFormats(),
		Writable: canvas.WritableFormats(),
		Colors:   canvas.ColorNames(),
	}, nil
}

type imageReleaseArgs struct {
	ID  string `json:"id"`
	All bool   `json:"all"`
}

type releaseResult struct {
	Released   bool     `json:"released"`
	Remaining  int      `json:"remaining"`
	Registered []string `json:"registered"`
}

// handleImageRelease forgets one image, or every image when all is set, and
// lists the IDs still registered.
func (s *Server) handleImageRelease(args json.RawMessage) (interface{}, error) {
	var a imageReleaseArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var released bool
	switch {
	case a.All:
		released = s.images.Len() > 0
		s.images.Clear()
	case a.ID != "":
		released = s.images.Release(a.ID)
	default:
		return nil, fmt.Errorf("%w: release needs an id or all", canvas.ErrInvalidArgument)
	}
	ids := s.images.IDs()
	return releaseResult{Released: released, Remaining: len(ids), Registered: ids}, nil
}
