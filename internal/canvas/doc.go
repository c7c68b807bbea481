// Package canvas implements a mutable raster image with a persistent drawing
// context.
//
// An Image owns one pixel buffer, one DrawingContext and an optional source
// descriptor (the path or URL it was loaded from). Mutating methods return
// the same *Image so calls can be chained; methods that can fail also return
// an error and leave the image untouched when they do.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X growing
// rightward and Y growing downward. Regions are given as x, y, width, height.
//
// # Drawing Axis
//
// Primitive draws (lines, shapes, curves, text) map their coordinates through
// the drawing axis, an affine matrix that TranslateAxis, RotateAxis and
// ShearAxis compose onto. The axis never moves pixels that are already drawn.
// Whole-image transforms (Crop, Resize, Rotate, Flip, Shear, AddBorder ...)
// resample the buffer itself; those that change the dimensions swap in a new
// buffer and reset the axis to identity.
//
// # Channel Layouts
//
// A buffer is RGB (opaque), ARGB (straight alpha) or grayscale. The layout is
// fixed for the life of a buffer; GrayScale and DetectEdges are the only
// operations that move an image to a different layout. Layouts without alpha flatten translucent
// results onto black.
//
// # Errors
//
// Failures wrap one of the sentinel errors (ErrInvalidArgument,
// ErrInvalidGeometry, ErrOutOfBounds, ErrInvalidColor, ErrNoSourcePath,
// ErrNoOverwrite) or are a *LoadError / *WriteError. Test with errors.Is and
// errors.As.
//
// # Thread Safety
//
// An Image is not safe for concurrent mutation; callers serialize access.
// Tiles returned by SplitGrid and images returned by Copy and Clone share no
// storage with their origin and can be used from other goroutines.
package canvas
