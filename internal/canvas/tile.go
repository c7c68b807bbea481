package canvas

import (
	"image"

	"github.com/disintegration/imaging"
)

// SplitGrid cuts the image into columns x rows tiles of
// floor(width/columns) x floor(height/rows) pixels. The result is indexed
// [row][column]. Pixels left over on the right and bottom edges are not part
// of any tile. Each tile owns its pixels and has no source descriptor.
func (img *Image) SplitGrid(columns, rows int) ([][]*Image, error) {
	if columns <= 0 || rows <= 0 {
		return nil, invalidArg("grid must have positive columns and rows, got %dx%d", columns, rows)
	}
	tw := img.Width() / columns
	th := img.Height() / rows
	if tw == 0 || th == 0 {
		return nil, invalidArg("%dx%d grid leaves empty tiles on a %dx%d image",
			columns, rows, img.Width(), img.Height())
	}

	dc := img.dc.clone()
	dc.Axis = Identity()

	grid := make([][]*Image, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]*Image, columns)
		for c := 0; c < columns; c++ {
			rect := image.Rect(c*tw, r*th, (c+1)*tw, (r+1)*th)
			grid[r][c] = &Image{
				buf: adopt(img.buf.layout, imaging.Crop(img.buf.pix, rect)),
				dc:  dc.clone(),
			}
		}
	}
	return grid, nil
}
