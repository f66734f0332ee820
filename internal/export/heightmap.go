package export

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"mini-voxel/internal/world"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const captionHeight = 16

// HeightmapOptions controls WriteHeightmapPNG.
type HeightmapOptions struct {
	// Scale is the pixel size of one column; values below 1 are treated as 1.
	Scale int
	// Caption, if set, is drawn in a strip below the map.
	Caption string
}

// Heightmap renders one gray pixel per (x, z) column, brighter for taller
// columns. Pixel (x, z) holds column (x, z).
func Heightmap(c *world.Chunk) *image.Gray {
	width, height := c.Dimensions()
	img := image.NewGray(image.Rect(0, 0, width, width))
	for z := 0; z < width; z++ {
		for x := 0; x < width; x++ {
			h := c.ColumnHeight(x, z)
			img.SetGray(x, z, color.Gray{Y: uint8(h * 255 / height)})
		}
	}
	return img
}

// WriteHeightmapPNG encodes the chunk's column heights as a PNG.
func WriteHeightmapPNG(w io.Writer, c *world.Chunk, opts HeightmapOptions) error {
	if c == nil {
		return errors.New("chunk is nil")
	}
	scale := max(opts.Scale, 1)
	src := Heightmap(c)
	size := src.Bounds().Dx() * scale

	footer := 0
	if opts.Caption != "" {
		footer = captionHeight
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size+footer))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.NearestNeighbor.Scale(dst, image.Rect(0, 0, size, size), src, src.Bounds(), draw.Src, nil)

	if footer > 0 {
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.White,
			Face: basicfont.Face7x13,
			Dot:  fixed.P(2, size+footer-4),
		}
		d.DrawString(opts.Caption)
	}

	if err := png.Encode(w, dst); err != nil {
		return errors.Wrap(err, "encode heightmap png")
	}
	return nil
}
