package utils

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/setanarut/termscheme"
	_ "golang.org/x/image/webp"
)

// ReadImage decodes an image file, honouring its EXIF orientation.
func ReadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return img, nil
}

// RGBBytes flattens img into packed RGB8 pixels, dropping alpha.
func RGBBytes(img image.Image) []byte {
	px := imaging.Clone(img).Pix
	out := make([]byte, 0, len(px)/4*3)
	for i := 0; i+3 < len(px); i += 4 {
		out = append(out, px[i], px[i+1], px[i+2])
	}
	return out
}

// SaveImage encodes img in the format given by the filename extension.
func SaveImage(img image.Image, filename string) error {
	if err := imaging.Save(img, filename); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}

// SavePalette writes palette as a grid of square tiles, perRow to a row.
func SavePalette(palette []colorful.Color, perRow, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if perRow <= 0 {
		perRow = len(palette)
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	cols := min(perRow, len(palette))
	rows := (len(palette) + perRow - 1) / perRow
	canvas := imaging.New(cols*tileSize, rows*tileSize, color.Transparent)
	for i, c := range palette {
		pt := image.Pt(i%perRow*tileSize, i/perRow*tileSize)
		canvas = imaging.Paste(canvas, tile(c, tileSize), pt)
	}
	return SaveImage(canvas, filename)
}

// SaveScheme lays the scheme out like a terminal shows it: color0..7 over
// color8..15, then a background band carrying the foreground and the cursor.
func SaveScheme(cols termscheme.Colors, tileSize int, filename string) error {
	if tileSize <= 0 {
		tileSize = 64
	}
	canvas := imaging.New(8*tileSize, 3*tileSize, nrgba(cols.Background))
	for i, c := range cols.Color {
		canvas = imaging.Paste(canvas, tile(c, tileSize), image.Pt(i%8*tileSize, i/8*tileSize))
	}
	inset := tileSize / 4
	for i, c := range []colorful.Color{cols.Foreground, cols.Cursor} {
		pt := image.Pt(i*tileSize+inset, 2*tileSize+inset)
		canvas = imaging.Paste(canvas, tile(c, tileSize/2), pt)
	}
	return SaveImage(canvas, filename)
}

func tile(c colorful.Color, size int) *image.NRGBA {
	return imaging.New(size, size, nrgba(c))
}

func nrgba(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
