package display

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"tinygo.org/x/drivers"
)

// LoadSVG parses an SVG document and rasterizes it to w x h pixels
func LoadSVG(r io.Reader, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// LoadSVGFile is LoadSVG for a file on disk
func LoadSVGFile(path string, w, h int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSVG(f, w, h)
}

// Picture draws a still image scaled to the display with nearest-neighbour
// sampling.
type Picture struct {
	Image image.Image
}

// Draw copies the image into the display
func (p Picture) Draw(d drivers.Displayer, _ int) {
	if p.Image == nil {
		return
	}
	b := p.Image.Bounds()
	if b.Empty() {
		return
	}
	w, h := d.Size()
	for y := 0; y < int(h); y++ {
		sy := b.Min.Y + y*b.Dy()/int(h)
		for x := 0; x < int(w); x++ {
			sx := b.Min.X + x*b.Dx()/int(w)
			c := color.RGBAModel.Convert(p.Image.At(sx, sy)).(color.RGBA)
			d.SetPixel(int16(x), int16(y), c)
		}
	}
}
