// Package gpu turns VOID-3 VRAM into images.
package gpu

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"

	"github.com/raymyers/tritc/pkg/cpu"
	"github.com/raymyers/tritc/pkg/trit"
)

// channelScale maps a 3-trit channel value onto 8 bits. Negative values are
// black, the top value 13 lands near half intensity.
const channelScale = 9.8

// Level converts one channel value to an 8-bit intensity.
func Level(v int64) uint8 {
	f := math.Round(float64(v) * channelScale)
	return uint8(max(0, min(255, f)))
}

// Render decodes a full frame buffer into a ScreenSize square image.
func Render(vram []int8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cpu.ScreenSize, cpu.ScreenSize))
	for i := 0; i < cpu.ScreenSize*cpu.ScreenSize; i++ {
		addr := i * cpu.PixelTrits
		if addr+cpu.PixelTrits > len(vram) {
			break
		}
		p := i * 4
		for ch := 0; ch < 3; ch++ {
			img.Pix[p+ch] = Level(trit.Decode(vram, addr+ch*cpu.ChannelTrits, cpu.ChannelTrits))
		}
		img.Pix[p+3] = 255
	}
	return img
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling.
func Scale(img image.Image, factor int) *image.RGBA {
	b := img.Bounds()
	if factor < 1 {
		factor = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SaveFrame renders vram at the given scale and writes it to filename.
func SaveFrame(filename string, vram []int8, factor int) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WritePNG(f, Scale(Render(vram), factor)); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return f.Close()
}
