// Package render provides the software rendering core for grid: camera,
// projection, rasterization and frame assembly, plus presenters.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// ErrUnsupportedFormat is returned by SaveImage for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Color is a packed 0xRRGGBBAA pixel value.
type Color uint32

// Colors for convenience
const (
	ColorBlack      Color = 0x000000FF
	ColorWhite      Color = 0xFFFFFFFF
	ColorRed        Color = 0xFF0000FF
	ColorGreen      Color = 0x00FF00FF
	ColorBlue       Color = 0x0000FFFF
	ColorYellow     Color = 0xFFFF00FF
	ColorCyan       Color = 0x00FFFFFF
	ColorMagenta    Color = 0xFF00FFFF
	ColorGray       Color = 0x808080FF
	ColorBackground Color = 0x202020FF
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Components unpacks the color into its channels.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// NRGBA converts the color to the standard library's non-premultiplied form.
func (c Color) NRGBA() color.NRGBA {
	r, g, b, a := c.Components()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Framebuffer is a fixed-size grid of packed pixels.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	width = max(width, 0)
	height = max(height, 0)
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// WrapFramebuffer uses a caller-owned pixel slice as the backing store.
func WrapFramebuffer(width, height int, pixels []Color) (*Framebuffer, error) {
	if width < 0 || height < 0 || len(pixels) != width*height {
		return nil, fmt.Errorf("wrap framebuffer: %d pixels for %dx%d", len(pixels), width, height)
	}
	return &Framebuffer{Width: width, Height: height, Pixels: pixels}, nil
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	// Copy-doubling is faster than a per-pixel loop
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// InBounds reports whether (x, y) lies inside the framebuffer.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel sets a pixel at (x, y) to the given color.
// Out-of-bounds writes are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if !fb.InBounds(x, y) {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y), or 0 if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if !fb.InBounds(x, y) {
		return 0
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
// Both endpoints are included; pixels outside the buffer are skipped.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillSpan writes c to pixels [x0, x1] of row y, clipped to the buffer.
func (fb *Framebuffer) FillSpan(y, x0, x1 int, c Color) {
	if y < 0 || y >= fb.Height {
		return
	}
	x0 = max(x0, 0)
	x1 = min(x1, fb.Width-1)
	if x0 > x1 {
		return
	}
	row := fb.Pixels[y*fb.Width:]
	for x := x0; x <= x1; x++ {
		row[x] = c
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// CopyRGBA writes the framebuffer as premultiplied RGBA bytes into dst,
// which must hold at least 4*Width*Height bytes.
func (fb *Framebuffer) CopyRGBA(dst []byte) {
	for i, c := range fb.Pixels {
		r, g, b, a := c.RGBA()
		o := i * 4
		dst[o] = uint8(r >> 8)
		dst[o+1] = uint8(g >> 8)
		dst[o+2] = uint8(b >> 8)
		dst[o+3] = uint8(a >> 8)
	}
}

// ToImage converts the framebuffer to a standard Go image.NRGBA.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, c := range fb.Pixels {
		o := i * 4
		img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = c.Components()
	}
	return img
}

// ScaledImage returns the framebuffer upscaled by an integer factor with
// nearest-neighbour sampling, keeping pixel edges crisp.
func (fb *Framebuffer) ScaledImage(scale int) image.Image {
	src := fb.ToImage()
	if scale <= 1 {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, fb.Width*scale, fb.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return saveImage(path, fb.ToImage(), png.Encode)
}

// SaveWebP saves the framebuffer as a lossless WebP file.
func (fb *Framebuffer) SaveWebP(path string) error {
	return saveImage(path, fb.ToImage(), encodeWebP)
}

// SaveImage saves the framebuffer, upscaled by scale, choosing the encoder
// from the file extension (.png or .webp).
func (fb *Framebuffer) SaveImage(path string, scale int) error {
	img := fb.ScaledImage(scale)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return saveImage(path, img, png.Encode)
	case ".webp":
		return saveImage(path, img, encodeWebP)
	default:
		return fmt.Errorf("save %s: %w", path, ErrUnsupportedFormat)
	}
}

func encodeWebP(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}

func saveImage(path string, img image.Image, encode func(io.Writer, image.Image) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
