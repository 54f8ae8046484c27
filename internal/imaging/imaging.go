// Package imaging wraps image decoding, resizing and convolution primitives
// used by the detection pipeline. All buffers are plain row-major byte slices
// so callers never touch image.Image directly.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Meta describes a decoded image header.
type Meta struct {
	Width  int
	Height int
	Format string // decoder name: "jpeg", "png", "webp", ...
}

// Gray is a single-channel intensity buffer, row-major, one byte per pixel.
type Gray struct {
	Pix    []uint8
	Width  int
	Height int
}

// NewGray allocates a zeroed intensity buffer.
func NewGray(width, height int) *Gray {
	return &Gray{
		Pix:    make([]uint8, width*height),
		Width:  width,
		Height: height,
	}
}

// At returns the intensity at (x, y). Bounds are the caller's responsibility.
func (g *Gray) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

// DecodeMeta reads the image header without decoding pixel data.
func DecodeMeta(data []byte) (Meta, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Meta{}, fmt.Errorf("decoding image header: %w", err)
	}
	return Meta{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// decode decodes the full image.
func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// ResizeGray decodes an image and scales it to width x height greyscale.
// The aspect ratio is not preserved; detection operates on fixed square buffers.
func ResizeGray(data []byte, width, height int) (*Gray, error) {
	img, err := decode(data)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	out := NewGray(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := dst.PixOffset(x, y)
			r := dst.Pix[i]
			g := dst.Pix[i+1]
			b := dst.Pix[i+2]
			// ITU-R BT.601 luma formula.
			luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			out.Pix[y*width+x] = uint8(luma + 0.5)
		}
	}

	return out, nil
}

// ResizeCoverRGB decodes an image, center-crops it to the target aspect ratio
// and scales it to width x height. Returns an interleaved RGB buffer of length
// width*height*3.
func ResizeCoverRGB(data []byte, width, height int) ([]uint8, error) {
	img, err := decode(data)
	if err != nil {
		return nil, err
	}

	src := coverRect(img.Bounds(), width, height)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)

	out := make([]uint8, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := dst.PixOffset(x, y)
			o := (y*width + x) * 3
			out[o] = dst.Pix[i]
			out[o+1] = dst.Pix[i+1]
			out[o+2] = dst.Pix[i+2]
		}
	}

	return out, nil
}

// coverRect computes the largest centered source rectangle matching the
// target aspect ratio.
func coverRect(bounds image.Rectangle, targetW, targetH int) image.Rectangle {
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return bounds
	}

	srcAspect := float64(srcW) / float64(srcH)
	dstAspect := float64(targetW) / float64(targetH)

	cropW, cropH := srcW, srcH
	if srcAspect > dstAspect {
		cropW = int(float64(srcH) * dstAspect)
	} else {
		cropH = int(float64(srcW) / dstAspect)
	}

	x0 := bounds.Min.X + (srcW-cropW)/2
	y0 := bounds.Min.Y + (srcH-cropH)/2
	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}

// Convolve3x3 applies a 3x3 kernel to every interior pixel and returns the
// absolute response clamped to [0, 255]. Border pixels are left at zero;
// callers exclude the border from analysis anyway.
func Convolve3x3(src *Gray, kernel [9]float64) *Gray {
	out := NewGray(src.Width, src.Height)
	w := src.Width

	for y := 1; y < src.Height-1; y++ {
		for x := 1; x < w-1; x++ {
			var sum float64
			k := 0
			for dy := -1; dy <= 1; dy++ {
				row := (y + dy) * w
				for dx := -1; dx <= 1; dx++ {
					sum += kernel[k] * float64(src.Pix[row+x+dx])
					k++
				}
			}
			if sum < 0 {
				sum = -sum
			}
			if sum > 255 {
				sum = 255
			}
			out.Pix[y*w+x] = uint8(sum)
		}
	}

	return out
}
