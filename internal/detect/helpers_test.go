package detect

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"
)

// encodeNoisePNG builds a PNG filled with deterministic greyscale noise in
// [lo, hi]. Noise keeps the encoded size above the minimum byte gate.
func encodeNoisePNG(t *testing.T, width, height int, lo, hi int) []byte {
	t.Helper()

	rng := rand.New(rand.NewSource(42))
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(lo + rng.Intn(hi-lo+1))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

// encodeGradientPNG builds a PNG with a horizontal greyscale ramp plus a few
// counts of per-pixel noise. The noise keeps the file above the minimum byte
// gate without adding measurable Laplacian response.
func encodeGradientPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	rng := rand.New(rand.NewSource(7))
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := x*250/(width-1) + rng.Intn(5)
			c := uint8(v)
			img.SetNRGBA(x, y, color.NRGBA{R: c, G: c, B: c, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}
