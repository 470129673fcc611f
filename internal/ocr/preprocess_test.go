package ocr

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bimodalImage builds an image with a dark left half and a bright right half.
func bimodalImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(30)
			if x >= w/2 {
				v = 220
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestToGray_ConvertsColor(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	gray := toGray(src)

	require.Equal(t, src.Bounds(), gray.Bounds())
	// All pixels identical, conversion deterministic.
	assert.Equal(t, gray.GrayAt(0, 0), gray.GrayAt(3, 3))
}

func TestToGray_PassesThroughGray(t *testing.T) {
	src := bimodalImage(8, 8)
	assert.Same(t, src, toGray(src))
}

func TestMedianBlur3_RemovesSpeckle(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 5, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			img.SetGray(x, y, color.Gray{Y: 200})
		}
	}
	// single dark speckle in a bright field
	img.SetGray(2, 2, color.Gray{Y: 0})

	blurred := medianBlur3(img)

	assert.Equal(t, uint8(200), blurred.GrayAt(2, 2).Y)
}

func TestOtsuThreshold_Binarizes(t *testing.T) {
	binary := otsuThreshold(bimodalImage(16, 16))

	assert.Equal(t, uint8(0), binary.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), binary.GrayAt(15, 0).Y)

	// Only two values remain.
	b := binary.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := binary.GrayAt(x, y).Y
			if v != 0 && v != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want 0 or 255", x, y, v)
			}
		}
	}
}

func TestPreprocess_OutputIsBinary(t *testing.T) {
	out := Preprocess(bimodalImage(16, 16), 1)

	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := out.GrayAt(x, y).Y
			require.True(t, v == 0 || v == 255, "pixel (%d,%d) = %d", x, y, v)
		}
	}
}

func TestClosing_FillsSmallGap(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 9, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 9; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	// one-pixel-wide dark gap in a bright stroke
	for y := 0; y < 3; y++ {
		img.SetGray(4, y, color.Gray{Y: 0})
	}

	closed := closing(img, 3)

	assert.Equal(t, uint8(255), closed.GrayAt(4, 1).Y)
}
