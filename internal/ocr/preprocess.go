package ocr

import (
	"image"
	"image/color"
	"sort"
)

// Preprocess prepares an image for recognition: grayscale conversion, a
// 3x3 median blur to suppress speckle noise, Otsu binarization and an
// optional morphological closing. A closing kernel of 1 or less leaves the
// binarized image untouched.
func Preprocess(img image.Image, closingKernel int) *image.Gray {
	gray := toGray(img)
	blurred := medianBlur3(gray)
	binary := otsuThreshold(blurred)
	if closingKernel > 1 {
		binary = closing(binary, closingKernel)
	}
	return binary
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// medianBlur3 applies a 3x3 median filter. Border pixels use the clamped
// neighborhood.
func medianBlur3(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	var window [9]byte
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := clampInt(x+dx, b.Min.X, b.Max.X-1), clampInt(y+dy, b.Min.Y, b.Max.Y-1)
					window[n] = src.GrayAt(nx, ny).Y
					n++
				}
			}
			s := window[:n]
			sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
			dst.SetGray(x, y, color.Gray{Y: s[n/2]})
		}
	}
	return dst
}

// otsuThreshold binarizes the image at the threshold that maximizes
// between-class variance over the intensity histogram.
func otsuThreshold(src *image.Gray) *image.Gray {
	b := src.Bounds()
	var hist [256]int
	total := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[src.GrayAt(x, y).Y]++
			total++
		}
	}
	if total == 0 {
		return src
	}

	var sum float64
	for i, c := range hist {
		sum += float64(i) * float64(c)
	}

	var sumB, wB float64
	var maxVariance float64
	threshold := 0
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		variance := wB * wF * (mB - mF) * (mB - mF)
		if variance > maxVariance {
			maxVariance = variance
			threshold = t
		}
	}

	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if int(src.GrayAt(x, y).Y) > threshold {
				dst.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return dst
}

// closing runs a dilation followed by an erosion with a square kernel,
// filling small gaps in foreground strokes.
func closing(src *image.Gray, kernel int) *image.Gray {
	return erode(dilate(src, kernel), kernel)
}

func dilate(src *image.Gray, kernel int) *image.Gray {
	return morph(src, kernel, func(cur, v byte) bool { return v > cur })
}

func erode(src *image.Gray, kernel int) *image.Gray {
	return morph(src, kernel, func(cur, v byte) bool { return v < cur })
}

func morph(src *image.Gray, kernel int, replace func(cur, v byte) bool) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	r := kernel / 2
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cur := src.GrayAt(x, y).Y
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					nx, ny := x+dx, y+dy
					if nx < b.Min.X || nx >= b.Max.X || ny < b.Min.Y || ny >= b.Max.Y {
						continue
					}
					if v := src.GrayAt(nx, ny).Y; replace(cur, v) {
						cur = v
					}
				}
			}
			dst.SetGray(x, y, color.Gray{Y: cur})
		}
	}
	return dst
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
