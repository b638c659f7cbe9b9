package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// darkThreshold is the mean CIE L* (0..1) below which a region is treated
	// as light text on a dark background.
	darkThreshold = 0.5

	// contrastBoost is the relative contrast change applied after grayscale.
	contrastBoost = 0.4

	// lightnessSamples bounds the sampling grid per axis in MeanLightness.
	lightnessSamples = 64
)

// MeanLightness returns the average CIE L* lightness of img in the range 0..1.
//
// Large images are sampled on a regular grid of at most 64x64 points.
// Fully transparent pixels are ignored. An empty image reports 1 (white).
func MeanLightness(img image.Image) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 1
	}

	stepX := max(1, bounds.Dx()/lightnessSamples)
	stepY := max(1, bounds.Dy()/lightnessSamples)

	var sum float64
	var n int
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			l, _, _ := c.Lab()
			sum += l
			n++
		}
	}

	if n == 0 {
		return 1
	}
	return sum / float64(n)
}

// IsDark reports whether img is predominantly dark.
func IsDark(img image.Image) bool {
	return MeanLightness(img) < darkThreshold
}

// Enhance prepares a region for text recognition.
//
// The region is converted to grayscale, inverted when it is predominantly dark
// so text ends up dark on light, and contrast-stretched. Geometry is never
// changed: the result has the same bounds as the input, so any coordinates
// measured on it apply to the original region.
func Enhance(img image.Image) image.Image {
	gray := effect.Grayscale(img)

	var out image.Image = gray
	if IsDark(gray) {
		out = effect.Invert(gray)
	}

	return adjust.Contrast(out, contrastBoost)
}
