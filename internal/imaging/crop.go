package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Fixed placement of the title strip within a screenshot.
const (
	// RegionLeftFraction is the share of the width skipped on the left edge.
	RegionLeftFraction = 0.08

	// RegionHeightFraction is the share of the height kept from the top edge.
	RegionHeightFraction = 0.13
)

var (
	// ErrNoImage is returned when there is no pixel data to crop from.
	ErrNoImage = errors.New("image has no pixels")

	// ErrEmptyRegion is returned when the title strip collapses to zero pixels.
	ErrEmptyRegion = errors.New("title region is empty")
)

// RegionBounds returns the title strip for an image of the given size.
//
// The strip spans x in [int(0.08*width), width) and y in [0, int(0.13*height)).
// Fractional edges are truncated toward zero.
func RegionBounds(width, height int) image.Rectangle {
	return image.Rect(
		int(float64(width)*RegionLeftFraction),
		0,
		width,
		int(float64(height)*RegionHeightFraction),
	)
}

// ExtractRegion crops the title strip out of img.
//
// The returned image is re-based so that its top-left pixel is (0,0); text
// coordinates reported for it are in region pixel space. An image whose strip
// would be less than one pixel wide or tall yields ErrEmptyRegion.
func ExtractRegion(img image.Image) (image.Image, error) {
	if img == nil {
		return nil, ErrNoImage
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, ErrNoImage
	}

	region := RegionBounds(bounds.Dx(), bounds.Dy())
	if region.Dx() < 1 || region.Dy() < 1 {
		return nil, fmt.Errorf("%w: %dx%d image gives %dx%d strip",
			ErrEmptyRegion, bounds.Dx(), bounds.Dy(), region.Dx(), region.Dy())
	}

	return imaging.Crop(img, region.Add(bounds.Min)), nil
}
