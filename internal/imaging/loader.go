package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// supportedExtensions lists the lowercase file extensions accepted as input images.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
}

// IsSupported reports whether the file name carries a supported image extension.
// The comparison is case-insensitive.
func IsSupported(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Record is a decoded image together with the path it was read from.
//
// A Record is owned by the caller for the duration of processing one image and
// is expected to be discarded once the image has been routed.
type Record struct {
	// Path is the source file path and the identity of the record.
	Path string

	// Image holds the decoded pixels. EXIF orientation has already been applied.
	Image image.Image

	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels.
	Height int

	// Channels is the number of color channels of the decoded pixel format.
	Channels int
}

// Load reads an image file from disk and decodes it.
//
// The file is read fully into memory before decoding so that paths containing
// non-ASCII characters are handled exactly like any other path. Supported
// formats are JPEG, PNG, GIF, BMP and TIFF.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the content is not a decodable image
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	return &Record{
		Path:     path,
		Image:    img,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: channelCount(img),
	}, nil
}

// channelCount maps the concrete Go image type to its channel count.
func channelCount(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.CMYK:
		return 4
	default:
		return 3
	}
}
