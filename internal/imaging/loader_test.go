package imaging

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// createInMemoryImage creates an in-memory test image filled with one color.
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// writeImage encodes img into dir/name using the encoder matching the extension.
func writeImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	switch filepath.Ext(name) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tiff":
		err = tiff.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	require.NoError(t, err, "encode %s", name)

	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeImage(t, dir, "shot.png", createPatternImage(120, 80))

	rec, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, rec.Path)
	assert.Equal(t, 120, rec.Width)
	assert.Equal(t, 80, rec.Height)
	assert.Equal(t, 4, rec.Channels)
	assert.NotNil(t, rec.Image)
}

func TestLoad_Formats(t *testing.T) {
	dir := t.TempDir()
	img := createInMemoryImage(40, 30, color.RGBA{10, 20, 30, 255})

	for _, name := range []string{"a.png", "b.jpg", "c.jpeg", "d.bmp", "e.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := writeImage(t, dir, name, img)

			rec, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, 40, rec.Width)
			assert.Equal(t, 30, rec.Height)
		})
	}
}

func TestLoad_NonASCIIPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "截图")
	require.NoError(t, os.Mkdir(dir, 0755))
	path := writeImage(t, dir, "标题.png", createInMemoryImage(20, 20, color.White))

	_, err := Load(path)
	assert.NoError(t, err)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestLoad_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.jpg", true},
		{"a.JPG", true},
		{"a.jpeg", true},
		{"a.Png", true},
		{"a.bmp", true},
		{"a.TIFF", true},
		{"a.tif", false},
		{"a.gif", false},
		{"a.txt", false},
		{"png", false},
		{"a.png.bak", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupported(tt.name))
		})
	}
}
