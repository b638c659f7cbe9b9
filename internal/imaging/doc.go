// Package imaging loads input screenshots and prepares the title strip for
// text recognition.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with (0,0) at the top-left
// corner. For regions, the minimum point is inclusive and the maximum point is
// exclusive, matching image.Rectangle.
//
// # Title Region
//
// ExtractRegion returns the fixed strip where screenshots carry their title:
// the top 13% of the height, skipping the leftmost 8% of the width. The
// placement is a tuned constant and deliberately not configurable.
//
// # Supported Formats
//
// Load decodes JPEG, PNG, GIF, BMP and TIFF. Files are read fully into memory
// and decoded with EXIF orientation applied.
//
// # Pre-processing
//
// Enhance converts a region to high-contrast grayscale with dark text on a
// light background. It never resizes, so recognizer coordinates stay valid
// for the unenhanced region.
package imaging
