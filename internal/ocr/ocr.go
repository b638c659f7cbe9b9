package ocr

import (
	"image"
)

// Point is a 2-D position in the pixel space of the recognized image.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Quad is the bounding quadrilateral of a span, ordered top-left, top-right,
// bottom-right, bottom-left.
type Quad [4]Point

// TopLeft returns the first corner of the quadrilateral.
func (q Quad) TopLeft() Point {
	return q[0]
}

// QuadFromRect converts an axis-aligned rectangle into a Quad.
func QuadFromRect(r image.Rectangle) Quad {
	return Quad{
		{X: float64(r.Min.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Max.Y)},
		{X: float64(r.Min.X), Y: float64(r.Max.Y)},
	}
}

// Span is one piece of text found by a recognizer.
type Span struct {
	// Quad bounds the text in the coordinates of the recognized image.
	Quad Quad `json:"quad"`

	// Text is the recognized text content.
	Text string `json:"text"`

	// Confidence is the recognizer's confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`
}

// Recognizer turns an image into an ordered list of text spans.
//
// Implementations must return spans in their native reading order and must
// report coordinates in the pixel space of img. Recognize may block for as
// long as the underlying engine needs; it is not cancellable.
type Recognizer interface {
	Recognize(img image.Image) ([]Span, error)
	Close() error
}
