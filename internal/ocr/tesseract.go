package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/ironsheep/title-triage/internal/imaging"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Options configures a Tesseract recognizer.
type Options struct {
	// Language is the Tesseract language code (e.g., "eng").
	Language string

	// TessdataDir overrides Tesseract's data directory. Empty uses the
	// system default.
	TessdataDir string

	// Preprocess enables grayscale/contrast enhancement before recognition.
	Preprocess bool
}

// Tesseract is a Recognizer backed by a single long-lived gosseract client.
//
// A Tesseract value is not safe for concurrent use.
type Tesseract struct {
	client     *gosseract.Client
	preprocess bool
}

// NewTesseract creates and configures a Tesseract client.
//
// The client is created once and reused for every Recognize call. The caller
// must call Close when done.
func NewTesseract(opts Options) (*Tesseract, error) {
	language := opts.Language
	if language == "" {
		language = DefaultLanguage
	}

	client := gosseract.NewClient()

	if opts.TessdataDir != "" {
		if err := client.SetTessdataPrefix(opts.TessdataDir); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	return &Tesseract{
		client:     client,
		preprocess: opts.Preprocess,
	}, nil
}

// Recognize runs OCR on img and returns its text lines in reading order.
//
// The image is handed to Tesseract in memory as PNG bytes; no temporary file is
// written. Each span is one text line with surrounding whitespace trimmed;
// blank lines are dropped.
func (t *Tesseract) Recognize(img image.Image) ([]Span, error) {
	if t.preprocess {
		img = imaging.Enhance(img)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode region: %w", err)
	}

	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	spans := make([]Span, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		spans = append(spans, Span{
			Quad:       QuadFromRect(box.Box),
			Text:       text,
			Confidence: float64(box.Confidence) / 100.0,
		})
	}

	return spans, nil
}

// Close releases the underlying Tesseract client.
func (t *Tesseract) Close() error {
	return t.client.Close()
}

// Version returns the Tesseract library version of the open client.
func (t *Tesseract) Version() string {
	return t.client.Version()
}
