package triage

import (
	"strings"

	"github.com/ironsheep/title-triage/internal/ocr"
)

// leftEdgeDivisor sets the left-edge band: a span qualifies when its top-left
// x is below regionWidth / leftEdgeDivisor.
const leftEdgeDivisor = 10

// SelectKey picks the classification key from recognizer output.
//
// Spans are scanned in the given order and the first one starting inside the
// left tenth of the region wins; later spans are ignored even if they also
// qualify. The key is the first whitespace-delimited token of that span's
// text. ok is false when nothing qualifies or the token is empty.
func SelectKey(spans []ocr.Span, regionWidth int) (key string, ok bool) {
	limit := float64(regionWidth) / leftEdgeDivisor

	for _, span := range spans {
		if span.Quad.TopLeft().X >= limit {
			continue
		}

		fields := strings.Fields(span.Text)
		if len(fields) == 0 {
			return "", false
		}
		return fields[0], true
	}

	return "", false
}
