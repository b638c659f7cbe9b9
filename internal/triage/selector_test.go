package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/title-triage/internal/ocr"
)

// spanAt builds a span whose top-left corner is at x.
func spanAt(x float64, text string) ocr.Span {
	return ocr.Span{
		Quad: ocr.Quad{
			{X: x, Y: 2},
			{X: x + 40, Y: 2},
			{X: x + 40, Y: 14},
			{X: x, Y: 14},
		},
		Text:       text,
		Confidence: 0.9,
	}
}

func TestSelectKey_FirstMatchInListOrder(t *testing.T) {
	const width = 1000

	spans := []ocr.Span{
		spanAt(0.5*width, "middle"),
		spanAt(0.05*width, "second"),
		spanAt(0.2*width, "third"),
	}

	key, ok := SelectKey(spans, width)
	assert.True(t, ok)
	assert.Equal(t, "second", key)
}

func TestSelectKey_OrderBeatsPosition(t *testing.T) {
	const width = 1000

	// Both qualify; the leftmost one comes later and must be ignored.
	spans := []ocr.Span{
		spanAt(90, "first"),
		spanAt(0, "leftmost"),
	}

	key, ok := SelectKey(spans, width)
	assert.True(t, ok)
	assert.Equal(t, "first", key)
}

func TestSelectKey_FirstToken(t *testing.T) {
	key, ok := SelectKey([]ocr.Span{spanAt(1, "ABC/123 extra")}, 500)
	assert.True(t, ok)
	assert.Equal(t, "ABC/123", key)
	assert.Equal(t, "ABC_123", NormalizeKey(key))
}

func TestSelectKey_WhitespaceVariants(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Inbox", "Inbox"},
		{"  Leading spaces", "Leading"},
		{"Tab\tseparated", "Tab"},
		{"Line\nbreak", "Line"},
		{"多 语言", "多"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			key, ok := SelectKey([]ocr.Span{spanAt(0, tt.text)}, 100)
			assert.True(t, ok)
			assert.Equal(t, tt.want, key)
		})
	}
}

func TestSelectKey_ThresholdIsStrict(t *testing.T) {
	// Width 92 puts the threshold at 9.2
	_, ok := SelectKey([]ocr.Span{spanAt(9.2, "edge")}, 92)
	assert.False(t, ok, "x equal to the threshold must not match")

	key, ok := SelectKey([]ocr.Span{spanAt(9.19, "inside")}, 92)
	assert.True(t, ok)
	assert.Equal(t, "inside", key)
}

func TestSelectKey_Absent(t *testing.T) {
	tests := []struct {
		name  string
		spans []ocr.Span
	}{
		{"nil", nil},
		{"empty", []ocr.Span{}},
		{"nothing near left edge", []ocr.Span{spanAt(50, "a"), spanAt(80, "b")}},
		{"blank text", []ocr.Span{spanAt(0, "   ")}},
		{"empty text stops scan", []ocr.Span{spanAt(0, ""), spanAt(1, "later")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := SelectKey(tt.spans, 100)
			assert.False(t, ok)
			assert.Empty(t, key)
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "ABC_123", NormalizeKey("ABC/123"))
	assert.Equal(t, "a_b_c", NormalizeKey(`a\b/c`))
	assert.Equal(t, "__", NormalizeKey("//"))
	assert.Equal(t, "plain", NormalizeKey("plain"))
}
