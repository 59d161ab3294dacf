package render

import (
	"bytes"
	"encoding/xml"
)

const (
	fontHeightRatio = 0.25
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
	fontSizeMax     = 18.0
)

// FontSize returns a label size that fits text into a box of w by h pixels.
func FontSize(w, h float64, text string) float64 {
	n := max(1, len(text))
	byHeight := h * fontHeightRatio
	byWidth := (w * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// Truncate shortens label so it fits into w pixels at size.
func Truncate(label string, w, size float64) string {
	maxChars := max(3, int(w*fontWidthRatio/(size*fontCharWidth)))
	if len(label) <= maxChars {
		return label
	}
	return label[:maxChars-2] + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
