package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns value in Unicode NFC with surrounding whitespace removed
// and inner whitespace runs collapsed to a single space. Tag writers disagree
// on composed versus decomposed accents; comparing normalized values keeps
// "é" and "é" at distance zero.
func Normalize(value string) string {
	value = norm.NFC.String(value)
	return strings.Join(strings.Fields(value), " ")
}

// NormalizedDistance is Distance applied to the normalized forms of a and b.
func NormalizedDistance(a, b string) int {
	return Distance(Normalize(a), Normalize(b))
}
