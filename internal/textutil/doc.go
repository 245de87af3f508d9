// Package textutil provides the string comparison primitives used when
// matching local tag values against catalog entries.
//
// Distance implements the unrestricted Damerau-Levenshtein edit distance
// measured over Unicode code points. Normalize prepares a tag value for
// comparison (NFC composition and whitespace folding) so that precomposed
// and decomposed spellings of the same title compare equal.
package textutil
