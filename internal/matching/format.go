package matching

import (
	"path/filepath"
	"regexp"

	"tracklink/internal/audiotag"
)

// FormatHint is the inferred origin medium of a local file.
type FormatHint int

const (
	FormatUnknown FormatHint = iota
	FormatCD
	FormatDigital
)

func (h FormatHint) String() string {
	switch h {
	case FormatCD:
		return "cd"
	case FormatDigital:
		return "digital"
	default:
		return "unknown"
	}
}

// MediumFormat returns the catalog medium format label matching the hint, or
// "" for FormatUnknown.
func (h FormatHint) MediumFormat() string {
	switch h {
	case FormatCD:
		return "CD"
	case FormatDigital:
		return "Digital Media"
	default:
		return ""
	}
}

// sourceTagPattern matches rip annotations such as "[CD FLAC]" or
// "(WEB 24-96)" in a directory name.
var sourceTagPattern = regexp.MustCompile(`[\[(](CD|WEB)\b[^\[\]()]*[\])]`)

// ClassifyFormat infers the origin medium from the name of the file's parent
// directory, falling back to the presence of disc tags.
func ClassifyFormat(path string, md audiotag.Metadata) FormatHint {
	dir := filepath.Base(filepath.Dir(path))
	if match := sourceTagPattern.FindStringSubmatch(dir); match != nil {
		if match[1] == "WEB" {
			return FormatDigital
		}
		return FormatCD
	}
	if md.HasDiscInfo() {
		return FormatCD
	}
	return FormatUnknown
}
