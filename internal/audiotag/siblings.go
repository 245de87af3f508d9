package audiotag

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// IsAudioFile reports whether path has one of the given extensions. Extensions
// are expected lowercase with a leading dot.
func IsAudioFile(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext != "" && slices.Contains(extensions, ext)
}

// CountSiblings counts the audio files directly inside dir. ok is false when
// the directory cannot be read.
func CountSiblings(dir string, extensions []string) (count int, ok bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsAudioFile(entry.Name(), extensions) {
			count++
		}
	}
	return count, true
}

// Enrich fills a missing track count from the number of audio files sharing
// the track's directory. It reports whether the fallback was applied.
func Enrich(path string, md *Metadata, extensions []string) bool {
	if md == nil || md.TrackCount > 0 {
		return false
	}
	count, ok := CountSiblings(filepath.Dir(path), extensions)
	if !ok || count == 0 {
		return false
	}
	md.TrackCount = count
	return true
}
