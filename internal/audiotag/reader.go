package audiotag

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// File is the result of reading one audio file.
type File struct {
	Path     string
	Dialect  Dialect
	Metadata Metadata
}

// Read opens path and decodes its tag block.
func Read(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	tags, err := tag.ReadFrom(f)
	if err != nil {
		return File{}, fmt.Errorf("read tags from %s: %w", path, err)
	}

	dialect, err := dialectFor(tags.Format())
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}

	md, err := FromRaw(dialect, tags.Raw())
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return File{Path: path, Dialect: dialect, Metadata: md}, nil
}
