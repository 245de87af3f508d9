package testsupport

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// WriteFLAC writes a minimal FLAC stream holding only a Vorbis comment block
// with the given comments. Keys are written as provided.
func WriteFLAC(t testing.TB, path string, comments map[string]string) {
	t.Helper()

	var body bytes.Buffer
	vendor := "tracklink-test"
	_ = binary.Write(&body, binary.LittleEndian, uint32(len(vendor)))
	body.WriteString(vendor)
	keys := sortedKeys(comments)
	_ = binary.Write(&body, binary.LittleEndian, uint32(len(keys)))
	for _, key := range keys {
		entry := key + "=" + comments[key]
		_ = binary.Write(&body, binary.LittleEndian, uint32(len(entry)))
		body.WriteString(entry)
	}

	var out bytes.Buffer
	out.WriteString("fLaC")
	// Last-metadata-block flag set, block type 4 (VORBIS_COMMENT).
	out.WriteByte(0x80 | 4)
	size := body.Len()
	out.Write([]byte{byte(size >> 16), byte(size >> 8), byte(size)})
	out.Write(body.Bytes())

	WriteFile(t, path, out.Bytes())
}

// WriteMP3 writes an ID3v2.3 tag block with the given text frames followed by
// padding. No audio frames are written.
func WriteMP3(t testing.TB, path string, frames map[string]string) {
	t.Helper()

	var body bytes.Buffer
	for _, id := range sortedKeys(frames) {
		text := frames[id]
		body.WriteString(id)
		_ = binary.Write(&body, binary.BigEndian, uint32(len(text)+1))
		body.Write([]byte{0, 0})
		body.WriteByte(0) // ISO-8859-1
		body.WriteString(text)
	}
	body.Write(make([]byte, 64))

	var out bytes.Buffer
	out.WriteString("ID3")
	out.Write([]byte{3, 0, 0})
	size := body.Len()
	out.Write([]byte{
		byte(size>>21) & 0x7f,
		byte(size>>14) & 0x7f,
		byte(size>>7) & 0x7f,
		byte(size) & 0x7f,
	})
	out.Write(body.Bytes())

	WriteFile(t, path, out.Bytes())
}

// WriteFile writes data to path, creating parent directories. Empty data
// writes a single byte so the file is never zero length.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if len(data) == 0 {
		data = []byte{0x42}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
