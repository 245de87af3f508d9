package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"tracklink/internal/testsupport"
)

func TestTagsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	song := env.writeSong(t)
	env.writeUnknown(t)

	out, _, err := runCLI(t, []string{"--json", "tags", song}, env.configPath)
	if err != nil {
		t.Fatalf("tags failed: %v\n%s", err, out)
	}
	var view tagsView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if view.Title != "Song" || view.Artist != "Band" || view.TrackNumber != 1 {
		t.Fatalf("unexpected tags: %#v", view)
	}
	if view.TrackCount != 2 || !view.CountFilled {
		t.Fatalf("expected track count from siblings, got %#v", view)
	}
	if view.Dialect != "vorbis" || view.FormatHint != "cd" {
		t.Fatalf("unexpected classification: %#v", view)
	}
}

func TestTagsCommandMP3(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.cfg.Paths.MusicDir, "Web", "Album (WEB)", "01.mp3")
	testsupport.WriteMP3(t, path, map[string]string{"TIT2": "Song", "TPE1": "Band", "TRCK": "1/9"})

	out, _, err := runCLI(t, []string{"tags", path}, env.configPath)
	if err != nil {
		t.Fatalf("tags failed: %v\n%s", err, out)
	}
	requireContains(t, out, "id3v2", "digital", "Song", "9")
}
