package main

import (
	"encoding/json"
	"testing"
)

func TestMatchCommandShowsChosenRelease(t *testing.T) {
	env := setupCLITestEnv(t)
	song := env.writeSong(t)

	out, _, err := runCLI(t, []string{"match", song}, env.configPath)
	if err != nil {
		t.Fatalf("match failed: %v\n%s", err, out)
	}
	requireContains(t, out, "vorbis", "cd", "recording:Song", "rec-1", "rel-1", "art-1", "Release score")

	// Matching never writes to the library.
	out, _, err = runCLI(t, []string{"library", "tracks"}, env.configPath)
	if err != nil {
		t.Fatalf("library tracks failed: %v", err)
	}
	requireContains(t, out, "No tracks in library")
}

func TestMatchCommandReportsNoCandidate(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := env.writeUnknown(t)

	out, _, err := runCLI(t, []string{"--json", "match", missing}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unmatched file")
	}
	var view matchView
	if jsonErr := json.Unmarshal([]byte(out), &view); jsonErr != nil {
		t.Fatalf("decode json: %v\n%s", jsonErr, out)
	}
	if view.Error == "" || view.RecordingID != "" || view.Dialect != "vorbis" {
		t.Fatalf("unexpected view: %#v", view)
	}
	requireContains(t, view.Query, "recording:Missing")
}
