package main

import (
	"encoding/json"
	"testing"
)

func TestImportCommandMatchesFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeSong(t)

	out, _, err := runCLI(t, []string{"import"}, env.configPath)
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	requireContains(t, out, "1 files, 1 matched, 0 skipped, 0 failed", "Song", "Matched")

	out, _, err = runCLI(t, []string{"library", "tracks"}, env.configPath)
	if err != nil {
		t.Fatalf("library tracks failed: %v", err)
	}
	requireContains(t, out, "Song", "Band", "Album", "3:20")

	// Already imported files are hidden unless --all is given.
	out, _, err = runCLI(t, []string{"import"}, env.configPath)
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	requireContains(t, out, "0 matched, 1 skipped", "already_imported=1")
	out, _, err = runCLI(t, []string{"import", "--all"}, env.configPath)
	if err != nil {
		t.Fatalf("import --all failed: %v", err)
	}
	requireContains(t, out, "already imported")
}

func TestImportCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	song := env.writeSong(t)
	missing := env.writeUnknown(t)

	out, _, err := runCLI(t, []string{"--json", "import"}, env.configPath)
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	var view summaryView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if view.Total != 2 || view.Matched != 1 || view.Skipped != 1 || view.RunID == "" {
		t.Fatalf("unexpected summary: %#v", view)
	}
	if view.Reasons["no_candidate"] != 1 {
		t.Fatalf("expected no_candidate reason, got %#v", view.Reasons)
	}
	byPath := make(map[string]outcomeView, len(view.Outcomes))
	for _, o := range view.Outcomes {
		byPath[o.Path] = o
	}
	if o := byPath[song]; o.Status != "matched" || o.RecordingID != "rec-1" || o.ReleaseID != "rel-1" || o.ArtistID != "art-1" {
		t.Fatalf("unexpected matched outcome: %#v", o)
	}
	if o := byPath[missing]; o.Status != "skipped" || o.Reason != "no_candidate" {
		t.Fatalf("unexpected skipped outcome: %#v", o)
	}
}

func TestImportCommandRejectsMissingDirectory(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"import", env.albumDir + "-nope"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	requireContains(t, err.Error(), "music directory not usable")
}
