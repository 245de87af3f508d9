package main

import (
	"encoding/json"
	"testing"
)

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeSong(t)
	if _, _, err := runCLI(t, []string{"import"}, env.configPath); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	requireContains(t, out,
		"== Library ==",
		"1 artists, 1 albums, 1 tracks",
		"Match cache:",
		"== Checks ==",
		"MusicBrainz:",
		"Spotify:",
	)
}

func TestStatusCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--json", "status"}, env.configPath)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	var view statusView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if view.ConfigPath != env.configPath || !view.CacheEnabled || view.Tracks != 0 {
		t.Fatalf("unexpected status: %#v", view)
	}
	if view.SchemaVersion == "" || view.SchemaVersion != view.LatestMigration {
		t.Fatalf("expected current schema, got %#v", view)
	}
	var sawCatalog bool
	for _, c := range view.Checks {
		if c.Name == "MusicBrainz" {
			sawCatalog = true
			if !c.Passed {
				t.Fatalf("expected catalog check to pass: %#v", c)
			}
		}
	}
	if !sawCatalog {
		t.Fatalf("missing MusicBrainz check in %#v", view.Checks)
	}
}
